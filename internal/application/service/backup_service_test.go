package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupService_ExportRestore(t *testing.T) {
	ctx := context.Background()
	docs := newTestDocuments(t)
	backup := NewBackupService(docs, fixedClock)
	products := NewProductService(docs)

	exported, err := backup.Export(ctx)
	require.NoError(t, err)
	assert.Equal(t, "pos_backup_2024-05-01.json", exported.FileName)
	assert.Contains(t, string(exported.Data), `"prod-001"`)

	require.NoError(t, products.DeleteProduct(ctx, "prod-001"))
	require.NoError(t, backup.Restore(ctx, exported.Data))

	p, err := products.GetProduct(ctx, "prod-001")
	require.NoError(t, err)
	assert.Equal(t, "Kopi Susu Gula Aren", p.Name)

	t.Run("invalid file", func(t *testing.T) {
		err := backup.Restore(ctx, []byte("{not json"))
		assertAppCode(t, err, http.StatusBadRequest)

		_, err = products.GetProduct(ctx, "prod-001")
		assert.NoError(t, err)
	})

	t.Run("missing collections are created", func(t *testing.T) {
		require.NoError(t, backup.Restore(ctx, []byte(`{"products":[]}`)))
		doc := loadDocument(t, docs)
		assert.NotNil(t, doc.Sales)
		assert.Empty(t, doc.Products)
	})
}
