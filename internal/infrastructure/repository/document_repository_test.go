package repository

import (
	"context"
	"testing"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/infrastructure/store"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentRepository_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryStore()
	repo := NewDocumentRepository(blobs, "database", nil)

	doc, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Products, 8)
	assert.Len(t, doc.Members, 4)
	assert.NotNil(t, doc.Sales)

	_, err = blobs.Get(ctx, "database")
	require.NoError(t, err, "the seed is written back")
}

func TestDocumentRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewDocumentRepository(store.NewMemoryStore(), "database", func() *entity.Document {
		return &entity.Document{}
	})

	doc, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Empty(t, doc.Products)

	doc.Products = append(doc.Products, entity.Product{ID: "p-1", Name: "Gula", Price: decimal.RequireFromString("14500.50")})
	require.NoError(t, repo.Save(ctx, doc))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded.Products, 1)
	assert.Equal(t, "14500.5", loaded.Products[0].Price.String())
	assert.NotNil(t, loaded.SuspendedTransactions)
}

func TestDocumentRepository_SavesCompactJSON(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryStore()
	repo := NewDocumentRepository(blobs, "database", nil)

	doc, err := repo.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, doc))

	body, err := blobs.Get(ctx, "database")
	require.NoError(t, err)
	assert.NotContains(t, string(body), "\n", "SQL and redis rows hold the document without indentation")
}

func TestDocumentRepository_CorruptDocument(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryStore()
	require.NoError(t, blobs.Put(ctx, "database", []byte("{broken")))

	_, err := NewDocumentRepository(blobs, "database", nil).Load(ctx)
	assert.ErrorContains(t, err, "failed to decode document")
}

func TestSettingsRepository(t *testing.T) {
	ctx := context.Background()
	blobs := store.NewMemoryStore()
	repo := NewSettingsRepository(blobs, "settings")

	settings, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultSettings().StoreName, settings.StoreName)

	require.NoError(t, blobs.Put(ctx, "settings", []byte(`{"store_name":"Toko Maju","points":{"enabled":true,"point_value":"0"}}`)))
	settings, err = repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Toko Maju", settings.StoreName)
	assert.True(t, settings.Points.PointValue.Equal(decimal.NewFromInt(1)), "non-positive values fall back to defaults")

	settings.Footer = "Sampai jumpa"
	require.NoError(t, repo.Save(ctx, settings))
	again, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Sampai jumpa", again.Footer)
}

func TestSeedDocument(t *testing.T) {
	doc := SeedDocument()

	for _, p := range doc.Products {
		assert.Equal(t, 1, p.BaseUnitCount(), p.ID)
		assert.True(t, p.BaseUnit().Price.Equal(p.Price), p.ID)
	}
	croissant, ok := doc.FindProduct("prod-002")
	require.True(t, ok)
	dozen, ok := croissant.UnitByBarcode("prod-002-L")
	require.True(t, ok)
	assert.Equal(t, "LUSIN", dozen.Name)

	member, ok := doc.FindMember("C0004")
	require.True(t, ok)
	assert.False(t, member.IsActive)
}
