package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScanToken(t *testing.T) {
	tests := []struct {
		token      string
		quantity   string
		identifier string
	}{
		{"prod-001", "1", "prod-001"},
		{"3*prod-001", "3", "prod-001"},
		{" 2 * prod-004 ", "2", "prod-004"},
		{"1,5*prod-001", "1.5", "prod-001"},
		{"3*", "3", ""},
		{"abc*prod-001", "1", "abc*prod-001"},
		{"0*prod-001", "1", "0*prod-001"},
		{"12345", "1", "12345"},
	}

	for _, tt := range tests {
		t.Run(tt.token, func(t *testing.T) {
			qty, identifier := ParseScanToken(tt.token)
			assert.True(t, qty.Equal(decimal.RequireFromString(tt.quantity)), "got %s", qty)
			assert.Equal(t, tt.identifier, identifier)
		})
	}
}

func TestCatalogService_Resolve(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(newTestDocuments(t))

	t.Run("PLU with quantity prefix selects the base unit", func(t *testing.T) {
		res, err := catalog.Resolve(ctx, "3*prod-001")
		require.NoError(t, err)
		assert.Equal(t, "prod-001", res.Product.ID)
		assert.Equal(t, "PCS", res.Unit.Name)
		assertDecimal(t, 3, res.Quantity)
	})

	t.Run("unit barcode selects that unit", func(t *testing.T) {
		res, err := catalog.Resolve(ctx, "prod-002-L")
		require.NoError(t, err)
		assert.Equal(t, "prod-002", res.Product.ID)
		assert.Equal(t, "LUSIN", res.Unit.Name)
		assertDecimal(t, 240000, res.Unit.Price)
	})

	t.Run("matching ignores case", func(t *testing.T) {
		res, err := catalog.Resolve(ctx, "PROD-005")
		require.NoError(t, err)
		assert.Equal(t, "prod-005", res.Product.ID)
	})

	t.Run("name substring", func(t *testing.T) {
		res, err := catalog.Resolve(ctx, "croissant")
		require.NoError(t, err)
		assert.Equal(t, "prod-002", res.Product.ID)
		assert.Equal(t, "PCS", res.Unit.Name)
	})

	t.Run("fractional quantity", func(t *testing.T) {
		res, err := catalog.Resolve(ctx, "1,5*prod-001")
		require.NoError(t, err)
		assert.True(t, res.Quantity.Equal(decimal.RequireFromString("1.5")))
	})

	t.Run("quantity without identifier", func(t *testing.T) {
		_, err := catalog.Resolve(ctx, "3*")
		assert.ErrorIs(t, err, ErrEmptyIdentifier)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := catalog.Resolve(ctx, "99999")
		assertAppCode(t, err, http.StatusNotFound)
	})
}

func TestCatalogService_Search(t *testing.T) {
	ctx := context.Background()
	catalog := NewCatalogService(newTestDocuments(t))

	found, err := catalog.Search(ctx, "kopi", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "prod-001", found[0].ID)

	found, err = catalog.Search(ctx, "prod-002-l", 0)
	require.NoError(t, err)
	require.Len(t, found, 1)

	found, err = catalog.Search(ctx, "", 3)
	require.NoError(t, err)
	assert.Len(t, found, 3)
}
