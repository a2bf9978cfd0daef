package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPurchaseService_CreatePurchase(t *testing.T) {
	ctx := context.Background()
	docs := newTestDocuments(t)
	svc := NewPurchaseService(docs, fixedClock)

	p, err := svc.CreatePurchase(ctx, &PurchaseInput{
		PONumber:      "PO-1",
		SupplierID:    "sup-002",
		PaymentMethod: "kredit",
		Items: []PurchaseItemInput{
			{ProductID: "prod-002", UnitName: "LUSIN", Quantity: dec(2), PurchasePrice: dec(180000), Discount: dec(10), SellingPrice: dec(250000)},
			{ProductID: "prod-001", Quantity: dec(10), PurchasePrice: dec(11000), SellingPrice: dec(19000)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, enum.PurchaseStatusPending, p.Status)
	assert.Equal(t, "PT Sinar Jaya Abadi", p.SupplierName)
	assert.Equal(t, "non-ppn", p.PPN)
	assertDecimal(t, 162000, p.Items[0].HPP)
	assertDecimal(t, 434000, p.Total)
	assert.Equal(t, "PCS", p.Items[1].UnitName)

	croissant := findProduct(t, docs, "prod-002")
	assertDecimal(t, 104, croissant.Stock)
	assertDecimal(t, 13500, croissant.Cost)
	assertDecimal(t, 22000, croissant.Price)
	dozen, _ := croissant.UnitByName("LUSIN")
	assertDecimal(t, 250000, dozen.Price)

	coffee := findProduct(t, docs, "prod-001")
	assertDecimal(t, 160, coffee.Stock)
	assertDecimal(t, 11000, coffee.Cost)
	assertDecimal(t, 19000, coffee.Price)
	assertDecimal(t, 19000, coffee.BaseUnit().Price)

	t.Run("duplicate PO number", func(t *testing.T) {
		_, err := svc.CreatePurchase(ctx, &PurchaseInput{
			PONumber: "PO-1",
			Items:    []PurchaseItemInput{{ProductID: "prod-001", Quantity: dec(1)}},
		})
		assertAppCode(t, err, http.StatusConflict)
		assertDecimal(t, 160, findProduct(t, docs, "prod-001").Stock)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := svc.CreatePurchase(ctx, &PurchaseInput{})
		assertAppCode(t, err, http.StatusUnprocessableEntity)

		_, err = svc.CreatePurchase(ctx, &PurchaseInput{Items: []PurchaseItemInput{{ProductID: "nope", Quantity: dec(1)}}})
		assertAppCode(t, err, http.StatusNotFound)

		_, err = svc.CreatePurchase(ctx, &PurchaseInput{Items: []PurchaseItemInput{{ProductID: "prod-001", Quantity: dec(1), Discount: dec(150)}}})
		assertAppCode(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("update reverts the previous stock", func(t *testing.T) {
		updated, err := svc.UpdatePurchase(ctx, "PO-1", &PurchaseInput{
			PaymentMethod: "tunai",
			Items:         []PurchaseItemInput{{ProductID: "prod-001", Quantity: dec(5), PurchasePrice: dec(11000)}},
		})
		require.NoError(t, err)
		assert.Equal(t, "PO-1", updated.PONumber)
		assert.Equal(t, enum.PurchaseStatusReceived, updated.Status)

		assertDecimal(t, 80, findProduct(t, docs, "prod-002").Stock)
		assertDecimal(t, 155, findProduct(t, docs, "prod-001").Stock)

		got, err := svc.GetPurchase(ctx, "PO-1")
		require.NoError(t, err)
		assert.Len(t, got.Items, 1)

		_, err = svc.UpdatePurchase(ctx, "PO-404", &PurchaseInput{Items: []PurchaseItemInput{{ProductID: "prod-001", Quantity: dec(1)}}})
		assertAppCode(t, err, http.StatusNotFound)
	})

	t.Run("generated PO number", func(t *testing.T) {
		p, err := svc.CreatePurchase(ctx, &PurchaseInput{Items: []PurchaseItemInput{{ProductID: "prod-003", Quantity: dec(1), PurchasePrice: dec(1)}}})
		require.NoError(t, err)
		assert.Regexp(t, `^PB-20240501-\d{4}$`, p.PONumber)

		list, err := svc.ListPurchases(ctx, nil)
		require.NoError(t, err)
		assert.Len(t, list.Items, 2)
	})
}
