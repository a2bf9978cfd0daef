package entity

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func testProduct(id string, price int64, units ...Unit) Product {
	return Product{ID: id, Name: "Product " + id, Price: dec(price), Stock: dec(100), Units: units}
}

func dozenProduct() Product {
	return testProduct("prod-002", 22000,
		Unit{Name: "PCS", Quantity: dec(1), Price: dec(22000), Barcode: "prod-002"},
		Unit{Name: "LUSIN", Quantity: dec(12), Price: dec(240000), Barcode: "prod-002-L"},
	)
}

func TestCart_GrandTotal(t *testing.T) {
	cart := NewCart(0)
	require.NoError(t, cart.AddLine(testProduct("prod-001", 18000), dec(2), nil))
	require.NoError(t, cart.AddLine(testProduct("prod-002", 22000), dec(1), nil))
	require.NoError(t, cart.UpdateLine("prod-002", "", CartFieldDiscount, dec(2000)))

	assert.True(t, cart.GrandTotal().Equal(dec(56000)), "got %s", cart.GrandTotal())
	assert.True(t, cart.Subtotal().Equal(dec(58000)))
	assert.True(t, cart.LineDiscounts().Equal(dec(2000)))
}

func TestCart_AddLine(t *testing.T) {
	t.Run("merges same product and unit", func(t *testing.T) {
		cart := NewCart(0)
		p := testProduct("prod-001", 18000)
		require.NoError(t, cart.AddLine(p, dec(1), nil))
		require.NoError(t, cart.AddLine(p, dec(2), nil))

		require.Len(t, cart.Lines, 1)
		assert.True(t, cart.Lines[0].Quantity.Equal(dec(3)))
		assert.Equal(t, DefaultUnitName, cart.Lines[0].SelectedUnit.Name)
	})

	t.Run("same product in another unit is a new line", func(t *testing.T) {
		cart := NewCart(0)
		p := dozenProduct()
		dozen, _ := p.UnitByName("LUSIN")
		require.NoError(t, cart.AddLine(p, dec(1), nil))
		require.NoError(t, cart.AddLine(p, dec(1), &dozen))

		require.Len(t, cart.Lines, 2)
		assert.True(t, cart.GrandTotal().Equal(dec(262000)))
		assert.True(t, cart.Lines[1].BaseQuantity().Equal(dec(12)))
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		cart := NewCart(0)
		assert.ErrorIs(t, cart.AddLine(testProduct("p", 1000), dec(0), nil), ErrInvalidQuantity)
		assert.ErrorIs(t, cart.AddLine(testProduct("p", 1000), dec(-1), nil), ErrInvalidQuantity)
	})

	t.Run("capacity counts distinct lines only", func(t *testing.T) {
		cart := NewCart(DefaultMaxCartLines)
		for i := 0; i < DefaultMaxCartLines; i++ {
			require.NoError(t, cart.AddLine(testProduct(fmt.Sprintf("p-%02d", i), 1000), dec(1), nil))
		}

		err := cart.AddLine(testProduct("p-extra", 1000), dec(1), nil)
		assert.ErrorIs(t, err, ErrCartFull)
		assert.Len(t, cart.Lines, DefaultMaxCartLines)

		// merging into an existing line still works when full
		require.NoError(t, cart.AddLine(testProduct("p-00", 1000), dec(1), nil))
		assert.True(t, cart.Lines[0].Quantity.Equal(dec(2)))
	})

	t.Run("blocked once points cover the total", func(t *testing.T) {
		cart := NewCart(0)
		require.NoError(t, cart.AddLine(testProduct("p", 1000), dec(1), nil))
		_, err := cart.RedeemPoints(1000, dec(1))
		require.NoError(t, err)
		require.True(t, cart.GrandTotal().IsZero())

		assert.ErrorIs(t, cart.AddLine(testProduct("q", 500), dec(1), nil), ErrPaidByPoints)
	})
}

func TestCart_UpdateLine(t *testing.T) {
	cart := NewCart(0)
	p := dozenProduct()
	dozen, _ := p.UnitByName("LUSIN")
	require.NoError(t, cart.AddLine(p, dec(2), nil))
	require.NoError(t, cart.AddLine(p, dec(1), &dozen))

	t.Run("addresses one unit", func(t *testing.T) {
		require.NoError(t, cart.UpdateLine("prod-002", "LUSIN", CartFieldQuantity, dec(3)))
		assert.True(t, cart.Lines[0].Quantity.Equal(dec(2)))
		assert.True(t, cart.Lines[1].Quantity.Equal(dec(3)))
	})

	t.Run("negative values clamp to zero", func(t *testing.T) {
		require.NoError(t, cart.UpdateLine("prod-002", "PCS", CartFieldDiscount, dec(-500)))
		assert.True(t, cart.Lines[0].DiscountAmount.IsZero())
	})

	t.Run("empty unit addresses every line of the product", func(t *testing.T) {
		require.NoError(t, cart.UpdateLine("prod-002", "", CartFieldDiscount, dec(100)))
		assert.True(t, cart.Lines[0].DiscountAmount.Equal(dec(100)))
		assert.True(t, cart.Lines[1].DiscountAmount.Equal(dec(100)))
	})

	t.Run("errors", func(t *testing.T) {
		assert.ErrorIs(t, cart.UpdateLine("nope", "", CartFieldQuantity, dec(1)), ErrLineNotFound)
		assert.ErrorIs(t, cart.UpdateLine("prod-002", "", CartField("price"), dec(1)), ErrInvalidCartField)
		assert.ErrorIs(t, cart.UpdateLine(PointsDiscountID, "", CartFieldQuantity, dec(1)), ErrPointsLineLocked)
	})
}

func TestCart_ChangeUnit(t *testing.T) {
	t.Run("takes unit price without rescaling quantity", func(t *testing.T) {
		cart := NewCart(0)
		require.NoError(t, cart.AddLine(dozenProduct(), dec(2), nil))
		require.NoError(t, cart.ChangeUnit("prod-002", "PCS", "LUSIN"))

		require.Len(t, cart.Lines, 1)
		assert.Equal(t, "LUSIN", cart.Lines[0].SelectedUnit.Name)
		assert.True(t, cart.Lines[0].Quantity.Equal(dec(2)))
		assert.True(t, cart.GrandTotal().Equal(dec(480000)))
	})

	t.Run("merges into an existing line of the target unit", func(t *testing.T) {
		cart := NewCart(0)
		p := dozenProduct()
		dozen, _ := p.UnitByName("LUSIN")
		require.NoError(t, cart.AddLine(p, dec(2), nil))
		require.NoError(t, cart.AddLine(p, dec(1), &dozen))
		require.NoError(t, cart.ChangeUnit("prod-002", "PCS", "LUSIN"))

		require.Len(t, cart.Lines, 1)
		assert.True(t, cart.Lines[0].Quantity.Equal(dec(3)))
	})

	t.Run("unknown unit", func(t *testing.T) {
		cart := NewCart(0)
		require.NoError(t, cart.AddLine(dozenProduct(), dec(1), nil))
		assert.ErrorIs(t, cart.ChangeUnit("prod-002", "PCS", "KARTON"), ErrUnitNotFound)
	})
}

func TestCart_RedeemPoints(t *testing.T) {
	cart := NewCart(0)
	require.NoError(t, cart.AddLine(testProduct("p", 15000), dec(1), nil))

	line, err := cart.RedeemPoints(100, dec(1))
	require.NoError(t, err)
	assert.Equal(t, PointsDiscountID, line.ID)
	assert.Equal(t, PointsUnitName, line.SelectedUnit.Name)
	assert.Equal(t, "Tukar Poin (100 Poin)", line.Name)
	assert.True(t, line.UnitPrice().Equal(dec(-100)))
	assert.True(t, cart.GrandTotal().Equal(dec(14900)))

	t.Run("replaces the previous redemption", func(t *testing.T) {
		_, err := cart.RedeemPoints(250, dec(1))
		require.NoError(t, err)
		assert.Len(t, cart.Lines, 2)
		assert.True(t, cart.PointsDiscount().Equal(dec(250)))
		assert.True(t, cart.ItemsTotal().Equal(dec(15000)))
	})

	t.Run("points line is not subject to capacity", func(t *testing.T) {
		full := NewCart(1)
		require.NoError(t, full.AddLine(testProduct("p", 15000), dec(1), nil))
		_, err := full.RedeemPoints(10, dec(1))
		assert.NoError(t, err)
		assert.Len(t, full.Lines, 2)
	})

	t.Run("clear", func(t *testing.T) {
		assert.True(t, cart.ClearRedemption())
		assert.False(t, cart.ClearRedemption())
		assert.True(t, cart.GrandTotal().Equal(dec(15000)))
	})

	t.Run("invalid input", func(t *testing.T) {
		_, err := cart.RedeemPoints(0, dec(1))
		assert.ErrorIs(t, err, ErrInvalidQuantity)
		_, err = cart.RedeemPoints(10, decimal.Zero)
		assert.ErrorIs(t, err, ErrInvalidPointValue)
	})
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := NewCart(0)
	require.NoError(t, cart.AddLine(dozenProduct(), dec(1), nil))

	clone := cart.Clone()
	clone.Lines[0].Quantity = dec(9)
	clone.Lines[0].Units[0].Price = dec(1)

	assert.True(t, cart.Lines[0].Quantity.Equal(dec(1)))
	assert.True(t, cart.Lines[0].Units[0].Price.Equal(dec(22000)))
}

func TestProduct_Units(t *testing.T) {
	bare := testProduct("prod-009", 5000)
	base := bare.BaseUnit()
	assert.Equal(t, DefaultUnitName, base.Name)
	assert.Equal(t, "prod-009", base.Barcode)
	assert.True(t, base.Price.Equal(dec(5000)))

	p := dozenProduct()
	u, ok := p.UnitByBarcode("PROD-002-l")
	require.True(t, ok)
	assert.Equal(t, "LUSIN", u.Name)
	assert.Equal(t, 1, p.BaseUnitCount())

	p.SetBasePrice(dec(23000))
	assert.True(t, p.Price.Equal(dec(23000)))
	assert.True(t, p.Units[0].Price.Equal(dec(23000)))
	assert.True(t, p.Units[1].Price.Equal(dec(240000)))
}
