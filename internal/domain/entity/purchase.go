package entity

import (
	"time"

	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Purchase is a goods receipt from a supplier.
type Purchase struct {
	PONumber      string              `json:"po_number"`
	Date          time.Time           `json:"date"`
	SupplierID    string              `json:"supplier_id"`
	SupplierName  string              `json:"supplier_name,omitempty"`
	PaymentMethod string              `json:"payment_method"`
	Total         decimal.Decimal     `json:"total"`
	Status        enum.PurchaseStatus `json:"status"`
	PPN           string              `json:"ppn"`
	Notes         string              `json:"notes,omitempty"`
	Items         []PurchaseItem      `json:"items"`
}

// PurchaseItem is a received product line. HPP is the unit cost after the
// supplier discount.
type PurchaseItem struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	UnitName      string          `json:"unit_name,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Discount      decimal.Decimal `json:"discount"`
	HPP           decimal.Decimal `json:"hpp"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	Margin        decimal.Decimal `json:"margin"`
	Total         decimal.Decimal `json:"total"`
}

// Recalculate derives HPP, margin and line total from the entered prices.
func (i *PurchaseItem) Recalculate() {
	i.HPP = i.PurchasePrice.Mul(decimal.NewFromInt(1).Sub(i.Discount.Div(hundred)))
	if i.HPP.IsPositive() {
		i.Margin = i.SellingPrice.Div(i.HPP).Sub(decimal.NewFromInt(1)).Mul(hundred).Round(2)
	} else {
		i.Margin = decimal.Zero
	}
	i.Total = i.HPP.Mul(i.Quantity)
}

// Recalculate refreshes every item and the purchase total.
func (p *Purchase) Recalculate() {
	total := decimal.Zero
	for i := range p.Items {
		p.Items[i].Recalculate()
		total = total.Add(p.Items[i].Total)
	}
	p.Total = total
}
