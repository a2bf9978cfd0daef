package entity

import (
	"time"

	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Sale is a settled transaction. Items are the cart lines as they were at
// settlement, the points line included.
type Sale struct {
	InvoiceID     string             `json:"invoice_id"`
	Date          time.Time          `json:"date"`
	Customer      string             `json:"customer"`
	MemberID      string             `json:"member_id,omitempty"`
	Cashier       string             `json:"cashier"`
	Total         decimal.Decimal    `json:"total"`
	Status        enum.SaleStatus    `json:"status"`
	PaymentMethod enum.PaymentMethod `json:"payment_method"`
	PaymentDetail string             `json:"payment_detail,omitempty"`
	AmountPaid    decimal.Decimal    `json:"amount_paid"`
	Change        decimal.Decimal    `json:"change"`
	Items         []SaleItem         `json:"items"`
}

// SaleItem is a denormalized sale line.
type SaleItem struct {
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name"`
	Quantity       decimal.Decimal `json:"quantity"`
	Price          decimal.Decimal `json:"price"`
	DiscountAmount decimal.Decimal `json:"discount_amount"`
	UnitName       string          `json:"unit_name"`
	UnitQuantity   decimal.Decimal `json:"unit_quantity"`
	PointsRedeemed int64           `json:"points_redeemed,omitempty"`
}

// IsPointsDiscount reports whether the item records a points redemption.
func (i SaleItem) IsPointsDiscount() bool {
	return i.ProductID == PointsDiscountID
}

// LineTotal is price × quantity − discount.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(i.Quantity).Sub(i.DiscountAmount)
}

// NewSaleItem snapshots a cart line.
func NewSaleItem(line CartItem) SaleItem {
	return SaleItem{
		ProductID:      line.ID,
		ProductName:    line.Name,
		Quantity:       line.Quantity,
		Price:          line.UnitPrice(),
		DiscountAmount: line.DiscountAmount,
		UnitName:       line.SelectedUnit.Name,
		UnitQuantity:   line.SelectedUnit.Quantity,
		PointsRedeemed: line.PointsRedeemed,
	}
}

// PointsRedeemed returns the points spent on the sale.
func (s *Sale) PointsRedeemed() int64 {
	var n int64
	for _, item := range s.Items {
		n += item.PointsRedeemed
	}
	return n
}

// FindItem returns the first line selling productID in unitName.
func (s *Sale) FindItem(productID, unitName string) (*SaleItem, bool) {
	for i := range s.Items {
		if s.Items[i].ProductID == productID && (unitName == "" || s.Items[i].UnitName == unitName) {
			return &s.Items[i], true
		}
	}
	return nil, false
}
