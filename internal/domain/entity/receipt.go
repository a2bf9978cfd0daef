package entity

import (
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// ReceiptHeader contains store info printed at the top of a receipt.
type ReceiptHeader struct {
	StoreName string `json:"store_name"`
	Address   string `json:"address,omitempty"`
	City      string `json:"city,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

// ReceiptItem is a single line item on a receipt.
type ReceiptItem struct {
	Name      string          `json:"name"`
	Unit      string          `json:"unit"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Discount  decimal.Decimal `json:"discount"`
	Total     decimal.Decimal `json:"total"`
}

// Receipt is the printable view of a settled sale.
type Receipt struct {
	Header         ReceiptHeader      `json:"header"`
	InvoiceID      string             `json:"invoice_id"`
	Date           string             `json:"date"`
	Cashier        string             `json:"cashier"`
	Customer       string             `json:"customer,omitempty"`
	MemberID       string             `json:"member_id,omitempty"`
	Items          []ReceiptItem      `json:"items"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	LineDiscounts  decimal.Decimal    `json:"line_discounts"`
	PointsRedeemed int64              `json:"points_redeemed,omitempty"`
	PointsDiscount decimal.Decimal    `json:"points_discount"`
	Total          decimal.Decimal    `json:"total"`
	Tendered       decimal.Decimal    `json:"tendered"`
	Change         decimal.Decimal    `json:"change"`
	PaymentMethod  enum.PaymentMethod `json:"payment_method"`
	PaymentLabel   string             `json:"payment_label"`
	Footer         string             `json:"footer,omitempty"`
}

// NewReceipt builds a receipt from a settled sale and the store settings.
func NewReceipt(sale *Sale, settings *Settings) *Receipt {
	r := &Receipt{
		InvoiceID:      sale.InvoiceID,
		Date:           sale.Date.Format("02/01/2006 15:04"),
		Cashier:        sale.Cashier,
		Customer:       sale.Customer,
		MemberID:       sale.MemberID,
		Subtotal:       decimal.Zero,
		LineDiscounts:  decimal.Zero,
		PointsDiscount: decimal.Zero,
		Total:          sale.Total,
		Tendered:       sale.AmountPaid,
		Change:         sale.Change,
		PaymentMethod:  sale.PaymentMethod,
		PaymentLabel:   sale.PaymentMethod.Label(sale.PaymentDetail),
	}
	if settings != nil {
		r.Header = ReceiptHeader{
			StoreName: settings.StoreName,
			Address:   settings.Address,
			City:      settings.City,
			Phone:     settings.Phone,
		}
		r.Footer = settings.Footer
	}

	for _, item := range sale.Items {
		if item.IsPointsDiscount() {
			r.PointsRedeemed += item.PointsRedeemed
			r.PointsDiscount = r.PointsDiscount.Add(item.LineTotal().Neg())
			continue
		}
		r.Items = append(r.Items, ReceiptItem{
			Name:      item.ProductName,
			Unit:      item.UnitName,
			Quantity:  item.Quantity,
			UnitPrice: item.Price,
			Discount:  item.DiscountAmount,
			Total:     item.LineTotal(),
		})
		r.Subtotal = r.Subtotal.Add(item.Price.Mul(item.Quantity))
		r.LineDiscounts = r.LineDiscounts.Add(item.DiscountAmount)
	}
	return r
}
