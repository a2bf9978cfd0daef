package request

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseItemRequest represents an item in a purchase request
type PurchaseItemRequest struct {
	ProductID     string          `json:"product_id" binding:"required"`
	UnitName      string          `json:"unit_name"`
	Quantity      decimal.Decimal `json:"quantity"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	Discount      decimal.Decimal `json:"discount"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
}

// PurchaseRequest represents a purchase create/update request
type PurchaseRequest struct {
	PONumber      string                `json:"po_number"`
	Date          *time.Time            `json:"date"`
	SupplierID    string                `json:"supplier_id" binding:"required"`
	PaymentMethod string                `json:"payment_method" binding:"required"`
	PPN           string                `json:"ppn" binding:"omitempty,oneof=ppn non-ppn"`
	Notes         string                `json:"notes"`
	Items         []PurchaseItemRequest `json:"items" binding:"required,min=1,dive"`
}
