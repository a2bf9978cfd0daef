package request

import "github.com/shopspring/decimal"

// ReturnItemRequest is the quantity returned of one sale line
type ReturnItemRequest struct {
	ProductID string          `json:"product_id" binding:"required"`
	UnitName  string          `json:"unit_name"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// SalesReturnRequest represents a sales return request
type SalesReturnRequest struct {
	InvoiceID string              `json:"invoice_id" binding:"required"`
	Reason    string              `json:"reason"`
	Items     []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// StockCountRequest is the physical count of one product
type StockCountRequest struct {
	ProductID     string          `json:"product_id" binding:"required"`
	PhysicalStock decimal.Decimal `json:"physical_stock"`
}

// StockAdjustmentRequest represents a stock opname request
type StockAdjustmentRequest struct {
	Notes string              `json:"notes"`
	Items []StockCountRequest `json:"items" binding:"required,min=1,dive"`
}

// CashTransactionRequest represents a cash in/out request
type CashTransactionRequest struct {
	Type        string          `json:"type" binding:"required,oneof=in out"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description" binding:"required"`
}
