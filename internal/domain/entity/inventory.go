package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockAdjustment records a physical stock count.
type StockAdjustment struct {
	ID    string                `json:"id"`
	Date  time.Time             `json:"date"`
	Notes string                `json:"notes,omitempty"`
	Items []StockAdjustmentItem `json:"items"`
}

type StockAdjustmentItem struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	SystemStock   decimal.Decimal `json:"system_stock"`
	PhysicalStock decimal.Decimal `json:"physical_stock"`
	Difference    decimal.Decimal `json:"difference"`
}

// SalesReturn records goods brought back against a sale.
type SalesReturn struct {
	ID        string            `json:"id"`
	Date      time.Time         `json:"date"`
	InvoiceID string            `json:"invoice_id"`
	Customer  string            `json:"customer"`
	Reason    string            `json:"reason,omitempty"`
	Total     decimal.Decimal   `json:"total"`
	Items     []SalesReturnItem `json:"items"`
}

type SalesReturnItem struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	UnitName     string          `json:"unit_name"`
	UnitQuantity decimal.Decimal `json:"unit_quantity"`
	Quantity     decimal.Decimal `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
}
