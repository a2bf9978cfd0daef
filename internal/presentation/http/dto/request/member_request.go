package request

import "github.com/shopspring/decimal"

// MemberRequest represents a member create/update request
type MemberRequest struct {
	ID          string          `json:"id"`
	Barcode     string          `json:"barcode"`
	Name        string          `json:"name" binding:"required,max=255"`
	Address     string          `json:"address"`
	City        string          `json:"city"`
	Phone       string          `json:"phone" binding:"required,max=50"`
	NPWP        string          `json:"npwp"`
	Deposit     decimal.Decimal `json:"deposit"`
	CreditLimit decimal.Decimal `json:"credit_limit"`
	Level       string          `json:"level"`
	Points      *int64          `json:"points" binding:"omitempty,min=0"`
	IsActive    *bool           `json:"is_active"`
}
