package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Member is a loyalty customer.
type Member struct {
	ID               string          `json:"id"`
	Barcode          string          `json:"barcode,omitempty"`
	Name             string          `json:"name" validate:"required,max=255"`
	Address          string          `json:"address,omitempty"`
	City             string          `json:"city,omitempty"`
	Phone            string          `json:"phone" validate:"required,max=50"`
	NPWP             string          `json:"npwp,omitempty"`
	RegistrationDate time.Time       `json:"registration_date"`
	Deposit          decimal.Decimal `json:"deposit"`
	CreditLimit      decimal.Decimal `json:"credit_limit"`
	Level            string          `json:"level"`
	Points           int64           `json:"points" validate:"min=0"`
	ExpiryDate       time.Time       `json:"expiry_date"`
	IsActive         bool            `json:"is_active"`
}
