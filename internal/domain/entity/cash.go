package entity

import (
	"time"

	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// CashTransaction is a petty-cash movement outside of sales.
type CashTransaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Type        enum.CashType   `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Cashier     string          `json:"cashier,omitempty"`
}

// Salesman is a field salesperson referenced by sales reports.
type Salesman struct {
	ID      string          `json:"id"`
	Name    string          `json:"name"`
	Phone   string          `json:"phone,omitempty"`
	Address string          `json:"address,omitempty"`
	Status  enum.UserStatus `json:"status"`
}

// Bank is a bank account or e-wallet accepted as a non-cash payment.
type Bank struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	AccountNumber string `json:"account_number,omitempty"`
	AccountHolder string `json:"account_holder,omitempty"`
}
