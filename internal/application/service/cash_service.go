package service

import (
	"context"
	"sort"
	"strings"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// CashService records petty-cash movements
type CashService struct {
	docs  *Documents
	clock Clock
}

// NewCashService creates a new cash service
func NewCashService(docs *Documents, clock Clock) *CashService {
	return &CashService{docs: docs, clock: clock}
}

// CashInput represents the create cash transaction input
type CashInput struct {
	Type        enum.CashType
	Amount      decimal.Decimal
	Description string
	Cashier     string
}

// CashSummary lists transactions with their totals
type CashSummary struct {
	Transactions []entity.CashTransaction `json:"transactions"`
	TotalIn      decimal.Decimal          `json:"total_in"`
	TotalOut     decimal.Decimal          `json:"total_out"`
	Balance      decimal.Decimal          `json:"balance"`
}

// CreateTransaction records a cash-in or cash-out entry
func (s *CashService) CreateTransaction(ctx context.Context, input *CashInput) (*entity.CashTransaction, error) {
	if !input.Type.IsValid() {
		return nil, apperror.NewFieldError("type", "must be in or out")
	}
	if !input.Amount.IsPositive() {
		return nil, apperror.NewFieldError("amount", "must be greater than 0")
	}
	if strings.TrimSpace(input.Description) == "" {
		return nil, apperror.NewFieldError("description", "is required")
	}

	now := s.clock.now()
	tx := entity.CashTransaction{
		ID:          utils.MillisReference("CASH", now),
		Date:        now,
		Type:        input.Type,
		Amount:      input.Amount,
		Description: strings.TrimSpace(input.Description),
		Cashier:     input.Cashier,
	}
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		doc.CashTransactions = append(doc.CashTransactions, tx)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tx, nil
}

// ListTransactions returns cash entries newest first with running totals
func (s *CashService) ListTransactions(ctx context.Context) (*CashSummary, error) {
	summary := &CashSummary{TotalIn: decimal.Zero, TotalOut: decimal.Zero}
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		summary.Transactions = append([]entity.CashTransaction{}, doc.CashTransactions...)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(summary.Transactions, func(i, j int) bool {
		return summary.Transactions[i].Date.After(summary.Transactions[j].Date)
	})
	for _, tx := range summary.Transactions {
		if tx.Type == enum.CashTypeIn {
			summary.TotalIn = summary.TotalIn.Add(tx.Amount)
		} else {
			summary.TotalOut = summary.TotalOut.Add(tx.Amount)
		}
	}
	summary.Balance = summary.TotalIn.Sub(summary.TotalOut)
	return summary, nil
}
