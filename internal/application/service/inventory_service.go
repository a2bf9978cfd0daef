package service

import (
	"context"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// InventoryService handles sales returns and stock counts
type InventoryService struct {
	docs  *Documents
	clock Clock
}

// NewInventoryService creates a new inventory service
func NewInventoryService(docs *Documents, clock Clock) *InventoryService {
	return &InventoryService{docs: docs, clock: clock}
}

// FindSale looks up a sale by invoice id, ignoring case
func (s *InventoryService) FindSale(ctx context.Context, invoiceID string) (*entity.Sale, error) {
	var sale *entity.Sale
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		found, ok := findSale(doc, invoiceID)
		if !ok {
			return apperror.NewNotFoundError("Sale " + invoiceID)
		}
		copied := *found
		sale = &copied
		return nil
	})
	return sale, err
}

func findSale(doc *entity.Document, invoiceID string) (*entity.Sale, bool) {
	invoiceID = strings.TrimSpace(invoiceID)
	for i := range doc.Sales {
		if strings.EqualFold(doc.Sales[i].InvoiceID, invoiceID) {
			return &doc.Sales[i], true
		}
	}
	return nil, false
}

// ReturnItemInput is the quantity brought back of one sale line
type ReturnItemInput struct {
	ProductID string
	UnitName  string
	Quantity  decimal.Decimal
}

// SalesReturnInput represents the create return input
type SalesReturnInput struct {
	InvoiceID string
	Reason    string
	Items     []ReturnItemInput
}

// CreateReturn records returned goods against a sale. Each quantity is
// clamped to what was sold; stock is restored in base units.
func (s *InventoryService) CreateReturn(ctx context.Context, input *SalesReturnInput) (*entity.SalesReturn, error) {
	now := s.clock.now()
	var ret *entity.SalesReturn

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		sale, ok := findSale(doc, input.InvoiceID)
		if !ok {
			return apperror.NewNotFoundError("Sale " + input.InvoiceID)
		}

		r := &entity.SalesReturn{
			ID:        utils.DatedReference("RTN", now),
			Date:      now,
			InvoiceID: sale.InvoiceID,
			Customer:  sale.Customer,
			Reason:    input.Reason,
			Total:     decimal.Zero,
		}
		for _, in := range input.Items {
			if in.ProductID == entity.PointsDiscountID {
				continue
			}
			sold, ok := sale.FindItem(in.ProductID, in.UnitName)
			if !ok {
				return apperror.NewNotFoundError("Sale item " + in.ProductID)
			}
			qty := decimal.Min(decimal.Max(in.Quantity, decimal.Zero), sold.Quantity)
			if !qty.IsPositive() {
				continue
			}
			r.Items = append(r.Items, entity.SalesReturnItem{
				ProductID:    sold.ProductID,
				ProductName:  sold.ProductName,
				UnitName:     sold.UnitName,
				UnitQuantity: sold.UnitQuantity,
				Quantity:     qty,
				Price:        sold.Price,
			})
			r.Total = r.Total.Add(sold.Price.Mul(qty))
		}
		if len(r.Items) == 0 {
			return apperror.NewFieldError("items", "at least one item must be returned")
		}

		for _, item := range r.Items {
			if p, ok := doc.FindProduct(item.ProductID); ok {
				multiplier := item.UnitQuantity
				if !multiplier.IsPositive() {
					multiplier = decimal.NewFromInt(1)
				}
				p.Stock = p.Stock.Add(item.Quantity.Mul(multiplier))
			}
		}
		doc.SalesReturns = append(doc.SalesReturns, *r)
		ret = r
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("id", ret.ID).Str("invoice", ret.InvoiceID).Str("total", ret.Total.String()).Msg("Sales return recorded")
	return ret, nil
}

// ListReturns returns the sales returns newest first
func (s *InventoryService) ListReturns(ctx context.Context) ([]entity.SalesReturn, error) {
	var out []entity.SalesReturn
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		out = append([]entity.SalesReturn{}, doc.SalesReturns...)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}

// StockCountInput is the physical count of one product
type StockCountInput struct {
	ProductID     string
	PhysicalStock decimal.Decimal
}

// StockAdjustmentInput represents the create adjustment input
type StockAdjustmentInput struct {
	Notes string
	Items []StockCountInput
}

// CreateAdjustment sets each product's stock to the counted quantity and
// records the difference from the system stock.
func (s *InventoryService) CreateAdjustment(ctx context.Context, input *StockAdjustmentInput) (*entity.StockAdjustment, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}

	now := s.clock.now()
	adj := &entity.StockAdjustment{
		ID:    utils.DatedReference("ADJ", now),
		Date:  now,
		Notes: input.Notes,
	}

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		for _, in := range input.Items {
			if in.PhysicalStock.IsNegative() {
				return apperror.NewFieldError("physical_stock", "must not be negative")
			}
			p, ok := doc.FindProduct(in.ProductID)
			if !ok {
				return apperror.NewNotFoundError("Product " + in.ProductID)
			}
			adj.Items = append(adj.Items, entity.StockAdjustmentItem{
				ProductID:     p.ID,
				ProductName:   p.Name,
				SystemStock:   p.Stock,
				PhysicalStock: in.PhysicalStock,
				Difference:    in.PhysicalStock.Sub(p.Stock),
			})
			p.Stock = in.PhysicalStock
		}
		doc.StockAdjustments = append(doc.StockAdjustments, *adj)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adj, nil
}

// ListAdjustments returns stock adjustments newest first
func (s *InventoryService) ListAdjustments(ctx context.Context) ([]entity.StockAdjustment, error) {
	var out []entity.StockAdjustment
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		out = append([]entity.StockAdjustment{}, doc.StockAdjustments...)
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, err
}
