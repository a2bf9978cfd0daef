package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/pagination"
	"github.com/sangkips/retail-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// PurchaseService records goods received from suppliers
type PurchaseService struct {
	docs  *Documents
	clock Clock
}

// NewPurchaseService creates a new purchase service
func NewPurchaseService(docs *Documents, clock Clock) *PurchaseService {
	return &PurchaseService{docs: docs, clock: clock}
}

// PurchaseItemInput represents an item in a purchase
type PurchaseItemInput struct {
	ProductID     string
	UnitName      string
	Quantity      decimal.Decimal
	PurchasePrice decimal.Decimal
	Discount      decimal.Decimal
	SellingPrice  decimal.Decimal
}

// PurchaseInput represents the create/update purchase input
type PurchaseInput struct {
	PONumber      string
	Date          *time.Time
	SupplierID    string
	PaymentMethod string
	PPN           string
	Notes         string
	Items         []PurchaseItemInput
}

// ListPurchases returns purchases newest first
func (s *PurchaseService) ListPurchases(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Purchase], error) {
	var items []entity.Purchase
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		items = append([]entity.Purchase{}, doc.Purchases...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Date.After(items[j].Date) })
	return pagination.Paginate(items, params), nil
}

// GetPurchase retrieves a purchase by PO number
func (s *PurchaseService) GetPurchase(ctx context.Context, poNumber string) (*entity.Purchase, error) {
	var purchase *entity.Purchase
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for i := range doc.Purchases {
			if doc.Purchases[i].PONumber == poNumber {
				found := doc.Purchases[i]
				purchase = &found
				return nil
			}
		}
		return apperror.NewNotFoundError("Purchase")
	})
	return purchase, err
}

// CreatePurchase records a purchase and applies it to the catalog: stock is
// increased in base units, cost becomes the discounted unit cost and the
// selling price of the purchased unit is updated.
func (s *PurchaseService) CreatePurchase(ctx context.Context, input *PurchaseInput) (*entity.Purchase, error) {
	var purchase *entity.Purchase
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		p, err := s.buildPurchase(doc, input)
		if err != nil {
			return err
		}
		for _, existing := range doc.Purchases {
			if existing.PONumber == p.PONumber {
				return apperror.NewConflictError("PO number " + p.PONumber + " already exists")
			}
		}
		applyPurchase(doc, p, 1)
		doc.Purchases = append(doc.Purchases, *p)
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("po", purchase.PONumber).Str("total", purchase.Total.String()).Msg("Purchase recorded")
	return purchase, nil
}

// UpdatePurchase replaces a purchase. The stock added by the previous
// version is taken back before the new version is applied.
func (s *PurchaseService) UpdatePurchase(ctx context.Context, poNumber string, input *PurchaseInput) (*entity.Purchase, error) {
	var purchase *entity.Purchase
	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		idx := -1
		for i := range doc.Purchases {
			if doc.Purchases[i].PONumber == poNumber {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperror.NewNotFoundError("Purchase")
		}

		input.PONumber = poNumber
		p, err := s.buildPurchase(doc, input)
		if err != nil {
			return err
		}
		applyPurchase(doc, &doc.Purchases[idx], -1)
		applyPurchase(doc, p, 1)
		doc.Purchases[idx] = *p
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchase, nil
}

func (s *PurchaseService) buildPurchase(doc *entity.Document, input *PurchaseInput) (*entity.Purchase, error) {
	if len(input.Items) == 0 {
		return nil, apperror.NewFieldError("items", "at least one item is required")
	}

	now := s.clock.now()
	p := &entity.Purchase{
		PONumber:      strings.TrimSpace(input.PONumber),
		Date:          now,
		SupplierID:    input.SupplierID,
		PaymentMethod: input.PaymentMethod,
		Status:        enum.PurchaseStatusFor(input.PaymentMethod),
		PPN:           input.PPN,
		Notes:         input.Notes,
	}
	if p.PONumber == "" {
		p.PONumber = utils.DatedReference("PB", now)
	}
	if input.Date != nil {
		p.Date = *input.Date
	}
	if p.PPN == "" {
		p.PPN = "non-ppn"
	}
	for _, sup := range doc.Suppliers {
		if sup.ID == p.SupplierID {
			p.SupplierName = sup.Name
		}
	}

	for _, in := range input.Items {
		product, ok := doc.FindProduct(in.ProductID)
		if !ok {
			return nil, apperror.NewNotFoundError("Product " + in.ProductID)
		}
		if !in.Quantity.IsPositive() {
			return nil, apperror.NewFieldError("items", "quantity must be greater than 0")
		}
		if in.Discount.IsNegative() || in.Discount.GreaterThan(hundredPercent) {
			return nil, apperror.NewFieldError("items", "discount must be between 0 and 100")
		}
		unitName := in.UnitName
		if _, ok := product.UnitByName(unitName); !ok {
			unitName = product.BaseUnit().Name
		}
		item := entity.PurchaseItem{
			ProductID:     product.ID,
			ProductName:   product.Name,
			UnitName:      unitName,
			Quantity:      in.Quantity,
			PurchasePrice: in.PurchasePrice,
			Discount:      in.Discount,
			SellingPrice:  in.SellingPrice,
		}
		item.Recalculate()
		p.Items = append(p.Items, item)
	}
	p.Recalculate()
	return p, nil
}

var hundredPercent = decimal.NewFromInt(100)

// applyPurchase adds (sign 1) or removes (sign -1) the purchase's stock.
// Applying also records the latest cost and selling price.
func applyPurchase(doc *entity.Document, p *entity.Purchase, sign int64) {
	for _, item := range p.Items {
		product, ok := doc.FindProduct(item.ProductID)
		if !ok {
			continue
		}
		unit, ok := product.UnitByName(item.UnitName)
		if !ok {
			unit = product.BaseUnit()
		}
		delta := item.Quantity.Mul(unit.Quantity).Mul(decimal.NewFromInt(sign))
		product.Stock = decimal.Max(product.Stock.Add(delta), decimal.Zero)
		if sign < 0 {
			continue
		}

		product.Cost = item.HPP.Div(unit.Quantity).Round(2)
		if !item.SellingPrice.IsPositive() {
			continue
		}
		if unit.IsBase() {
			product.SetBasePrice(item.SellingPrice)
			continue
		}
		for i := range product.Units {
			if product.Units[i].Name == unit.Name {
				product.Units[i].Price = item.SellingPrice
			}
		}
	}
}
