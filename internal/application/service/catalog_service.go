package service

import (
	"context"
	"strings"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ScanResult is a resolved scan token.
type ScanResult struct {
	Product  entity.Product  `json:"product"`
	Unit     entity.Unit     `json:"unit"`
	Quantity decimal.Decimal `json:"quantity"`
}

// ParseScanToken splits an optional "<qty>*" prefix from the identifier.
// A comma is accepted as decimal separator ("1,5*PLU"). When the prefix is
// not a positive number the whole token is the identifier with quantity 1.
func ParseScanToken(token string) (decimal.Decimal, string) {
	token = strings.TrimSpace(token)
	quantity := decimal.NewFromInt(1)

	if !strings.Contains(token, "*") {
		return quantity, token
	}

	parts := strings.Split(token, "*")
	qtyText := strings.Replace(strings.TrimSpace(parts[0]), ",", ".", 1)
	qty, err := decimal.NewFromString(qtyText)
	if err != nil || !qty.IsPositive() {
		return quantity, token
	}
	return qty, strings.TrimSpace(strings.Join(parts[1:], "*"))
}

// ResolveIdentifier finds the product and unit an identifier refers to.
// Products are checked in catalog order: an exact PLU match selects the base
// unit, an exact unit barcode match selects that unit. Failing both, the
// first product whose name contains the identifier is used with its base
// unit. Matching ignores case.
func ResolveIdentifier(products []entity.Product, identifier string) (entity.Product, entity.Unit, bool) {
	if identifier == "" {
		return entity.Product{}, entity.Unit{}, false
	}

	for i := range products {
		p := &products[i]
		if strings.EqualFold(p.ID, identifier) {
			return *p, p.BaseUnit(), true
		}
		if len(p.Units) == 0 {
			continue
		}
		if unit, ok := p.UnitByBarcode(identifier); ok {
			return *p, unit, true
		}
	}

	needle := strings.ToLower(identifier)
	for i := range products {
		p := &products[i]
		if strings.Contains(strings.ToLower(p.Name), needle) {
			return *p, p.BaseUnit(), true
		}
	}
	return entity.Product{}, entity.Unit{}, false
}

// CatalogService resolves scanner and keyboard input against the catalog.
type CatalogService struct {
	docs *Documents
}

// NewCatalogService creates a new catalog service
func NewCatalogService(docs *Documents) *CatalogService {
	return &CatalogService{docs: docs}
}

// Resolve parses token and looks it up. It returns ErrEmptyIdentifier for a
// token with a quantity prefix only.
func (s *CatalogService) Resolve(ctx context.Context, token string) (*ScanResult, error) {
	quantity, identifier := ParseScanToken(token)
	if identifier == "" {
		return nil, ErrEmptyIdentifier
	}

	var result *ScanResult
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		product, unit, ok := ResolveIdentifier(doc.Products, identifier)
		if !ok {
			return apperror.NewNotFoundError("Product " + identifier)
		}
		result = &ScanResult{Product: product, Unit: unit, Quantity: quantity}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Search returns products whose PLU, unit barcode or name matches query.
func (s *CatalogService) Search(ctx context.Context, query string, limit int) ([]entity.Product, error) {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []entity.Product
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for _, p := range doc.Products {
			if limit > 0 && len(out) >= limit {
				break
			}
			if query == "" || productMatches(&p, query) {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

func productMatches(p *entity.Product, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(p.ID), lowerQuery) ||
		strings.Contains(strings.ToLower(p.Name), lowerQuery) {
		return true
	}
	for _, u := range p.Units {
		if u.Barcode != "" && strings.EqualFold(u.Barcode, lowerQuery) {
			return true
		}
	}
	return false
}
