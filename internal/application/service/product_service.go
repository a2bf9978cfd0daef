package service

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/pagination"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// ProductService handles product-related operations
type ProductService struct {
	docs *Documents
}

// NewProductService creates a new product service
func NewProductService(docs *Documents) *ProductService {
	return &ProductService{docs: docs}
}

// ProductFilter contains filtering parameters for product listings
type ProductFilter struct {
	Pagination *pagination.PaginationParams
	Search     string
	GroupID    string
	SortBy     string
}

// ProductInput represents the create/update product input
type ProductInput struct {
	ID         string
	Name       string
	Category   string
	GroupID    string
	SupplierID string
	Price      decimal.Decimal
	Cost       decimal.Decimal
	Stock      decimal.Decimal
	ImageURL   string
	Units      []entity.Unit
}

func (in *ProductInput) toEntity() entity.Product {
	return entity.Product{
		ID:         strings.TrimSpace(in.ID),
		Name:       strings.TrimSpace(in.Name),
		Category:   in.Category,
		GroupID:    in.GroupID,
		SupplierID: in.SupplierID,
		Price:      in.Price,
		Cost:       in.Cost,
		Stock:      in.Stock,
		ImageURL:   in.ImageURL,
		Units:      append([]entity.Unit(nil), in.Units...),
	}
}

// ListProducts returns a filtered, paginated product listing
func (s *ProductService) ListProducts(ctx context.Context, filter *ProductFilter) (*pagination.PaginatedResult[entity.Product], error) {
	var items []entity.Product
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		search := strings.ToLower(strings.TrimSpace(filter.Search))
		for i := range doc.Products {
			p := &doc.Products[i]
			if filter.GroupID != "" && p.GroupID != filter.GroupID {
				continue
			}
			if search != "" && !productMatches(p, search) {
				continue
			}
			items = append(items, *p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	switch filter.SortBy {
	case "name":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Name < items[j].Name })
	case "stock":
		sort.SliceStable(items, func(i, j int) bool { return items[i].Stock.LessThan(items[j].Stock) })
	}
	return pagination.Paginate(items, filter.Pagination), nil
}

// GetProduct retrieves a product by PLU
func (s *ProductService) GetProduct(ctx context.Context, id string) (*entity.Product, error) {
	var product *entity.Product
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		p, ok := doc.FindProduct(id)
		if !ok {
			return apperror.NewNotFoundError("Product")
		}
		found := *p
		product = &found
		return nil
	})
	return product, err
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *ProductInput) (*entity.Product, error) {
	product := input.toEntity()

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		if _, exists := doc.FindProduct(product.ID); exists {
			return apperror.NewConflictError("Product PLU already exists")
		}
		if err := prepareProduct(&product, doc, ""); err != nil {
			return err
		}
		doc.Products = append(doc.Products, product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateProduct replaces a product. The PLU may change as long as it stays unique.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, input *ProductInput) (*entity.Product, error) {
	product := input.toEntity()
	if product.ID == "" {
		product.ID = id
	}

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		existing, ok := doc.FindProduct(id)
		if !ok {
			return apperror.NewNotFoundError("Product")
		}
		if product.ID != id {
			if _, taken := doc.FindProduct(product.ID); taken {
				return apperror.NewConflictError("Product PLU already exists")
			}
		}
		if err := prepareProduct(&product, doc, id); err != nil {
			return err
		}
		*existing = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product from the catalog
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	return s.docs.Update(ctx, func(doc *entity.Document) error {
		for i := range doc.Products {
			if doc.Products[i].ID == id {
				doc.Products = append(doc.Products[:i], doc.Products[i+1:]...)
				return nil
			}
		}
		return apperror.NewNotFoundError("Product")
	})
}

// GetLowStockProducts returns products whose stock is at or below threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context, threshold decimal.Decimal) ([]entity.Product, error) {
	var out []entity.Product
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for _, p := range doc.Products {
			if p.Stock.LessThanOrEqual(threshold) {
				out = append(out, p)
			}
		}
		return nil
	})
	return out, err
}

// prepareProduct validates a product against the catalog and fills derived
// fields. A product without units gets a single PCS base unit. ignoreID
// names the product being replaced, whose barcodes may be reused.
func prepareProduct(p *entity.Product, doc *entity.Document, ignoreID string) error {
	if err := validateStruct(p); err != nil {
		return err
	}
	if p.Price.IsNegative() || p.Cost.IsNegative() {
		return apperror.NewFieldError("price", "must not be negative")
	}

	if len(p.Units) == 0 {
		p.Units = p.SaleUnits()
	}

	names := make(map[string]bool, len(p.Units))
	barcodes := make(map[string]bool, len(p.Units))
	for i := range p.Units {
		u := &p.Units[i]
		u.Name = strings.TrimSpace(u.Name)
		u.Barcode = strings.TrimSpace(u.Barcode)
		field := fmt.Sprintf("units[%d]", i)

		if u.Name == "" {
			return apperror.NewFieldError(field+".name", "is required")
		}
		if names[strings.ToUpper(u.Name)] {
			return apperror.NewFieldError(field+".name", "duplicate unit name "+u.Name)
		}
		names[strings.ToUpper(u.Name)] = true

		if !u.Quantity.IsPositive() {
			return apperror.NewFieldError(field+".quantity", "must be greater than 0")
		}
		if u.Price.IsNegative() {
			return apperror.NewFieldError(field+".price", "must not be negative")
		}
		if u.Barcode != "" {
			key := strings.ToLower(u.Barcode)
			if barcodes[key] {
				return apperror.NewFieldError(field+".barcode", "duplicate barcode "+u.Barcode)
			}
			barcodes[key] = true
		}
	}

	if n := p.BaseUnitCount(); n != 1 {
		return apperror.NewFieldError("units", fmt.Sprintf("exactly one unit must have quantity 1, found %d", n))
	}

	for i := range doc.Products {
		other := &doc.Products[i]
		if other.ID == ignoreID || other.ID == p.ID {
			continue
		}
		for _, u := range other.Units {
			if u.Barcode != "" && barcodes[strings.ToLower(u.Barcode)] {
				return apperror.NewConflictError(fmt.Sprintf("Barcode %s is already used by product %s", u.Barcode, other.ID))
			}
		}
	}

	p.Price = p.BaseUnit().Price
	return nil
}

// ImportProductRow represents a single row from the import file
type ImportProductRow struct {
	ID        string
	Name      string
	GroupName string
	Price     decimal.Decimal
	Cost      decimal.Decimal
	Stock     decimal.Decimal
}

// ImportResult contains the result of a product import operation
type ImportResult struct {
	TotalRows  int              `json:"total_rows"`
	Successful int              `json:"successful"`
	Failed     int              `json:"failed"`
	Errors     []ImportRowError `json:"errors,omitempty"`
}

// ImportRowError describes an error for a specific row during import
type ImportRowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ParseProductSheet reads the first sheet of an XLSX workbook. Row 1 is the
// header; columns are PLU, name, group, price, cost, stock.
func ParseProductSheet(r io.Reader) ([]ImportProductRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperror.NewBadRequestError("Invalid XLSX file: " + err.Error())
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperror.NewBadRequestError("Workbook has no sheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperror.NewBadRequestError("Failed to read sheet: " + err.Error())
	}

	var out []ImportProductRow
	for i, cols := range rows {
		if i == 0 {
			continue
		}
		cell := func(n int) string {
			if n < len(cols) {
				return strings.TrimSpace(cols[n])
			}
			return ""
		}
		if cell(0) == "" && cell(1) == "" {
			continue
		}
		out = append(out, ImportProductRow{
			ID:        cell(0),
			Name:      cell(1),
			GroupName: cell(2),
			Price:     parseDecimalCell(cell(3)),
			Cost:      parseDecimalCell(cell(4)),
			Stock:     parseDecimalCell(cell(5)),
		})
	}
	return out, nil
}

func parseDecimalCell(s string) decimal.Decimal {
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ImportProducts validates and appends products from parsed import rows.
// Invalid rows are reported and skipped.
func (s *ProductService) ImportProducts(ctx context.Context, rows []ImportProductRow) (*ImportResult, error) {
	result := &ImportResult{TotalRows: len(rows)}

	err := s.docs.Update(ctx, func(doc *entity.Document) error {
		groups := make(map[string]string, len(doc.ProductGroups))
		for _, g := range doc.ProductGroups {
			groups[strings.ToLower(g.Name)] = g.ID
		}

		for i, row := range rows {
			rowNum := i + 2 // +2 because row 1 is the header, data starts at row 2

			if row.ID == "" {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "id", Message: "PLU is required"})
				continue
			}
			if row.Name == "" {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "name", Message: "Name is required"})
				continue
			}
			if _, exists := doc.FindProduct(row.ID); exists {
				result.Errors = append(result.Errors, ImportRowError{
					Row:     rowNum,
					Field:   "id",
					Message: fmt.Sprintf("Product PLU '%s' already exists", row.ID),
				})
				continue
			}

			product := entity.Product{
				ID:      row.ID,
				Name:    row.Name,
				GroupID: groups[strings.ToLower(row.GroupName)],
				Price:   row.Price,
				Cost:    row.Cost,
				Stock:   row.Stock,
			}
			if err := prepareProduct(&product, doc, ""); err != nil {
				result.Errors = append(result.Errors, ImportRowError{Row: rowNum, Field: "product", Message: err.Error()})
				continue
			}
			doc.Products = append(doc.Products, product)
			result.Successful++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result.Failed = len(result.Errors)
	return result, nil
}
