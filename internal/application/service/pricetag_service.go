package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/utils"
)

const (
	tagWidth      = 65.0
	tagHeight     = 40.0
	tagGap        = 2.0
	tagPageMargin = 10.0
)

// PriceTagService renders shelf price tags for the base unit of products.
type PriceTagService struct {
	docs     *Documents
	settings *SettingsService
}

// NewPriceTagService creates a new price tag service
func NewPriceTagService(docs *Documents, settings *SettingsService) *PriceTagService {
	return &PriceTagService{docs: docs, settings: settings}
}

// PriceTag is the content of one tag
type PriceTag struct {
	Name    string
	Barcode string
	Price   string
	Unit    string
}

// BuildTags returns the tags of the given products in request order.
func (s *PriceTagService) BuildTags(ctx context.Context, productIDs []string) ([]PriceTag, error) {
	if len(productIDs) == 0 {
		return nil, apperror.NewFieldError("product_ids", "select at least one product")
	}
	tags := make([]PriceTag, 0, len(productIDs))
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for _, id := range productIDs {
			p, ok := doc.FindProduct(id)
			if !ok {
				return apperror.NewNotFoundError("Product " + id)
			}
			base := p.BaseUnit()
			barcode := base.Barcode
			if barcode == "" {
				barcode = p.ID
			}
			tags = append(tags, PriceTag{
				Name:    strings.ToUpper(p.Name),
				Barcode: barcode,
				Price:   utils.FormatNumber(p.Price),
				Unit:    strings.ToUpper(base.Name),
			})
		}
		return nil
	})
	return tags, err
}

// RenderPDF lays the tags out on A4 pages, 65 × 40 mm each, left to right
// and top to bottom.
func (s *PriceTagService) RenderPDF(ctx context.Context, productIDs []string) ([]byte, error) {
	tags, err := s.BuildTags(ctx, productIDs)
	if err != nil {
		return nil, err
	}
	settings, err := s.settings.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	storeName := strings.ToUpper(settings.StoreName)

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(tagPageMargin, tagPageMargin, tagPageMargin)
	pdf.SetAutoPageBreak(false, tagPageMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, pageH := pdf.GetPageSize()
	cols := int((pageW - 2*tagPageMargin + tagGap) / (tagWidth + tagGap))
	rows := int((pageH - 2*tagPageMargin + tagGap) / (tagHeight + tagGap))
	perPage := cols * rows

	for i, tag := range tags {
		if i%perPage == 0 {
			pdf.AddPage()
		}
		slot := i % perPage
		x := tagPageMargin + float64(slot%cols)*(tagWidth+tagGap)
		y := tagPageMargin + float64(slot/cols)*(tagHeight+tagGap)
		drawPriceTag(pdf, tr, x, y, tag, storeName)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render price tags: %w", err)
	}
	return buf.Bytes(), nil
}

func drawPriceTag(pdf *fpdf.Fpdf, tr func(string) string, x, y float64, tag PriceTag, storeName string) {
	const pad = 2.0
	inner := tagWidth - 2*pad

	pdf.SetDrawColor(0, 0, 255)
	pdf.SetLineWidth(0.4)
	pdf.RoundedRect(x, y, tagWidth, tagHeight, 2, "1234", "D")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetXY(x+pad, y+pad)
	pdf.CellFormat(inner, 5, tr(tag.Name), "", 0, "L", false, 0, "")

	pdf.SetFont("Courier", "", 14)
	pdf.SetXY(x+pad, y+8)
	pdf.CellFormat(inner, 6, "*"+tag.Barcode+"*", "", 0, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.SetXY(x+pad, y+14)
	pdf.CellFormat(inner, 3, tag.Barcode, "", 0, "C", false, 0, "")

	pdf.SetFillColor(255, 255, 0)
	pdf.Rect(x+pad, y+18, inner, 2, "F")
	pdf.SetFillColor(0, 255, 0)
	pdf.Rect(x+pad, y+20, inner, 2, "F")
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetTextColor(0, 0, 255)
	nameW := pdf.GetStringWidth(storeName) + 4
	pdf.SetFillColor(255, 255, 255)
	pdf.SetXY(x+(tagWidth-nameW)/2, y+18)
	pdf.CellFormat(nameW, 4, tr(storeName), "", 0, "C", true, 0, "")

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetTextColor(255, 0, 0)
	priceW := pdf.GetStringWidth(tag.Price)
	pdf.SetFont("Helvetica", "", 9)
	unit := "/ " + tag.Unit
	unitW := pdf.GetStringWidth(unit) + 1
	start := x + (tagWidth-priceW-unitW)/2

	pdf.SetFont("Helvetica", "B", 24)
	pdf.SetXY(start, y+24)
	pdf.CellFormat(priceW, 12, tag.Price, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.SetTextColor(0, 0, 0)
	pdf.SetXY(start+priceW+1, y+28)
	pdf.CellFormat(unitW, 6, tr(unit), "", 0, "L", false, 0, "")
}
