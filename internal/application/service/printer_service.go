package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/apperror"
	"github.com/sangkips/retail-pos/pkg/printer"
	"github.com/sangkips/retail-pos/pkg/utils"
	"github.com/shopspring/decimal"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer   printer.Printer
	charWidth int
	docs      *Documents

	mu       sync.RWMutex
	settings entity.Settings
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, charWidth int, docs *Documents) *PrinterService {
	return &PrinterService{
		printer:   p,
		charWidth: charWidth,
		docs:      docs,
		settings:  *entity.DefaultSettings(),
	}
}

// ApplySettings updates the store header printed on receipts.
func (s *PrinterService) ApplySettings(settings entity.Settings) {
	s.mu.Lock()
	s.settings = settings
	s.mu.Unlock()
}

func (s *PrinterService) currentSettings() *entity.Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	settings := s.settings
	return &settings
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	CharWidth  int    `json:"char_width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	kind := s.printer.Kind()
	return &PrinterStatus{
		Configured: kind != "none",
		Connected:  s.printer.IsConnected(),
		Type:       kind,
		CharWidth:  s.charWidth,
	}
}

// TestPrint sends a test page to the printer.
// Returns the receipt data so the handler can return it as JSON when printer is disabled.
func (s *PrinterService) TestPrint() (*entity.Receipt, error) {
	sale := &entity.Sale{
		InvoiceID:     "TEST-001",
		Date:          time.Now(),
		Customer:      "Umum",
		Cashier:       "System",
		PaymentMethod: enum.PaymentMethodCash,
		Total:         decimal.NewFromInt(20000),
		AmountPaid:    decimal.NewFromInt(20000),
		Change:        decimal.Zero,
		Items: []entity.SaleItem{
			{ProductID: "TEST-1", ProductName: "Test Item 1", Quantity: decimal.NewFromInt(1), Price: decimal.NewFromInt(10000), UnitName: entity.DefaultUnitName},
			{ProductID: "TEST-2", ProductName: "Test Item 2", Quantity: decimal.NewFromInt(2), Price: decimal.NewFromInt(5000), UnitName: entity.DefaultUnitName},
		},
	}
	receipt := entity.NewReceipt(sale, s.currentSettings())

	if err := s.printer.Print(FormatReceipt(receipt, s.charWidth)); err != nil {
		return receipt, fmt.Errorf("test print failed: %w", err)
	}
	return receipt, nil
}

// ReprintSale prints the receipt of a stored sale again.
func (s *PrinterService) ReprintSale(ctx context.Context, invoiceID string) (*entity.Receipt, error) {
	var sale *entity.Sale
	err := s.docs.View(ctx, func(doc *entity.Document) error {
		for i := range doc.Sales {
			if strings.EqualFold(doc.Sales[i].InvoiceID, invoiceID) {
				found := doc.Sales[i]
				sale = &found
				return nil
			}
		}
		return apperror.NewNotFoundError("Sale " + invoiceID)
	})
	if err != nil {
		return nil, err
	}

	receipt := entity.NewReceipt(sale, s.currentSettings())
	if err := s.printer.Print(FormatReceipt(receipt, s.charWidth)); err != nil {
		log.Warn().Err(err).Str("invoice", invoiceID).Msg("Reprint failed")
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	doc := printer.NewDocument(charWidth)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(r.Header.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false)

	if r.Header.Address != "" {
		doc.Text(r.Header.Address)
	}
	if r.Header.City != "" {
		doc.Text(r.Header.City)
	}
	if r.Header.Phone != "" {
		doc.Text(r.Header.Phone)
	}

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("No:", r.InvoiceID).
		KeyValue("Tanggal:", r.Date).
		KeyValue("Kasir:", r.Cashier)
	if r.Customer != "" {
		doc.KeyValue("Pelanggan:", r.Customer)
	}

	doc.Separator('-')

	for _, item := range r.Items {
		doc.ItemLine(item.Name, utils.FormatNumber(item.Quantity), item.Unit,
			utils.FormatNumber(item.UnitPrice), utils.FormatNumber(item.Total))
		if item.Discount.IsPositive() {
			doc.KeyValue("  Diskon", "-"+utils.FormatNumber(item.Discount))
		}
	}

	doc.Separator('-')

	for _, row := range receiptTotals(r) {
		if row[0] == "TOTAL" {
			doc.SetBold(true).KeyValue(row[0]+":", row[1]).SetBold(false)
			continue
		}
		doc.KeyValue(row[0]+":", row[1])
	}

	doc.Separator('-')

	footer := r.Footer
	if footer == "" {
		footer = "Terima kasih"
	}
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Barcode(r.InvoiceID).
		Text(footer).
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
