package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/printer"
	"github.com/sangkips/retail-pos/pkg/utils"
)

// ReceiptSink renders a receipt somewhere: a printer, a file.
type ReceiptSink interface {
	Name() string
	Render(ctx context.Context, receipt *entity.Receipt) error
}

// ThermalReceiptSink prints ESC/POS receipts and opens the cash drawer for
// cash sales.
type ThermalReceiptSink struct {
	printer   printer.Printer
	charWidth int
}

func NewThermalReceiptSink(p printer.Printer, charWidth int) *ThermalReceiptSink {
	return &ThermalReceiptSink{printer: p, charWidth: charWidth}
}

func (s *ThermalReceiptSink) Name() string { return "thermal" }

func (s *ThermalReceiptSink) Render(_ context.Context, receipt *entity.Receipt) error {
	data := FormatReceipt(receipt, s.charWidth)
	if receipt.PaymentMethod == enum.PaymentMethodCash {
		data = append(data, printer.DrawerPulse()...)
	}
	if err := s.printer.Print(data); err != nil {
		return fmt.Errorf("failed to print receipt %s: %w", receipt.InvoiceID, err)
	}
	return nil
}

// PDFReceiptSink writes an 80 mm wide receipt_<invoice>.pdf per sale.
type PDFReceiptSink struct {
	dir string
}

func NewPDFReceiptSink(dir string) *PDFReceiptSink {
	return &PDFReceiptSink{dir: dir}
}

func (s *PDFReceiptSink) Name() string { return "pdf" }

// Path returns the file a receipt is written to.
func (s *PDFReceiptSink) Path(invoiceID string) string {
	return filepath.Join(s.dir, "receipt_"+invoiceID+".pdf")
}

func (s *PDFReceiptSink) Render(_ context.Context, r *entity.Receipt) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("pdf: create receipt dir: %w", err)
	}

	const width, margin = 80.0, 4.0
	height := 90.0 + 9.0*float64(len(r.Items))

	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	contentW := width - 2*margin

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 6, tr(r.Header.StoreName), "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	for _, line := range []string{r.Header.Address, r.Header.City, r.Header.Phone} {
		if line != "" {
			pdf.CellFormat(contentW, 4, tr(line), "", 1, "C", false, 0, "")
		}
	}
	pdf.Ln(1)
	pdf.Line(margin, pdf.GetY(), width-margin, pdf.GetY())
	pdf.Ln(1)

	half := contentW / 2
	info := [][2]string{
		{"No", r.InvoiceID},
		{"Tanggal", r.Date},
		{"Kasir", r.Cashier},
		{"Pelanggan", r.Customer},
	}
	for _, kv := range info {
		pdf.CellFormat(half, 4, kv[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 4, tr(kv[1]), "", 1, "R", false, 0, "")
	}
	pdf.Line(margin, pdf.GetY(), width-margin, pdf.GetY())
	pdf.Ln(1)

	for _, item := range r.Items {
		pdf.SetFont("Helvetica", "", 7)
		pdf.CellFormat(contentW, 4, tr(item.Name), "", 1, "L", false, 0, "")
		detail := fmt.Sprintf("  %s %s x %s", utils.FormatNumber(item.Quantity), item.Unit, utils.FormatNumber(item.UnitPrice))
		pdf.CellFormat(half, 4, tr(detail), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 4, utils.FormatNumber(item.Total), "", 1, "R", false, 0, "")
		if item.Discount.IsPositive() {
			pdf.CellFormat(half, 4, "  Diskon", "", 0, "L", false, 0, "")
			pdf.CellFormat(half, 4, "-"+utils.FormatNumber(item.Discount), "", 1, "R", false, 0, "")
		}
	}
	pdf.Line(margin, pdf.GetY(), width-margin, pdf.GetY())
	pdf.Ln(1)

	for _, kv := range receiptTotals(r) {
		style := ""
		if kv[0] == "TOTAL" {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 8)
		pdf.CellFormat(half, 5, tr(kv[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(half, 5, kv[1], "", 1, "R", false, 0, "")
	}

	if r.Footer != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.MultiCell(contentW, 4, tr(r.Footer), "", "C", false)
	}

	if err := pdf.OutputFileAndClose(s.Path(r.InvoiceID)); err != nil {
		return fmt.Errorf("pdf: write receipt %s: %w", r.InvoiceID, err)
	}
	return nil
}

// receiptTotals lists the label/amount rows printed under the items.
func receiptTotals(r *entity.Receipt) [][2]string {
	rows := [][2]string{{"Subtotal", utils.FormatNumber(r.Subtotal)}}
	if r.LineDiscounts.IsPositive() {
		rows = append(rows, [2]string{"Diskon", "-" + utils.FormatNumber(r.LineDiscounts)})
	}
	if r.PointsDiscount.IsPositive() {
		rows = append(rows, [2]string{fmt.Sprintf("Tukar Poin (%d)", r.PointsRedeemed), "-" + utils.FormatNumber(r.PointsDiscount)})
	}
	rows = append(rows,
		[2]string{"TOTAL", utils.FormatNumber(r.Total)},
		[2]string{strings.TrimSpace("Bayar " + r.PaymentLabel), utils.FormatNumber(r.Tendered)},
		[2]string{"Kembali", utils.FormatNumber(r.Change)},
	)
	return rows
}
