package service

import (
	"bytes"
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/sangkips/retail-pos/pkg/printer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePrinter struct {
	jobs [][]byte
	err  error
}

func (p *capturePrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}
func (p *capturePrinter) Close() error      { return nil }
func (p *capturePrinter) IsConnected() bool { return true }
func (p *capturePrinter) Kind() string      { return "spool" }

func testReceipt(method enum.PaymentMethod) *entity.Receipt {
	sale := &entity.Sale{
		InvoiceID:     "INV-20240501-0001",
		Date:          time.Date(2024, 5, 1, 14, 30, 0, 0, time.Local),
		Customer:      "Umum",
		Cashier:       "Siti Sarah",
		PaymentMethod: method,
		Total:         dec(36000),
		AmountPaid:    dec(50000),
		Change:        dec(14000),
		Items: []entity.SaleItem{
			{ProductID: "prod-001", ProductName: "Kopi Susu", Quantity: dec(2), Price: dec(18000), UnitName: entity.DefaultUnitName},
		},
	}
	return entity.NewReceipt(sale, entity.DefaultSettings())
}

func TestThermalReceiptSink(t *testing.T) {
	t.Run("cash opens the drawer", func(t *testing.T) {
		p := &capturePrinter{}
		sink := NewThermalReceiptSink(p, 32)

		require.NoError(t, sink.Render(context.Background(), testReceipt(enum.PaymentMethodCash)))
		require.Len(t, p.jobs, 1)
		assert.True(t, bytes.HasSuffix(p.jobs[0], printer.DrawerPulse()))
		assert.True(t, bytes.Contains(p.jobs[0], []byte("Kopi Susu")))
		assert.True(t, bytes.Contains(p.jobs[0], []byte("INV-20240501-0001\x00")))
	})

	t.Run("non-cash keeps the drawer shut", func(t *testing.T) {
		p := &capturePrinter{}
		sink := NewThermalReceiptSink(p, 32)

		require.NoError(t, sink.Render(context.Background(), testReceipt(enum.PaymentMethodQRIS)))
		assert.False(t, bytes.HasSuffix(p.jobs[0], printer.DrawerPulse()))
	})

	t.Run("printer error names the invoice", func(t *testing.T) {
		sink := NewThermalReceiptSink(&capturePrinter{err: errors.New("paper out")}, 32)

		err := sink.Render(context.Background(), testReceipt(enum.PaymentMethodCash))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "INV-20240501-0001")
	})
}

func TestPDFReceiptSink(t *testing.T) {
	sink := NewPDFReceiptSink(t.TempDir())
	receipt := testReceipt(enum.PaymentMethodCash)

	require.NoError(t, sink.Render(context.Background(), receipt))

	data, err := os.ReadFile(sink.Path(receipt.InvoiceID))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
