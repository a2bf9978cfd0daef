package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sangkips/retail-pos/internal/domain/entity"
	"github.com/sangkips/retail-pos/internal/domain/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCashier(t *testing.T, sinks ...ReceiptSink) (*CashierService, *Documents) {
	t.Helper()
	docs := newTestDocuments(t)
	cashier := NewCashierService(docs, NewCatalogService(docs), sinks, CashierOptions{Clock: fixedClock})
	return cashier, docs
}

func scan(t *testing.T, c *CashierService, tokens ...string) *RegisterSnapshot {
	t.Helper()
	var snap *RegisterSnapshot
	for _, token := range tokens {
		var err error
		snap, err = c.Scan(context.Background(), token)
		require.NoError(t, err, token)
	}
	return snap
}

func TestCashierService_GrandTotal(t *testing.T) {
	cashier, _ := newTestCashier(t)

	scan(t, cashier, "2*prod-001", "prod-002")
	snap, err := cashier.UpdateLine("prod-002", "PCS", entity.CartFieldDiscount, dec(2000))
	require.NoError(t, err)

	assert.Equal(t, RegisterBuilding, snap.State)
	assert.Equal(t, 2, snap.LineCount)
	assertDecimal(t, 56000, snap.GrandTotal)
	assertDecimal(t, 36000, snap.Lines[0].LineTotal)
	assertDecimal(t, 20000, snap.Lines[1].LineTotal)
}

func TestCashierService_Scan(t *testing.T) {
	cashier, _ := newTestCashier(t)

	snap := scan(t, cashier, "prod-001", "prod-001", "prod-002-L")
	require.Len(t, snap.Lines, 2)
	assertDecimal(t, 2, snap.Lines[0].Quantity)
	assert.Equal(t, "LUSIN", snap.Lines[1].SelectedUnit.Name)

	t.Run("quantity without identifier is a no-op", func(t *testing.T) {
		snap := scan(t, cashier, "5*")
		assert.Len(t, snap.Lines, 2)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := cashier.Scan(context.Background(), "nope")
		assertAppCode(t, err, http.StatusNotFound)
	})
}

func TestCashierService_CartCapacity(t *testing.T) {
	docs := newTestDocuments(t)
	cashier := NewCashierService(docs, NewCatalogService(docs), nil, CashierOptions{MaxCartLines: 2, Clock: fixedClock})

	scan(t, cashier, "prod-001", "prod-002")
	_, err := cashier.Scan(context.Background(), "prod-003")
	assertAppCode(t, err, http.StatusUnprocessableEntity)

	snap := scan(t, cashier, "prod-001")
	assert.Len(t, snap.Lines, 2)
}

func TestCashierService_RedeemPoints(t *testing.T) {
	ctx := context.Background()

	t.Run("discount line lowers the total", func(t *testing.T) {
		cashier, _ := newTestCashier(t)
		scan(t, cashier, "prod-004")
		_, err := cashier.SelectMember(ctx, "C0001")
		require.NoError(t, err)

		snap, err := cashier.RedeemPoints(ctx, 100)
		require.NoError(t, err)
		require.Len(t, snap.Lines, 2)
		points := snap.Lines[1]
		assert.Equal(t, entity.PointsDiscountID, points.ID)
		assertDecimal(t, -100, points.UnitPrice())
		assertDecimal(t, 100, snap.PointsDiscount)
		assertDecimal(t, 14900, snap.GrandTotal)
	})

	t.Run("requires a member", func(t *testing.T) {
		cashier, _ := newTestCashier(t)
		scan(t, cashier, "prod-004")
		_, err := cashier.RedeemPoints(ctx, 10)
		assertAppCode(t, err, http.StatusConflict)
	})

	t.Run("requires items", func(t *testing.T) {
		cashier, _ := newTestCashier(t)
		_, err := cashier.SelectMember(ctx, "C0001")
		require.NoError(t, err)
		_, err = cashier.RedeemPoints(ctx, 10)
		assertAppCode(t, err, http.StatusConflict)
	})

	t.Run("cannot exceed available points", func(t *testing.T) {
		cashier, _ := newTestCashier(t)
		scan(t, cashier, "prod-004")
		_, err := cashier.SelectMember(ctx, "C0001")
		require.NoError(t, err)
		_, err = cashier.RedeemPoints(ctx, 151)
		assertAppCode(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("cannot exceed the transaction total", func(t *testing.T) {
		cashier, _ := newTestCashier(t)
		settings := *entity.DefaultSettings()
		settings.Points.PointValue = dec(1000)
		cashier.ApplySettings(settings)

		scan(t, cashier, "prod-004")
		_, err := cashier.SelectMember(ctx, "C0001")
		require.NoError(t, err)
		_, err = cashier.RedeemPoints(ctx, 16)
		assertAppCode(t, err, http.StatusUnprocessableEntity)
	})

	t.Run("disabled in settings", func(t *testing.T) {
		cashier, _ := newTestCashier(t)
		settings := *entity.DefaultSettings()
		settings.Points.Enabled = false
		cashier.ApplySettings(settings)

		scan(t, cashier, "prod-004")
		_, err := cashier.SelectMember(ctx, "C0001")
		require.NoError(t, err)
		_, err = cashier.RedeemPoints(ctx, 10)
		assertAppCode(t, err, http.StatusConflict)
	})

	t.Run("changing member drops the redemption", func(t *testing.T) {
		cashier, _ := newTestCashier(t)
		scan(t, cashier, "prod-004")
		_, err := cashier.SelectMember(ctx, "C0001")
		require.NoError(t, err)
		_, err = cashier.RedeemPoints(ctx, 100)
		require.NoError(t, err)

		snap, err := cashier.SelectMember(ctx, "C0002")
		require.NoError(t, err)
		assert.Len(t, snap.Lines, 1)
		assertDecimal(t, 15000, snap.GrandTotal)
		assert.Equal(t, "C0002", snap.Member.ID)
	})
}

func TestCashierService_SelectMember(t *testing.T) {
	ctx := context.Background()
	cashier, _ := newTestCashier(t)

	_, err := cashier.SelectMember(ctx, "C0004")
	assertAppCode(t, err, http.StatusUnprocessableEntity)

	_, err = cashier.SelectMember(ctx, "C9999")
	assertAppCode(t, err, http.StatusNotFound)

	snap, err := cashier.SelectMember(ctx, "C0003")
	require.NoError(t, err)
	assert.Equal(t, "Dewi Lestari", snap.Member.Name)

	snap = cashier.ClearMember()
	assert.Nil(t, snap.Member)
}

func TestCashierService_Settlement(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{}
	cashier, docs := newTestCashier(t, sink)

	scan(t, cashier, "prod-004")
	_, err := cashier.SelectMember(ctx, "C0001")
	require.NoError(t, err)
	_, err = cashier.RedeemPoints(ctx, 100)
	require.NoError(t, err)

	pay, err := cashier.RequestPayment(ctx, "Siti Sarah")
	require.NoError(t, err)
	assert.False(t, pay.Settled)
	assertDecimal(t, 14900, pay.AmountDue)
	assert.Equal(t, RegisterPendingPayment, cashier.Snapshot().State)

	t.Run("cash below the total is rejected", func(t *testing.T) {
		_, err := cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(10000), Method: enum.PaymentMethodCash})
		assertAppCode(t, err, http.StatusUnprocessableEntity)
		assert.Equal(t, RegisterPendingPayment, cashier.Snapshot().State)
	})

	t.Run("suspend is rejected while payment is pending", func(t *testing.T) {
		_, err := cashier.Suspend(ctx)
		assertAppCode(t, err, http.StatusConflict)
	})

	res, err := cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(20000), Method: enum.PaymentMethodCash, Cashier: "Siti Sarah"})
	require.NoError(t, err)
	require.True(t, res.Settled)

	sale := res.Sale
	assert.True(t, strings.HasPrefix(sale.InvoiceID, "INV-20240501-"), sale.InvoiceID)
	assert.Equal(t, fixedNow, sale.Date)
	assert.Equal(t, "Budi Hartono", sale.Customer)
	assert.Equal(t, "C0001", sale.MemberID)
	assert.Equal(t, "Siti Sarah", sale.Cashier)
	assert.Equal(t, enum.SaleStatusCompleted, sale.Status)
	assertDecimal(t, 14900, sale.Total)
	assertDecimal(t, 5100, sale.Change)
	assert.Len(t, sale.Items, 2)

	assert.Equal(t, RegisterEmpty, cashier.Snapshot().State)
	assert.Nil(t, cashier.Snapshot().Member)

	doc := loadDocument(t, docs)
	require.Len(t, doc.Sales, 1)
	assert.Equal(t, sale.InvoiceID, doc.Sales[0].InvoiceID)
	assert.Equal(t, int64(50), findMember(t, docs, "C0001").Points)
	assertDecimal(t, 119, findProduct(t, docs, "prod-004").Stock)

	require.Len(t, sink.receipts, 1)
	assert.Equal(t, sale.InvoiceID, sink.receipts[0].InvoiceID)
	assert.Equal(t, int64(100), sink.receipts[0].PointsRedeemed)
}

func TestCashierService_SettlementStock(t *testing.T) {
	ctx := context.Background()
	cashier, docs := newTestCashier(t)

	scan(t, cashier, "10*prod-002-L", "3*prod-001")
	_, err := cashier.RequestPayment(ctx, "")
	require.NoError(t, err)
	res, err := cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Method: enum.PaymentMethodQRIS})
	require.NoError(t, err)

	assert.Equal(t, "Administrator Utama", res.Sale.Cashier, "sales without a session go to the admin user")
	assert.Equal(t, "Umum", res.Sale.Customer)
	assertDecimal(t, 2454000, res.Sale.AmountPaid)
	assert.True(t, res.Sale.Change.IsZero())

	// 10 dozen exceed the 80 in stock; stock stops at zero
	assert.True(t, findProduct(t, docs, "prod-002").Stock.IsZero())
	assertDecimal(t, 147, findProduct(t, docs, "prod-001").Stock)
}

func TestCashierService_NonCashTender(t *testing.T) {
	ctx := context.Background()
	cashier, _ := newTestCashier(t)

	scan(t, cashier, "prod-001")
	_, err := cashier.RequestPayment(ctx, "")
	require.NoError(t, err)

	_, err = cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(10000), Method: enum.PaymentMethodQRIS})
	assertAppCode(t, err, http.StatusUnprocessableEntity)
	assert.Equal(t, RegisterPendingPayment, cashier.Snapshot().State)

	res, err := cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(50000), Method: enum.PaymentMethodEWallet, Detail: "GoPay"})
	require.NoError(t, err)
	assertDecimal(t, 18000, res.Sale.AmountPaid)
	assert.True(t, res.Sale.Change.IsZero())
}

// readingSink reads the store while it renders, as a slow printer would
// overlap with other requests.
type readingSink struct {
	docs    *Documents
	blocked bool
	readErr error
}

func (s *readingSink) Name() string { return "reader" }

func (s *readingSink) Render(ctx context.Context, _ *entity.Receipt) error {
	done := make(chan error, 1)
	go func() {
		done <- s.docs.View(ctx, func(*entity.Document) error { return nil })
	}()
	select {
	case s.readErr = <-done:
	case <-time.After(2 * time.Second):
		s.blocked = true
	}
	return nil
}

func TestCashierService_ReceiptRenderedOutsideDocumentLock(t *testing.T) {
	ctx := context.Background()
	docs := newTestDocuments(t)
	sink := &readingSink{docs: docs}
	cashier := NewCashierService(docs, NewCatalogService(docs), []ReceiptSink{sink}, CashierOptions{Clock: fixedClock})

	scan(t, cashier, "prod-001")
	_, err := cashier.RequestPayment(ctx, "")
	require.NoError(t, err)
	_, err = cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(20000)})
	require.NoError(t, err)

	assert.False(t, sink.blocked, "store reads wait for the receipt printer")
	assert.NoError(t, sink.readErr)
	assertDecimal(t, 149, findProduct(t, docs, "prod-001").Stock)
}

func TestCashierService_DefaultCashierShowsInReport(t *testing.T) {
	ctx := context.Background()
	cashier, docs := newTestCashier(t)

	scan(t, cashier, "prod-001")
	_, err := cashier.RequestPayment(ctx, "")
	require.NoError(t, err)
	_, err = cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(20000)})
	require.NoError(t, err)

	report, err := NewReportService(docs).GetCashierReport(ctx, DateRange{From: fixedNow.Add(-time.Hour)})
	require.NoError(t, err)
	require.Len(t, report.Cashiers, 1)
	assert.Equal(t, "Administrator Utama", report.Cashiers[0].CashierName)
	assert.Equal(t, 1, report.Cashiers[0].TransactionCount)

	t.Run("configured name wins", func(t *testing.T) {
		docs := newTestDocuments(t)
		named := NewCashierService(docs, NewCatalogService(docs), nil, CashierOptions{Clock: fixedClock, DefaultCashier: "Kasir Depan"})
		scan(t, named, "prod-001")
		_, err := named.RequestPayment(ctx, "")
		require.NoError(t, err)
		res, err := named.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(20000)})
		require.NoError(t, err)
		assert.Equal(t, "Kasir Depan", res.Sale.Cashier)
	})
}

func TestCashierService_ZeroTotalSettlesImmediately(t *testing.T) {
	ctx := context.Background()
	cashier, docs := newTestCashier(t)
	settings := *entity.DefaultSettings()
	settings.Points.PointValue = dec(100)
	cashier.ApplySettings(settings)

	scan(t, cashier, "prod-004")
	_, err := cashier.SelectMember(ctx, "C0001")
	require.NoError(t, err)
	snap, err := cashier.RedeemPoints(ctx, 150)
	require.NoError(t, err)
	require.True(t, snap.GrandTotal.IsZero())

	t.Run("scanning is blocked once paid by points", func(t *testing.T) {
		_, err := cashier.Scan(ctx, "prod-001")
		assertAppCode(t, err, http.StatusUnprocessableEntity)
	})

	res, err := cashier.RequestPayment(ctx, "")
	require.NoError(t, err)
	assert.True(t, res.Settled)
	assert.Equal(t, enum.PaymentMethodCash, res.Sale.PaymentMethod)
	assert.Equal(t, int64(0), findMember(t, docs, "C0001").Points)
}

func TestCashierService_ReceiptFailureDoesNotBlockSettlement(t *testing.T) {
	ctx := context.Background()
	sink := &recordingSink{err: errors.New("printer offline")}
	cashier, docs := newTestCashier(t, sink)

	scan(t, cashier, "prod-001")
	_, err := cashier.RequestPayment(ctx, "")
	require.NoError(t, err)
	res, err := cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(50000)})
	require.NoError(t, err)

	assert.True(t, res.Settled)
	assert.Len(t, sink.receipts, 1)
	assert.Len(t, loadDocument(t, docs).Sales, 1)
}

func TestCashierService_SaveFailureKeepsRegister(t *testing.T) {
	ctx := context.Background()
	docs := NewDocuments(failingRepository{})
	cashier := NewCashierService(docs, NewCatalogService(docs), nil, CashierOptions{Clock: fixedClock})

	scan(t, cashier, "prod-001")
	_, err := cashier.RequestPayment(ctx, "")
	require.NoError(t, err)
	_, err = cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(18000)})
	assertAppCode(t, err, http.StatusInternalServerError)

	snap := cashier.Snapshot()
	assert.Equal(t, RegisterPendingPayment, snap.State)
	assert.Len(t, snap.Lines, 1)
}

func TestCashierService_PaymentTransitions(t *testing.T) {
	ctx := context.Background()
	cashier, _ := newTestCashier(t)

	_, err := cashier.RequestPayment(ctx, "")
	assertAppCode(t, err, http.StatusConflict)

	_, err = cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(1)})
	assertAppCode(t, err, http.StatusConflict)

	scan(t, cashier, "prod-001")
	_, err = cashier.RequestPayment(ctx, "")
	require.NoError(t, err)

	_, err = cashier.ConfirmPayment(ctx, &ConfirmPaymentInput{Tendered: dec(20000), Method: "cheque"})
	assertAppCode(t, err, http.StatusUnprocessableEntity)

	snap, err := cashier.CancelPayment()
	require.NoError(t, err)
	assert.Equal(t, RegisterBuilding, snap.State)

	_, err = cashier.RequestPayment(ctx, "")
	require.NoError(t, err)
	snap = scan(t, cashier, "prod-001")
	assert.Equal(t, RegisterBuilding, snap.State, "editing the cart leaves payment")
}

func TestCashierService_SuspendRecall(t *testing.T) {
	ctx := context.Background()
	cashier, _ := newTestCashier(t)

	_, err := cashier.Suspend(ctx)
	assertAppCode(t, err, http.StatusConflict)

	scan(t, cashier, "2*prod-001", "prod-002-L")
	_, err = cashier.SelectMember(ctx, "C0002")
	require.NoError(t, err)

	held, err := cashier.Suspend(ctx)
	require.NoError(t, err)
	assert.Len(t, held.Cart, 2)
	assert.Equal(t, fixedNow, held.SuspendedAt)
	assert.Equal(t, RegisterEmpty, cashier.Snapshot().State)

	list, err := cashier.ListSuspended(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	t.Run("recall into a busy register is rejected", func(t *testing.T) {
		scan(t, cashier, "prod-003")
		_, err := cashier.Recall(ctx, held.ID)
		assertAppCode(t, err, http.StatusConflict)
		cashier.Reset()
	})

	snap, err := cashier.Recall(ctx, held.ID)
	require.NoError(t, err)
	assert.Len(t, snap.Lines, 2)
	assert.Equal(t, "C0002", snap.Member.ID)
	assertDecimal(t, 276000, snap.GrandTotal)

	list, err = cashier.ListSuspended(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	cashier.Reset()
	_, err = cashier.Recall(ctx, held.ID)
	assertAppCode(t, err, http.StatusNotFound)
}

func TestCashierService_EditLines(t *testing.T) {
	cashier, _ := newTestCashier(t)
	scan(t, cashier, "2*prod-002")

	snap, err := cashier.ChangeUnit("prod-002", "PCS", "LUSIN")
	require.NoError(t, err)
	assertDecimal(t, 480000, snap.GrandTotal)

	_, err = cashier.ChangeUnit("prod-002", "LUSIN", "KARTON")
	assertAppCode(t, err, http.StatusNotFound)

	_, err = cashier.UpdateLine("prod-002", "LUSIN", entity.CartField("price"), dec(1))
	assertAppCode(t, err, http.StatusUnprocessableEntity)

	snap, err = cashier.RemoveLine("prod-002", "LUSIN")
	require.NoError(t, err)
	assert.Equal(t, RegisterEmpty, snap.State)

	_, err = cashier.RemoveLine("prod-002", "LUSIN")
	assertAppCode(t, err, http.StatusNotFound)
}

func TestCashierService_AddLine(t *testing.T) {
	ctx := context.Background()
	cashier, _ := newTestCashier(t)

	snap, err := cashier.AddLine(ctx, &AddLineInput{ProductID: "prod-002", UnitName: "LUSIN", Quantity: dec(1)})
	require.NoError(t, err)
	assertDecimal(t, 240000, snap.GrandTotal)

	_, err = cashier.AddLine(ctx, &AddLineInput{ProductID: "prod-002", UnitName: "BOX", Quantity: dec(1)})
	assertAppCode(t, err, http.StatusNotFound)

	_, err = cashier.AddLine(ctx, &AddLineInput{ProductID: "prod-001", Quantity: dec(0)})
	assertAppCode(t, err, http.StatusUnprocessableEntity)
}
