package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestSaleSettledCounts(t *testing.T) {
	m := New("pos")
	m.SaleSettled("cash", decimal.NewFromInt(56000), 100)
	m.SaleSettled("qris", decimal.NewFromInt(1000), 0)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.salesTotal.WithLabelValues("cash")))
	assert.Equal(t, 57000.0, testutil.ToFloat64(m.salesAmount))
	assert.Equal(t, 100.0, testutil.ToFloat64(m.pointsRedeemed))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.SaleSettled("cash", decimal.NewFromInt(1), 1)
		m.TransactionSuspended()
		m.ReceiptFailed("pdf")
		m.ObserveRequest("GET", "/health", 200, time.Millisecond)
	})
}

func TestHandlerServesMetrics(t *testing.T) {
	m := New("pos")
	m.TransactionSuspended()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "pos_transactions_suspended_total 1")
}
