package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/config"
	"github.com/sangkips/retail-pos/internal/infrastructure/metrics"
	"github.com/sangkips/retail-pos/internal/infrastructure/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/store"
	"github.com/sangkips/retail-pos/internal/presentation/http/handler"
	"github.com/sangkips/retail-pos/pkg/printer"
	"github.com/sangkips/retail-pos/pkg/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		App:       config.AppConfig{Name: "retail-pos"},
		Store:     config.StoreConfig{Driver: store.DriverMemory},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
	}
	blobs := store.NewMemoryStore()
	docs := service.NewDocuments(repository.NewDocumentRepository(blobs, "database", repository.SeedDocument))
	settings := service.NewSettingsService(repository.NewSettingsRepository(blobs, "settings"))
	jwtManager := utils.NewJWTManager("test-secret", cfg.App.Name, time.Hour)
	m := metrics.New("pos_test")

	catalog := service.NewCatalogService(docs)
	printerService := service.NewPrinterService(printer.NewNullPrinter(), 32, docs)
	cashier := service.NewCashierService(docs, catalog, nil, service.CashierOptions{Metrics: m})
	settings.Subscribe(cashier)
	settings.Subscribe(printerService)

	h := &Handlers{
		Auth:       handler.NewAuthHandler(service.NewAuthService(docs, jwtManager)),
		User:       handler.NewUserHandler(service.NewUserService(docs)),
		Cashier:    handler.NewCashierHandler(cashier, printerService),
		Product:    handler.NewProductHandler(service.NewProductService(docs), catalog),
		MasterData: handler.NewMasterDataHandler(service.NewMasterDataService(docs)),
		Member:     handler.NewMemberHandler(service.NewMemberService(docs, nil)),
		Purchase:   handler.NewPurchaseHandler(service.NewPurchaseService(docs, nil)),
		Inventory:  handler.NewInventoryHandler(service.NewInventoryService(docs, nil), service.NewCashService(docs, nil)),
		Settings: handler.NewSettingsHandler(settings, service.NewBackupService(docs, nil),
			service.NewPriceTagService(docs, settings)),
		Report:  handler.NewReportHandler(service.NewReportService(docs)),
		Printer: handler.NewPrinterHandler(printerService),
	}
	deps := &Deps{JWTManager: jwtManager, Cfg: cfg, Metrics: m}
	router := Setup(h, deps)
	t.Cleanup(deps.RateLimiter.Stop)
	return router
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}, headers map[string]string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var env envelope
	if w.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	}
	return w, env
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	w, _ := do(t, router, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"store":"memory"`)
}

func TestCashierFlow(t *testing.T) {
	router := newTestRouter(t)

	w, env := do(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "kasir01"}, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var login struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	auth := map[string]string{"Authorization": "Bearer " + login.AccessToken}

	w, env = do(t, router, http.MethodPost, "/api/v1/cashier/scan", map[string]string{"token": "2*prod-001"}, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var snap struct {
		GrandTotal string `json:"grand_total"`
		LineCount  int    `json:"line_count"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &snap))
	assert.Equal(t, "36000", snap.GrandTotal)
	assert.Equal(t, 1, snap.LineCount)

	w, _ = do(t, router, http.MethodPost, "/api/v1/cashier/pay", nil, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	confirm := map[string]string{"tendered": "50000", "method": "cash"}
	headers := map[string]string{"Authorization": auth["Authorization"], "Idempotency-Key": "sale-1"}
	w, env = do(t, router, http.MethodPost, "/api/v1/cashier/pay/confirm", confirm, headers)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var paid struct {
		Sale struct {
			InvoiceID string `json:"invoice_id"`
			Cashier   string `json:"cashier"`
			Change    string `json:"change"`
		} `json:"sale"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &paid))
	assert.Equal(t, "Siti Sarah", paid.Sale.Cashier)
	assert.Equal(t, "14000", paid.Sale.Change)

	t.Run("retried confirmation is replayed", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPost, "/api/v1/cashier/pay/confirm", confirm, headers)
		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("X-Idempotency-Replayed"))
	})

	t.Run("confirmation without a pending payment", func(t *testing.T) {
		w, _ := do(t, router, http.MethodPost, "/api/v1/cashier/pay/confirm", confirm, auth)
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("sale shows up in reports", func(t *testing.T) {
		w, _ := do(t, router, http.MethodGet, "/api/v1/reports/cashiers", nil, nil)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Contains(t, w.Body.String(), "Siti Sarah")

		w, _ = do(t, router, http.MethodGet, "/api/v1/returns/sales/"+paid.Sale.InvoiceID, nil, nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestErrorResponses(t *testing.T) {
	router := newTestRouter(t)

	w, env := do(t, router, http.MethodPost, "/api/v1/cashier/scan", map[string]string{}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, env.Success)

	w, _ = do(t, router, http.MethodGet, "/api/v1/products/prod-999", nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = do(t, router, http.MethodPost, "/api/v1/auth/login", map[string]string{"username": "kasir02"}, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = do(t, router, http.MethodGet, "/api/v1/reports/sales?from=2024-05-02&to=2024-05-01", nil, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	do(t, router, http.MethodGet, "/health", nil, nil)

	w, _ := do(t, router, http.MethodGet, "/metrics", nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pos_test_")
}
