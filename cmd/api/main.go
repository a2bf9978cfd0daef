package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/config"
	"github.com/sangkips/retail-pos/internal/infrastructure/metrics"
	"github.com/sangkips/retail-pos/internal/infrastructure/repository"
	"github.com/sangkips/retail-pos/internal/infrastructure/store"
	"github.com/sangkips/retail-pos/internal/presentation/http/handler"
	"github.com/sangkips/retail-pos/internal/presentation/http/middleware"
	"github.com/sangkips/retail-pos/internal/presentation/http/routes"
	"github.com/sangkips/retail-pos/pkg/printer"
	"github.com/sangkips/retail-pos/pkg/utils"
)

func main() {
	cfg := config.Load()
	setupLogger(&cfg.App)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	blobs, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("Failed to open document store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			log.Warn().Err(err).Msg("Failed to close document store")
		}
	}()
	log.Info().Str("driver", cfg.Store.Driver).Msg("Document store ready")

	docRepo := repository.NewDocumentRepository(blobs, cfg.Store.DocumentKey, repository.SeedDocument)
	settingsRepo := repository.NewSettingsRepository(blobs, cfg.Store.SettingsKey)
	docs := service.NewDocuments(docRepo)

	var m *metrics.Metrics
	if cfg.Metrics.Enabled {
		m = metrics.New(cfg.Metrics.Namespace)
	}

	thermalPrinter, err := printer.NewPrinterFromConfig(cfg.Printer.Type, cfg.Printer.USBPath, cfg.Printer.Address)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize printer, receipts will not be printed")
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()

	var sinks []service.ReceiptSink
	if thermalPrinter.Kind() != "none" {
		sinks = append(sinks, service.NewThermalReceiptSink(thermalPrinter, cfg.Printer.CharWidth))
	}
	if cfg.Receipt.PDFEnabled {
		sinks = append(sinks, service.NewPDFReceiptSink(cfg.Receipt.PDFDir))
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.App.Name, cfg.JWT.ExpiryHours)

	settingsService := service.NewSettingsService(settingsRepo)
	catalogService := service.NewCatalogService(docs)
	cashierService := service.NewCashierService(docs, catalogService, sinks, service.CashierOptions{
		MaxCartLines:   cfg.Cashier.MaxCartLines,
		DefaultCashier: cfg.Cashier.DefaultCashier,
		WalkInCustomer: cfg.Cashier.WalkInCustomer,
		Metrics:        m,
	})
	printerService := service.NewPrinterService(thermalPrinter, cfg.Printer.CharWidth, docs)
	settingsService.Subscribe(cashierService)
	settingsService.Subscribe(printerService)
	if _, err := settingsService.Reload(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to load settings")
	}

	productService := service.NewProductService(docs)
	masterService := service.NewMasterDataService(docs)
	memberService := service.NewMemberService(docs, nil)
	purchaseService := service.NewPurchaseService(docs, nil)
	inventoryService := service.NewInventoryService(docs, nil)
	cashService := service.NewCashService(docs, nil)
	reportService := service.NewReportService(docs)
	authService := service.NewAuthService(docs, jwtManager)
	userService := service.NewUserService(docs)
	backupService := service.NewBackupService(docs, nil)
	priceTagService := service.NewPriceTagService(docs, settingsService)

	handlers := &routes.Handlers{
		Auth:       handler.NewAuthHandler(authService),
		User:       handler.NewUserHandler(userService),
		Cashier:    handler.NewCashierHandler(cashierService, printerService),
		Product:    handler.NewProductHandler(productService, catalogService),
		MasterData: handler.NewMasterDataHandler(masterService),
		Member:     handler.NewMemberHandler(memberService),
		Purchase:   handler.NewPurchaseHandler(purchaseService),
		Inventory:  handler.NewInventoryHandler(inventoryService, cashService),
		Settings:   handler.NewSettingsHandler(settingsService, backupService, priceTagService),
		Report:     handler.NewReportHandler(reportService),
		Printer:    handler.NewPrinterHandler(printerService),
	}

	rateLimiter := middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.Requests) / float64(max(cfg.RateLimit.Duration, 1)),
		BurstSize:         cfg.RateLimit.Requests,
		CleanupInterval:   5 * time.Minute,
		EntryTTL:          10 * time.Minute,
	})
	defer rateLimiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:  jwtManager,
		Cfg:         cfg,
		Metrics:     m,
		RateLimiter: rateLimiter,
		Replays:     middleware.NewReplayCache(middleware.IdempotencyKeyTTL),
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", port).Str("env", cfg.App.Env).Msgf("Starting %s server", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
}

// setupLogger configures the global zerolog logger: human-readable console
// output outside production, JSON otherwise.
func setupLogger(cfg *config.AppConfig) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.LogLevel))
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	if cfg.Env != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	log.Logger = log.With().Str("service", cfg.Name).Logger()
}
