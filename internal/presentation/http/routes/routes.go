package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/config"
	"github.com/sangkips/retail-pos/internal/infrastructure/metrics"
	"github.com/sangkips/retail-pos/internal/presentation/http/handler"
	"github.com/sangkips/retail-pos/internal/presentation/http/middleware"
	"github.com/sangkips/retail-pos/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth       *handler.AuthHandler
	User       *handler.UserHandler
	Cashier    *handler.CashierHandler
	Product    *handler.ProductHandler
	MasterData *handler.MasterDataHandler
	Member     *handler.MemberHandler
	Purchase   *handler.PurchaseHandler
	Inventory  *handler.InventoryHandler
	Settings   *handler.SettingsHandler
	Report     *handler.ReportHandler
	Printer    *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager  *utils.JWTManager
	Cfg         *config.Config
	Metrics     *metrics.Metrics
	RateLimiter *middleware.ClientRateLimiter
	Replays     *middleware.ReplayCache
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))
	if deps.Metrics != nil {
		router.Use(middleware.MetricsMiddleware(deps.Metrics))
		router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"store":   deps.Cfg.Store.Driver,
		})
	})

	if deps.RateLimiter == nil {
		deps.RateLimiter = middleware.NewClientRateLimiter(middleware.RateLimiterConfig{
			RequestsPerSecond: perSecond(deps.Cfg.RateLimit),
			BurstSize:         deps.Cfg.RateLimit.Requests,
			CleanupInterval:   5 * time.Minute,
			EntryTTL:          10 * time.Minute,
		})
	}
	if deps.Replays == nil {
		deps.Replays = middleware.NewReplayCache(middleware.IdempotencyKeyTTL)
	}

	v1 := router.Group("/api/v1")
	v1.Use(deps.RateLimiter.Middleware())
	v1.Use(middleware.OptionalAuthMiddleware(deps.JWTManager))
	{
		registerAuthRoutes(v1, h)
		registerCashierRoutes(v1, h, deps)
		registerProductRoutes(v1, h)
		registerMasterDataRoutes(v1, h)
		registerMemberRoutes(v1, h)
		registerPurchaseRoutes(v1, h)
		registerInventoryRoutes(v1, h)
		registerSettingsRoutes(v1, h)
		registerReportRoutes(v1, h)
		registerPrinterRoutes(v1, h)
		registerUserRoutes(v1, h)
	}

	return router
}

func perSecond(cfg config.RateLimitConfig) float64 {
	if cfg.Duration <= 0 {
		return float64(cfg.Requests)
	}
	return float64(cfg.Requests) / float64(cfg.Duration)
}

func registerAuthRoutes(v1 *gin.RouterGroup, h *Handlers) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", h.Auth.Login)
		auth.GET("/me", h.Auth.Me)
	}
}

func registerCashierRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	idempotent := middleware.Idempotency(deps.Replays)

	cashier := v1.Group("/cashier")
	{
		cashier.GET("", h.Cashier.Get)
		cashier.POST("/scan", h.Cashier.Scan)
		cashier.POST("/lines", h.Cashier.AddLine)
		cashier.PUT("/lines", h.Cashier.UpdateLine)
		cashier.PUT("/lines/unit", h.Cashier.ChangeUnit)
		cashier.DELETE("/lines", h.Cashier.RemoveLine)
		cashier.POST("/member", h.Cashier.SelectMember)
		cashier.DELETE("/member", h.Cashier.ClearMember)
		cashier.POST("/redeem", h.Cashier.RedeemPoints)
		cashier.DELETE("/redeem", h.Cashier.CancelRedemption)
		cashier.POST("/reset", h.Cashier.Reset)
		cashier.POST("/suspend", idempotent, h.Cashier.Suspend)
		cashier.GET("/suspended", h.Cashier.ListSuspended)
		cashier.POST("/recall/:id", h.Cashier.Recall)
		cashier.POST("/pay", idempotent, h.Cashier.RequestPayment)
		cashier.POST("/pay/confirm", idempotent, h.Cashier.ConfirmPayment)
		cashier.POST("/pay/cancel", h.Cashier.CancelPayment)
		cashier.POST("/reprint/:invoice", h.Cashier.Reprint)
	}
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.GET("/search", h.Product.Search)
		products.GET("/low-stock", h.Product.GetLowStock)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.Import)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerMasterDataRoutes(v1 *gin.RouterGroup, h *Handlers) {
	groups := v1.Group("/product-groups")
	{
		groups.GET("", h.MasterData.ListGroups)
		groups.POST("", h.MasterData.SaveGroup)
		groups.PUT("/:id", h.MasterData.SaveGroup)
		groups.DELETE("/:id", h.MasterData.DeleteGroup)
	}

	suppliers := v1.Group("/suppliers")
	{
		suppliers.GET("", h.MasterData.ListSuppliers)
		suppliers.POST("", h.MasterData.SaveSupplier)
		suppliers.PUT("/:id", h.MasterData.SaveSupplier)
		suppliers.DELETE("/:id", h.MasterData.DeleteSupplier)
	}

	salesmen := v1.Group("/salesmen")
	{
		salesmen.GET("", h.MasterData.ListSalesmen)
		salesmen.POST("", h.MasterData.SaveSalesman)
		salesmen.PUT("/:id", h.MasterData.SaveSalesman)
	}

	banks := v1.Group("/banks")
	{
		banks.GET("", h.MasterData.ListBanks)
		banks.POST("", h.MasterData.SaveBank)
		banks.PUT("/:id", h.MasterData.SaveBank)
	}
}

func registerMemberRoutes(v1 *gin.RouterGroup, h *Handlers) {
	members := v1.Group("/members")
	{
		members.GET("", h.Member.List)
		members.POST("", h.Member.Create)
		members.GET("/:id", h.Member.Get)
		members.PUT("/:id", h.Member.Update)
		members.DELETE("/:id", h.Member.Delete)
	}
}

func registerPurchaseRoutes(v1 *gin.RouterGroup, h *Handlers) {
	purchases := v1.Group("/purchases")
	{
		purchases.GET("", h.Purchase.List)
		purchases.POST("", h.Purchase.Create)
		purchases.GET("/:po", h.Purchase.Get)
		purchases.PUT("/:po", h.Purchase.Update)
	}
}

func registerInventoryRoutes(v1 *gin.RouterGroup, h *Handlers) {
	returns := v1.Group("/returns")
	{
		returns.GET("", h.Inventory.ListReturns)
		returns.POST("", h.Inventory.CreateReturn)
		returns.GET("/sales/:invoice", h.Inventory.FindSale)
	}

	v1.GET("/stock-adjustments", h.Inventory.ListAdjustments)
	v1.POST("/stock-adjustments", h.Inventory.CreateAdjustment)

	v1.GET("/cash-transactions", h.Inventory.ListCash)
	v1.POST("/cash-transactions", h.Inventory.CreateCash)
}

func registerSettingsRoutes(v1 *gin.RouterGroup, h *Handlers) {
	settings := v1.Group("/settings")
	{
		settings.GET("", h.Settings.GetSettings)
		settings.PUT("", h.Settings.UpdateSettings)
		settings.POST("/reload", h.Settings.ReloadSettings)
	}

	v1.GET("/backup", h.Settings.Backup)
	v1.POST("/backup/restore", h.Settings.Restore)
	v1.POST("/price-tags", h.Settings.PriceTags)
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/cashiers", h.Report.Cashiers)
		reports.GET("/sales", h.Report.Sales)
		reports.GET("/sales/chart", h.Report.Chart)
		reports.GET("/sales/export", h.Report.Export)
		reports.GET("/returns", h.Inventory.ListReturns)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printer := v1.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
	}
}

func registerUserRoutes(v1 *gin.RouterGroup, h *Handlers) {
	users := v1.Group("/users")
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.PUT("/:id", h.User.Update)
		users.DELETE("/:id", h.User.Delete)
	}
}
