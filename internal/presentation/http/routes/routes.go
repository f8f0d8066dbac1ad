package routes

import (
	"github.com/chaatgpt/till/internal/config"
	domainRepo "github.com/chaatgpt/till/internal/domain/repository"
	"github.com/chaatgpt/till/internal/presentation/http/handler"
	"github.com/chaatgpt/till/internal/presentation/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Menu    *handler.MenuHandler
	Cart    *handler.CartHandler
	Payment *handler.PaymentHandler
	Bill    *handler.BillHandler
	Report  *handler.ReportHandler
	Export  *handler.ExportHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	RateLimiter     *middleware.ClientRateLimiter
}

// NewRateLimiter builds the per-client limiter from RATE_LIMIT_REQUESTS
// per RATE_LIMIT_DURATION seconds
func NewRateLimiter(cfg *config.RateLimitConfig) *middleware.ClientRateLimiter {
	rlCfg := middleware.DefaultRateLimiterConfig()
	if cfg.Requests > 0 && cfg.Duration > 0 {
		rlCfg.RequestsPerSecond = float64(cfg.Requests) / float64(cfg.Duration)
		rlCfg.BurstSize = cfg.Requests
	}
	return middleware.NewClientRateLimiter(rlCfg)
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware("/health", "/metrics"))
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	if deps.Cfg.Metrics.Enabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	v1 := router.Group("/api/v1")
	{
		limiter := deps.RateLimiter
		if limiter == nil {
			limiter = NewRateLimiter(&deps.Cfg.RateLimit)
		}
		v1.Use(limiter.Middleware())

		registerMenuRoutes(v1, h)
		registerCartRoutes(v1, h)
		registerPaymentRoutes(v1, h)
		registerBillRoutes(v1, h, deps)
		registerEODRoutes(v1, h)
		registerReportRoutes(v1, h)
		registerExportRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerMenuRoutes(v1 *gin.RouterGroup, h *Handlers) {
	menu := v1.Group("/menu")
	{
		menu.GET("", h.Menu.List)
		menu.PUT("/:id", h.Menu.Update)
		menu.DELETE("/:id", h.Menu.Delete)
	}
}

func registerCartRoutes(v1 *gin.RouterGroup, h *Handlers) {
	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/items", h.Cart.AddItem)
		cart.PATCH("/items/:index", h.Cart.UpdateQuantity)
		cart.PUT("/packing", h.Cart.SetPacking)
		cart.PUT("/customer", h.Cart.SetCustomer)
	}
}

func registerPaymentRoutes(v1 *gin.RouterGroup, h *Handlers) {
	payment := v1.Group("/payment")
	{
		payment.PUT("/method", h.Payment.SelectMethod)
		payment.PUT("/amount", h.Payment.SetAmount)
		payment.GET("/change", h.Payment.Change)
	}
}

func registerBillRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	bills := v1.Group("/bills")
	{
		// bill creation replays on a repeated Idempotency-Key
		idempotent := middleware.Idempotency(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
		})
		bills.POST("/process", idempotent, h.Bill.Process)
		bills.POST("/save", idempotent, h.Bill.Save)
		bills.GET("/preview", h.Bill.Preview)
		bills.GET("/:number/receipt", h.Bill.Receipt)
		bills.POST("/:number/print", h.Bill.Print)
	}
}

func registerEODRoutes(v1 *gin.RouterGroup, h *Handlers) {
	eod := v1.Group("/eod")
	{
		eod.GET("", h.Report.Summary)
		eod.GET("/bills", h.Report.Bills)
		eod.POST("/reset", h.Report.Reset)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/products", h.Report.Products)
	}
}

func registerExportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	exports := v1.Group("/exports")
	{
		exports.GET("", h.Export.List)
		exports.POST("/:kind", h.Export.Create)
		exports.GET("/:index", h.Export.Download)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printerGroup := v1.Group("/printer")
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
