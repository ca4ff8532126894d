package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/comanda-pos/internal/config"
	"github.com/sangkips/comanda-pos/internal/presentation/http/handler"
	"github.com/sangkips/comanda-pos/internal/presentation/http/middleware"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Product *handler.ProductHandler
	Cart    *handler.CartHandler
	Sale    *handler.SaleHandler
	Report  *handler.ReportHandler
	Printer *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	Cfg         *config.Config
	RateLimiter *middleware.ClientRateLimiter
	Idempotency *middleware.IdempotencyStore
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
			"storage": deps.Cfg.Storage.Driver,
		})
	})

	v1 := router.Group("/api/v1")
	if deps.RateLimiter != nil {
		v1.Use(deps.RateLimiter.Middleware())
	}
	{
		registerProductRoutes(v1, h)
		registerCartRoutes(v1, h)
		registerSaleRoutes(v1, h, deps)
		registerReportRoutes(v1, h)
		registerPrinterRoutes(v1, h)
	}

	return router
}

func registerProductRoutes(v1 *gin.RouterGroup, h *Handlers) {
	products := v1.Group("/products")
	{
		products.GET("", h.Product.List)
		products.POST("", h.Product.Create)
		products.POST("/import", h.Product.ImportProducts)
		products.GET("/export", h.Product.Export)
		products.GET("/:id", h.Product.Get)
		products.PUT("/:id", h.Product.Update)
		products.DELETE("/:id", h.Product.Delete)
	}
}

func registerCartRoutes(v1 *gin.RouterGroup, h *Handlers) {
	cart := v1.Group("/cart")
	{
		cart.GET("", h.Cart.Get)
		cart.DELETE("", h.Cart.Clear)
		cart.POST("/lines", h.Cart.AddLine)
		cart.PUT("/lines/:productId", h.Cart.SetQuantity)
		cart.DELETE("/lines/:productId", h.Cart.RemoveLine)
	}
}

func registerSaleRoutes(v1 *gin.RouterGroup, h *Handlers, deps *Deps) {
	sales := v1.Group("/sales")
	{
		finalize := []gin.HandlerFunc{h.Sale.Finalize}
		if deps.Idempotency != nil {
			finalize = append([]gin.HandlerFunc{middleware.Idempotency(deps.Idempotency)}, finalize...)
		}
		sales.POST("", finalize...)
		sales.GET("", h.Sale.List)
		sales.GET("/export", h.Sale.Export)
		sales.GET("/:orderNumber", h.Sale.Get)
	}
}

func registerReportRoutes(v1 *gin.RouterGroup, h *Handlers) {
	reports := v1.Group("/reports")
	{
		reports.GET("/daily", h.Report.Daily)
		reports.GET("/series", h.Report.Series)
	}
}

func registerPrinterRoutes(v1 *gin.RouterGroup, h *Handlers) {
	printer := v1.Group("/printer")
	{
		printer.GET("/status", h.Printer.GetStatus)
		printer.POST("/test", h.Printer.TestPrint)
		printer.POST("/sales/:orderNumber", h.Printer.PrintSaleReceipt)
	}
}
