package router

import (
	"time"

	"cloudledger/internal/config"
	"cloudledger/internal/handler"
	"cloudledger/internal/infra"
	"cloudledger/internal/middleware"
	"cloudledger/internal/repository"
	"cloudledger/internal/service"
	"cloudledger/internal/worker"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Deps carries the long-lived pieces main.go builds once and shares with
// the worker pool and scheduler.
type Deps struct {
	Billing   service.BillingService
	Inventory service.InventoryService
	Dashboard service.DashboardService
	Alerts    service.AlertService
}

// New wires all dependencies and returns a configured Gin engine plus the
// service set for the background workers.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, mailCB *infra.CircuitBreaker) (*gin.Engine, *Deps) {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	productRepo := repository.NewProductRepository(db)
	billRepo := repository.NewBillRepository(db)
	movementRepo := repository.NewStockMovementRepository(db)

	// Worker dispatcher — injected into services that enqueue async jobs
	dispatcher := worker.NewDispatcher(rdb)

	// ── Services ─────────────────────────────────────────────────────────────
	inventorySvc := service.NewInventoryService(productRepo, movementRepo)
	billingSvc := service.NewBillingService(billRepo, productRepo, movementRepo, dispatcher, cfg.BusinessName, cfg.PDFStoragePath)
	dashboardSvc := service.NewDashboardService(billRepo, cfg.CostRatio)
	alertSvc := service.NewAlertService(productRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	productsH := handler.NewProductsHandler(inventorySvc)
	billsH := handler.NewBillsHandler(billingSvc)
	dashboardH := handler.NewDashboardHandler(dashboardSvc)
	inventoryH := handler.NewInventoryHandler(alertSvc, inventorySvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	r.GET("/health", handler.Health(db, rdb, mailCB))

	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.POST("", productsH.Create)
			products.GET("", productsH.List)
			products.GET("/:id", productsH.GetByID)
			products.PUT("/:id", productsH.Update)
			products.DELETE("/:id", productsH.Delete)
			products.PATCH("/:id/stock", productsH.AdjustStock)
			products.POST("/import", productsH.Import)
		}

		bills := v1.Group("/bills")
		{
			bills.POST("", billsH.Create)
			bills.GET("", billsH.List)
			bills.GET("/:id", billsH.GetByID)
			bills.GET("/:id/pdf", billsH.DownloadPDF)
		}

		dashboard := v1.Group("/dashboard")
		{
			dashboard.GET("/stats", dashboardH.Stats)
			dashboard.GET("/sales-series", dashboardH.SalesSeries)
		}

		inventory := v1.Group("/inventory")
		{
			inventory.GET("/alerts", inventoryH.Alerts)
			inventory.GET("/movements", inventoryH.Movements)
		}
	}

	return r, &Deps{
		Billing:   billingSvc,
		Inventory: inventorySvc,
		Dashboard: dashboardSvc,
		Alerts:    alertSvc,
	}
}
