package router

import (
	"time"

	"tillpos/internal/config"
	"tillpos/internal/handler"
	"tillpos/internal/middleware"
	"tillpos/internal/repository"
	"tillpos/internal/service"
	"tillpos/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	operatorRepo := repository.NewOperatorRepository(db)
	productRepo := repository.NewProductRepository(db)
	customerRepo := repository.NewCustomerRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	financeRepo := repository.NewFinanceRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(operatorRepo, cfg)
	catalogSvc := service.NewCatalogService(productRepo, rdb, cfg)
	cartSvc := service.NewCartService(productRepo, customerRepo, cfg)
	shiftSvc := service.NewShiftService(shiftRepo, orderRepo, dispatcher)
	checkoutSvc := service.NewCheckoutService(orderRepo, productRepo, financeRepo, shiftSvc, cartSvc, rdb, cfg)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	shiftH := handler.NewShiftHandler(shiftSvc)
	cartH := handler.NewCartHandler(cartSvc)
	orderH := handler.NewOrderHandler(checkoutSvc)
	catalogH := handler.NewCatalogHandler(catalogSvc)
	customerH := handler.NewCustomerHandler(customerRepo)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		// Roles: cashier, supervisor, admin — declared per-endpoint
		anyRole := middleware.RequireRole("cashier", "supervisor", "admin")
		elevated := middleware.RequireRole("supervisor", "admin")

		shifts := v1.Group("/shifts")
		{
			shifts.POST("/open", anyRole, shiftH.Open)
			shifts.POST("/close", anyRole, shiftH.Close)
			shifts.GET("/active", anyRole, shiftH.Active)
			shifts.GET("/history", elevated, shiftH.History)
		}

		cart := v1.Group("/cart", anyRole)
		{
			cart.GET("", cartH.Get)
			cart.DELETE("", cartH.Clear)
			cart.POST("/items", cartH.AddItem)
			cart.PATCH("/items/:itemId", cartH.UpdateQuantity)
			cart.DELETE("/items/:itemId", cartH.RemoveItem)
			cart.PUT("/discount", cartH.SetDiscount)
			cart.PUT("/customer", cartH.SetCustomer)
			cart.PUT("/note", cartH.SetNote)
		}

		orders := v1.Group("/orders")
		{
			orders.POST("/checkout", anyRole, orderH.Checkout)
			orders.POST("/hold", anyRole, orderH.Hold)
			orders.GET("/held", anyRole, orderH.ListHeld)
			orders.POST("/:id/restore", anyRole, orderH.Restore)
			// Refunds reverse money and stock — cashiers cannot issue them
			orders.POST("/:id/refund", elevated, orderH.Refund)
			orders.GET("", anyRole, orderH.List)
			orders.GET("/:id", anyRole, orderH.Get)
		}

		catalog := v1.Group("/catalog")
		{
			catalog.GET("", anyRole, catalogH.ListSellable)
			catalog.POST("/:id/stock", elevated, catalogH.AdjustStock)
		}

		customers := v1.Group("/customers", anyRole)
		{
			customers.GET("", customerH.List)
			customers.GET("/:id", customerH.Get)
		}
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
