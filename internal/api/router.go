package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mithai/sweet-shop-api/internal/api/handler"
	"github.com/mithai/sweet-shop-api/internal/api/middleware"
	"github.com/mithai/sweet-shop-api/internal/core/domain"
	"github.com/mithai/sweet-shop-api/internal/core/service"
	"github.com/mithai/sweet-shop-api/internal/infrastructure/auth"
	"github.com/mithai/sweet-shop-api/internal/infrastructure/config"
	mongodb "github.com/mithai/sweet-shop-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mithai/sweet-shop-api/internal/infrastructure/db/redis"
	"github.com/mithai/sweet-shop-api/pkg/logger"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("sweetshop"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	sweetRepo := mongodb.NewSweetRepository(db)
	categoryRepo := mongodb.NewCategoryRepository(db)

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	tokens := auth.NewJWTProvider(cfg.JWTSecret)
	revoker := redisdb.NewRevocationList(rdb)

	authService := service.NewAuthService(userRepo, hasher, tokens, revoker, cfg.TokenTTL, log)
	sweetService := service.NewSweetService(sweetRepo, categoryRepo, log)
	inventoryService := service.NewInventoryService(sweetRepo, log)
	categoryService := service.NewCategoryService(categoryRepo)

	authHandler := handler.NewAuthHandler(authService)
	sweetHandler := handler.NewSweetHandler(sweetService)
	inventoryHandler := handler.NewInventoryHandler(inventoryService)
	categoryHandler := handler.NewCategoryHandler(categoryService)

	authenticated := middleware.Auth(tokens, revoker, userRepo)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authGroup := e.Group("/api/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.POST("/logout", authHandler.Logout, authenticated)

	// --- Catalog and inventory routes (JWT required) ---
	sweets := e.Group("/api/sweets", authenticated)
	sweets.GET("", sweetHandler.List)
	sweets.GET("/search", sweetHandler.List)
	sweets.GET("/category", categoryHandler.GetAll)
	sweets.GET("/:id", sweetHandler.Get)
	sweets.POST("", sweetHandler.Create, adminOnly)
	sweets.PUT("/:id", sweetHandler.Update, adminOnly)
	sweets.DELETE("/:id", sweetHandler.Delete, adminOnly)
	sweets.POST("/:id/purchase", inventoryHandler.Purchase)
	sweets.POST("/:id/restock", inventoryHandler.Restock, adminOnly)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
