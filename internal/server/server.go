// Package server contains the HTTP handlers and route wiring for the
// marketplace API.
package server

import (
	"context"
	"fmt"
	"time"

	"github.com/rratchapol/backend/internal/cache"
	"github.com/rratchapol/backend/internal/config"
	"github.com/rratchapol/backend/internal/database"
	"github.com/rratchapol/backend/internal/middleware"
	"github.com/rratchapol/backend/internal/models"
	"github.com/rratchapol/backend/internal/repository"
	"github.com/rratchapol/backend/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	productRepo    repository.ProductRepository
	categoryRepo   repository.CategoryRepository
	dealRepo       repository.DealRepository
	preorderRepo   repository.PreorderRepository
	likeRepo       repository.LikeRepository
	userService    *service.UserService
	productService *service.ProductService
}

// NewServer creates a new server instance with all dependencies.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient()), nil
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis itself.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	userRepo := repository.NewUserRepository(db)
	productRepo := repository.NewProductRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("marketplace-api"),
		userRepo:       userRepo,
		productRepo:    productRepo,
		categoryRepo:   repository.NewCategoryRepository(db),
		dealRepo:       repository.NewDealRepository(db),
		preorderRepo:   repository.NewPreorderRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
	}
	server.userService = service.NewUserService(db, userRepo, cfg.DeletePolicy)
	server.productService = service.NewProductService(db, productRepo, userRepo, cfg.DeletePolicy)

	return server
}

// SetupMiddleware configures middleware for the Fiber app.
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before middlewares that can short-circuit (e.g. limiter) so
	// browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		MaxAge:       86400,
	}))

	// Global rate limiting (300 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        300,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Marketplace Backend Metrics Dashboard",
	}))

	// User routes
	api.Post("/users_page", s.ListUsers)
	api.Post("/users", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "create_user"), s.CreateUser)
	api.Get("/users/:id", s.GetUser)
	api.Put("/users/:id", s.UpdateUser)
	api.Delete("/users/:id", s.DeleteUser)

	// Product routes
	api.Post("/products_page", s.ListProducts)
	api.Post("/products", s.CreateProduct)
	api.Get("/products/:id", s.GetProduct)
	api.Put("/products/:id", s.UpdateProduct)
	api.Delete("/products/:id", s.DeleteProduct)

	// Category routes
	api.Post("/categories_page", s.ListCategories)
	api.Post("/categories", s.CreateCategory)
	api.Get("/categories/:id", s.GetCategory)
	api.Put("/categories/:id", s.UpdateCategory)
	api.Delete("/categories/:id", s.DeleteCategory)

	// Like routes; show resolves by user_id, not by the like's own ID
	api.Get("/likes", s.ListLikes)
	api.Post("/likes", s.CreateLike)
	api.Get("/likes/:id", s.GetLikesByUser)
	api.Put("/likes/:id", s.UpdateLike)
	api.Delete("/likes/:id", s.DeleteLike)

	// Deal routes; show resolves by buyer_id
	api.Get("/deals", s.ListDeals)
	api.Post("/deals", s.CreateDeal)
	api.Get("/deals/:id", s.GetDealsByBuyer)
	api.Put("/deals/:id", s.UpdateDeal)
	api.Delete("/deals/:id", s.DeleteDeal)

	// Preorder routes; show resolves by buyer_id
	api.Get("/preorders", s.ListPreorders)
	api.Post("/preorders", s.CreatePreorder)
	api.Get("/preorders/:id", s.GetPreordersByBuyer)
	api.Put("/preorders/:id", s.UpdatePreorder)
	api.Delete("/preorders/:id", s.DeletePreorder)
}

// LivenessCheck handles liveness probe requests.
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// The API stays functional without Redis; report it but stay ready.
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server.
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName: "Marketplace API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			middleware.Logger.ErrorContext(c.UserContext(), "Unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("HTTP server shutdown failed", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("Closing sql DB failed", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("Closing redis failed", "error", rerr)
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
