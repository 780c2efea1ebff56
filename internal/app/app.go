package app

import (
	"errors"
	"time"

	"butik/internal/config"
	"butik/internal/events"
	"butik/internal/handlers"
	"butik/internal/middleware"
	"butik/internal/payment"
	"butik/internal/repositories"
	"butik/internal/services"
	"butik/pkg/logger"
	"butik/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Options carries the dependencies of the HTTP application. Nil optional
// fields are filled from Config.
type Options struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *zap.Logger
	Publisher events.Publisher
	Gateway   payment.Gateway
	Metrics   *metrics.ServerMetrics
}

// New wires repositories, services and handlers into a Fiber app.
func New(opts Options) *fiber.App {
	cfg := opts.Config
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.NewLogPublisher(log)
	}
	if opts.Gateway == nil {
		opts.Gateway = payment.NewRazorpayGateway(cfg.RazorpayKeyID, cfg.RazorpayKeySecret)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewServerMetrics("butik")
	}

	// --- Repositories ---
	productRepo := repositories.NewGORMProductRepository(opts.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(opts.DB)
	userRepo := repositories.NewGORMUserRepository(opts.DB)
	cartRepo := repositories.NewGORMCartRepository(opts.DB)
	orderRepo := repositories.NewGORMOrderRepository(opts.DB)

	// --- Services ---
	authService := services.NewAuthService(userRepo, cfg.JWTSecret, cfg.JWTTTL)
	productService := services.NewProductService(productRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	cartService := services.NewCartService(cartRepo, productRepo)
	orderService := services.NewOrderService(orderRepo, cartRepo, opts.Gateway, opts.Publisher, opts.Metrics, cfg.PaymentCurrency, log)
	adminService := services.NewAdminService(productRepo, orderRepo, userRepo)
	exportService := services.NewExportService(productRepo)
	seedService := services.NewSeedService(userRepo, categoryRepo, productRepo, log)

	// --- Handlers ---
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService, categoryService)
	cartHandler := handlers.NewCartHandler(cartService)
	orderHandler := handlers.NewOrderHandler(orderService)
	adminHandler := handlers.NewAdminHandler(adminService, orderService, exportService)
	seedHandler := handlers.NewSeedHandler(seedService)

	app := fiber.New(fiber.Config{
		AppName:      "butik",
		ErrorHandler: errorHandler(log),
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))
	app.Use(logger.Middleware(log))
	app.Use(opts.Metrics.Middleware())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", opts.Metrics.Handler())

	// --- API Routes ---
	requireAuth := middleware.AuthRequired(authService)
	requireAdmin := middleware.AdminRequired()

	api := app.Group("/api")
	authHandler.RegisterRoutes(api, requireAuth)
	seedHandler.RegisterRoutes(api)
	productHandler.RegisterRoutes(api, requireAuth, requireAdmin)
	cartHandler.RegisterRoutes(api, requireAuth)
	orderHandler.RegisterRoutes(api, requireAuth)
	adminHandler.RegisterRoutes(api, requireAuth, requireAdmin)

	return app
}

// errorHandler renders errors that escape handlers, such as unknown routes,
// in the same {"error": ...} shape the handlers use.
func errorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "Internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}
		if code == fiber.StatusInternalServerError {
			log.Error("unhandled error", zap.String("path", c.Path()), zap.Error(err))
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}
