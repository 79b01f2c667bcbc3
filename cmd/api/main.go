package main

import (
	"os"
	"os/signal"
	"syscall"

	"go-smart-inventory/internal/config"
	"go-smart-inventory/internal/handler"
	"go-smart-inventory/internal/middleware"
	"go-smart-inventory/internal/model"
	"go-smart-inventory/internal/repository"
	"go-smart-inventory/internal/service"
	"go-smart-inventory/internal/ws"
	"go-smart-inventory/pkg/database"
	"go-smart-inventory/pkg/jwt"
	"go-smart-inventory/pkg/logger"
	"go-smart-inventory/pkg/metrics"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// 1. Load Env and Config (.env is optional, system env wins)
	_ = godotenv.Load()
	cfg := config.Load()
	logger.Init("inventory-api", cfg.IsDevelopment())

	// 2. Setup Database
	db := database.Connect(cfg.DatabaseURL)
	// Auto migrate (use a dedicated migration tool in production)
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Sale{}); err != nil {
		log.Fatal().Err(err).Msg("auto migration failed")
	}

	// 3. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 4. Dependency Injection (Wiring Layers)
	userRepo := repository.NewUserRepo(db)
	productRepo := repository.NewProductRepo(db)
	saleRepo := repository.NewSaleRepo(db)

	tokens := jwt.NewTokenManager(cfg.JWTSecret, cfg.TokenTTL)

	authService := service.NewAuthService(userRepo, tokens)
	productService := service.NewProductService(productRepo, wsHub)
	saleService := service.NewSaleService(saleRepo, productRepo, db, wsHub)
	analyticsService := service.NewAnalyticsService(saleRepo, productRepo)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	saleHandler := handler.NewSaleHandler(saleService, analyticsService)

	// 5. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Smart Inventory System API v1.0",
	})

	// Middleware
	app.Use(fiberlogger.New()) // Request logging
	app.Use(recover.New())     // Panic recovery
	app.Use(cors.New())        // CORS
	app.Use(metrics.Middleware())

	// 6. Routes
	users := app.Group("/users")
	users.Post("/register", authHandler.Register)
	users.Post("/login", authHandler.Login)
	users.Get("/me", middleware.RequireAuth(tokens), authHandler.Me)

	products := app.Group("/products")
	products.Get("/", productHandler.GetProducts)
	products.Post("/", middleware.RequireAuth(tokens), middleware.RequireRole(model.RoleAdmin), productHandler.CreateProduct)
	products.Delete("/:id", middleware.RequireAuth(tokens), middleware.RequireRole(model.RoleAdmin), productHandler.DeleteProduct)

	sales := app.Group("/sales")
	sales.Get("/", saleHandler.GetSales)
	sales.Get("/analytics", saleHandler.GetAnalytics)
	sales.Post("/", saleHandler.CreateSale)
	sales.Delete("/:id", saleHandler.DeleteSale)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// WebSocket stock-event feed
	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return c.SendStatus(fiber.StatusUpgradeRequired)
	})
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsHub.Register <- c
		defer func() { wsHub.Unregister <- c }()

		for {
			// Keep alive loop
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
	}))

	// 7. Graceful Shutdown
	go func() {
		log.Info().Str("port", cfg.Port).Msg("starting server")
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited")
}
