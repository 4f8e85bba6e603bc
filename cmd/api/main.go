package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"go-stock-api/internal/config"
	"go-stock-api/internal/handler"
	"go-stock-api/internal/media"
	"go-stock-api/internal/middleware"
	"go-stock-api/internal/model"
	"go-stock-api/internal/repository"
	"go-stock-api/internal/service"
	"go-stock-api/internal/ws"
	"go-stock-api/pkg/database"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}

	// 2. Setup Database
	db := database.Connect(cfg.Postgres.DSN())
	// Auto Migrate (use a dedicated migration tool for production rollouts)
	db.AutoMigrate(&model.Category{}, &model.Product{}, &model.Transaction{}, &model.User{})

	// 3. Bootstrap the first super admin if none exists
	bootstrapSuperAdmin(db)

	// 4. Setup WebSocket Hub
	wsHub := ws.NewHub()
	go wsHub.Run()

	// 5. Dependency Injection (Wiring Layers)
	mediaStore := media.NewDiskStore(cfg.Media.Dir, cfg.Media.BaseURL)

	categoryRepo := repository.NewCategoryRepo(db)
	productRepo := repository.NewProductRepo(db)
	txRepo := repository.NewTransactionRepo(db)
	userRepo := repository.NewUserRepo(db)

	ledgerService := service.NewLedgerService(productRepo, txRepo, db, wsHub)
	catalogService := service.NewCatalogService(productRepo, categoryRepo, txRepo, mediaStore, db)
	adminService := service.NewAdminService(userRepo, db)
	authService := service.NewAuthService(userRepo, cfg.JWT)
	dashService := service.NewDashboardService(productRepo, categoryRepo, txRepo)

	txHandler := handler.NewTransactionHandler(ledgerService)
	productHandler := handler.NewProductHandler(catalogService)
	categoryHandler := handler.NewCategoryHandler(catalogService)
	adminHandler := handler.NewAdminHandler(adminService)
	authHandler := handler.NewAuthHandler(authService)
	mediaHandler := handler.NewMediaHandler(mediaStore)
	dashHandler := handler.NewDashboardHandler(dashService)

	// 6. Setup Fiber
	app := fiber.New(fiber.Config{
		AppName: "Stock Management API v1.0",
	})

	// Middleware
	app.Use(logger.New())  // Logging request
	app.Use(recover.New()) // Panic recovery
	app.Use(cors.New())    // CORS

	// Serve stored images
	app.Static(cfg.Media.BaseURL, cfg.Media.Dir)

	secret := []byte(cfg.JWT.Secret)
	requireAuth := middleware.RequireAuth(secret)
	requireAdmin := middleware.RequireRole(model.RoleAdmin, model.RoleSuperAdmin)
	requireSuperAdmin := middleware.RequireRole(model.RoleSuperAdmin)

	// 7. Routes
	api := app.Group("/api/v1")

	// ============ PUBLIC ROUTES ============
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)
	auth.Get("/me", requireAuth, authHandler.Me)

	// ============ PROTECTED ROUTES ============
	protected := api.Group("", requireAuth)

	// Dashboard Routes
	protected.Get("/dashboard", requireAdmin, dashHandler.GetOverview)
	protected.Get("/dashboard/stock-movement", requireAdmin, dashHandler.GetStockMovement)

	// Category Routes (Admin & Super Admin)
	categories := protected.Group("/categories", requireAdmin)
	categories.Get("/", categoryHandler.GetCategories)
	categories.Post("/", categoryHandler.CreateCategory)
	categories.Get("/dropdown", categoryHandler.GetDropdown)
	categories.Get("/:id", categoryHandler.GetCategory)
	categories.Put("/:id", categoryHandler.UpdateCategory)
	categories.Delete("/:id", categoryHandler.DeleteCategory)

	// Product Routes (Admin & Super Admin)
	products := protected.Group("/products", requireAdmin)
	products.Get("/", productHandler.GetProducts)
	products.Post("/", productHandler.CreateProduct)
	products.Get("/low-stock", productHandler.GetLowStock)
	products.Get("/:id", productHandler.GetProduct)
	products.Put("/:id", productHandler.UpdateProduct)
	products.Delete("/:id", productHandler.DeleteProduct)

	// Transaction Routes (Admin & Super Admin)
	transactions := protected.Group("/transactions", requireAdmin)
	transactions.Get("/", txHandler.GetTransactions)
	transactions.Post("/", txHandler.CreateTransaction)
	transactions.Get("/stats", txHandler.GetStats)
	transactions.Get("/product/:productId/history", txHandler.ProductHistory)
	transactions.Get("/:id", txHandler.GetTransaction)

	// Image Routes (Admin & Super Admin)
	images := protected.Group("/images", requireAdmin)
	images.Post("/upload", mediaHandler.Upload)
	images.Post("/upload-multiple", mediaHandler.UploadMultiple)
	images.Delete("/", mediaHandler.Delete)
	images.Get("/", mediaHandler.List)

	// Admin Management Routes (Super Admin Only)
	admins := protected.Group("/admins", requireSuperAdmin)
	admins.Get("/", adminHandler.GetAdmins)
	admins.Post("/", adminHandler.CreateAdmin)
	admins.Get("/:id", adminHandler.GetAdmin)
	admins.Put("/:id", adminHandler.UpdateAdmin)
	admins.Delete("/:id", adminHandler.DeleteAdmin)

	// WebSocket Route
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

	// 8. Graceful Shutdown
	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Panic(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}

// bootstrapSuperAdmin guarantees a super_admin account exists so the admin
// directory is reachable on a fresh database.
func bootstrapSuperAdmin(db *gorm.DB) {
	var count int64
	if err := db.Model(&model.User{}).Where("role = ?", model.RoleSuperAdmin).Count(&count).Error; err != nil {
		log.Printf("Warning: could not check for super admin: %v", err)
		return
	}
	if count > 0 {
		return
	}

	admin := &model.User{
		FullName:  "Super Administrator",
		FirstName: "Super",
		LastName:  "Administrator",
		Email:     "superadmin@example.com",
		Role:      model.RoleSuperAdmin,
	}
	if err := admin.SetPassword("password123"); err != nil {
		log.Printf("Warning: failed to hash super admin password: %v", err)
		return
	}
	if err := db.Create(admin).Error; err != nil {
		log.Printf("Warning: failed to create super admin: %v", err)
		return
	}
	log.Println("Super admin created: superadmin@example.com / password123 (change this)")
}
