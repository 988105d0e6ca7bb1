package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"

	"stockflow/internal/caching"
	"stockflow/internal/common"
	"stockflow/internal/config"
	"stockflow/internal/handlers"
	"stockflow/internal/jobs"
	"stockflow/internal/middleware"
	"stockflow/internal/models"
	"stockflow/internal/repositories"
	"stockflow/internal/services"
	"stockflow/pkg/database"
	"stockflow/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env, cfg.App.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := database.NewPool(ctx, cfg.DB.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("redis unreachable, cache degraded")
	}
	cache := caching.NewRedisCacheService(redisClient)

	storage, err := services.NewMinioStorage(cfg.Minio.Endpoint, cfg.Minio.AccessKey, cfg.Minio.SecretKey, cfg.Minio.UseSSL, cfg.Minio.Bucket)
	if err != nil {
		log.Fatal().Err(err).Msg("minio client failed")
	}
	if err := storage.EnsureBucket(ctx); err != nil {
		log.Warn().Err(err).Str("bucket", cfg.Minio.Bucket).Msg("bucket check failed, image uploads may fail")
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	employeeRepo := repositories.NewEmployeeRepository(pool)
	customerRepo := repositories.NewCustomerRepository(pool)
	categoryRepo := repositories.NewCategoryRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	variantRepo := repositories.NewProductVariantRepository(pool)
	supplierRepo := repositories.NewSupplierRepository(pool)
	supplierProductRepo := repositories.NewSupplierProductRepository(pool)
	warehouseRepo := repositories.NewWarehouseRepository(pool)
	locationRepo := repositories.NewLocationRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	movementRepo := repositories.NewStockMovementRepository(pool)
	adjustmentRepo := repositories.NewStockAdjustmentRepository(pool)
	purchaseOrderRepo := repositories.NewPurchaseOrderRepository(pool)
	salesOrderRepo := repositories.NewSalesOrderRepository(pool)
	txRunner := repositories.NewTxRunner(pool)

	// Services
	authService := services.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.ExpirationMinutes)
	employeeService := services.NewEmployeeService(employeeRepo, userRepo)
	customerService := services.NewCustomerService(customerRepo, userRepo)
	categoryService := services.NewCategoryService(categoryRepo, cache, log)
	productService := services.NewProductService(productRepo, variantRepo, categoryRepo, cache, storage, log)
	supplierService := services.NewSupplierService(supplierRepo, supplierProductRepo, productRepo)
	warehouseService := services.NewWarehouseService(warehouseRepo, locationRepo)
	stockService := services.NewStockService(stockRepo, movementRepo, adjustmentRepo, employeeRepo, productRepo, locationRepo, cache, log)
	purchaseService := services.NewPurchaseOrderService(purchaseOrderRepo, supplierRepo, productRepo, txRunner, cache, log)
	salesService := services.NewSalesOrderService(salesOrderRepo, customerRepo, productRepo, txRunner, cache, log)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(authService)
	healthHandlers := handlers.NewHealthHandlers(pool, redisClient)
	employeeHandlers := handlers.NewEmployeeHandlers(employeeService)
	customerHandlers := handlers.NewCustomerHandlers(customerService)
	categoryHandlers := handlers.NewCategoryHandlers(categoryService)
	productHandlers := handlers.NewProductHandlers(productService)
	supplierHandlers := handlers.NewSupplierHandlers(supplierService)
	warehouseHandlers := handlers.NewWarehouseHandlers(warehouseService)
	stockHandlers := handlers.NewStockHandlers(stockService)
	purchaseHandlers := handlers.NewPurchaseOrderHandlers(purchaseService)
	salesHandlers := handlers.NewSalesOrderHandlers(salesService)

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = common.HTTPErrorHandler(log)
	e.Validator = common.NewRequestValidator()
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)

	v1 := e.Group("/v1")
	v1.POST("/auth/signup", authHandlers.Signup)
	v1.POST("/auth/login", authHandlers.Login)

	auth := middleware.NewAuthenticator(cfg.JWT.Secret, userRepo, employeeRepo, customerRepo)
	authed := v1.Group("", auth.Middleware())

	anyAuthed := middleware.RequireRoles()
	adminOnly := middleware.RequireRoles(models.RoleAdmin)
	managers := middleware.RequireRoles(models.RoleAdmin, models.RoleManager)
	allStaff := middleware.RequireRoles(models.RoleAdmin, models.RoleManager, models.RoleEmployee)

	authed.GET("/me", authHandlers.Me, anyAuthed)

	// Employees: admin only
	authed.POST("/employees", employeeHandlers.Create, adminOnly)
	authed.GET("/employees", employeeHandlers.List, adminOnly)
	authed.GET("/employees/:id", employeeHandlers.Get, adminOnly)
	authed.PUT("/employees/:id", employeeHandlers.Update, adminOnly)
	authed.DELETE("/employees/:id", employeeHandlers.Delete, adminOnly)

	// Customers: admin and manager
	authed.POST("/customers", customerHandlers.Create, managers)
	authed.GET("/customers", customerHandlers.List, managers)
	authed.GET("/customers/:id", customerHandlers.Get, managers)
	authed.PUT("/customers/:id", customerHandlers.Update, managers)
	authed.DELETE("/customers/:id", customerHandlers.Delete, managers)

	// Categories: any authenticated user
	authed.POST("/categories", categoryHandlers.Create, anyAuthed)
	authed.GET("/categories", categoryHandlers.List, anyAuthed)
	authed.GET("/categories/:id", categoryHandlers.Get, anyAuthed)
	authed.PUT("/categories/:id", categoryHandlers.Update, anyAuthed)
	authed.DELETE("/categories/:id", categoryHandlers.Delete, anyAuthed)

	// Products: read for anyone authenticated, writes for admin and manager
	authed.GET("/products", productHandlers.List, anyAuthed)
	authed.GET("/products/:id", productHandlers.Get, anyAuthed)
	authed.GET("/products/:id/availability", stockHandlers.Availability, anyAuthed)
	authed.GET("/products/:id/variants", productHandlers.ListVariants, anyAuthed)
	authed.GET("/products/:id/image", productHandlers.ImageURL, anyAuthed)
	authed.POST("/products", productHandlers.Create, managers)
	authed.PUT("/products/:id", productHandlers.Update, managers)
	authed.DELETE("/products/:id", productHandlers.Delete, managers)
	authed.POST("/products/:id/image", productHandlers.UploadImage, managers)
	authed.POST("/products/:id/variants", productHandlers.CreateVariant, managers)
	authed.DELETE("/products/:id/variants/:variantID", productHandlers.DeleteVariant, managers)

	// Suppliers: admin and manager
	authed.POST("/suppliers", supplierHandlers.Create, managers)
	authed.GET("/suppliers", supplierHandlers.List, managers)
	authed.GET("/suppliers/:id", supplierHandlers.Get, managers)
	authed.PUT("/suppliers/:id", supplierHandlers.Update, managers)
	authed.DELETE("/suppliers/:id", supplierHandlers.Delete, managers)
	authed.GET("/suppliers/:id/products", supplierHandlers.ListProducts, managers)
	authed.POST("/suppliers/:id/products", supplierHandlers.LinkProduct, managers)
	authed.DELETE("/suppliers/:id/products/:linkID", supplierHandlers.UnlinkProduct, managers)

	// Warehouses and locations: admin and manager
	authed.POST("/warehouses", warehouseHandlers.Create, managers)
	authed.GET("/warehouses", warehouseHandlers.List, managers)
	authed.GET("/warehouses/:id", warehouseHandlers.Get, managers)
	authed.PUT("/warehouses/:id", warehouseHandlers.Update, managers)
	authed.DELETE("/warehouses/:id", warehouseHandlers.Delete, managers)
	authed.POST("/locations", warehouseHandlers.CreateLocation, managers)
	authed.GET("/locations", warehouseHandlers.ListLocations, managers)
	authed.GET("/locations/:id", warehouseHandlers.GetLocation, managers)
	authed.PUT("/locations/:id", warehouseHandlers.UpdateLocation, managers)
	authed.DELETE("/locations/:id", warehouseHandlers.DeleteLocation, managers)

	// Stocks, movements, adjustments: reads for all staff, writes for admin
	// and manager
	authed.GET("/stocks", stockHandlers.List, allStaff)
	authed.GET("/stocks/:id", stockHandlers.Get, allStaff)
	authed.POST("/stocks", stockHandlers.Create, managers)
	authed.PUT("/stocks/:id", stockHandlers.Update, managers)
	authed.DELETE("/stocks/:id", stockHandlers.Delete, managers)
	authed.GET("/stock-movements", stockHandlers.ListMovements, allStaff)
	authed.GET("/stock-movements/:id", stockHandlers.GetMovement, allStaff)
	authed.POST("/stock-movements", stockHandlers.CreateMovement, managers)
	authed.GET("/stock-adjustments", stockHandlers.ListAdjustments, allStaff)
	authed.GET("/stock-adjustments/:id", stockHandlers.GetAdjustment, allStaff)
	authed.POST("/stock-adjustments", stockHandlers.CreateAdjustment, managers)
	authed.DELETE("/stock-adjustments/:id", stockHandlers.DeleteAdjustment, managers)

	// Purchase orders: admin and manager
	authed.POST("/purchase-orders", purchaseHandlers.Create, managers)
	authed.GET("/purchase-orders", purchaseHandlers.List, managers)
	authed.GET("/purchase-orders/:id", purchaseHandlers.Get, managers)
	authed.PUT("/purchase-orders/:id", purchaseHandlers.Update, managers)
	authed.DELETE("/purchase-orders/:id", purchaseHandlers.Delete, managers)
	authed.POST("/purchase-orders/:id/receive", purchaseHandlers.Receive, managers)
	authed.GET("/purchase-orders/:id/items", purchaseHandlers.ListItems, managers)
	authed.POST("/purchase-orders/:id/items", purchaseHandlers.AddItem, managers)
	authed.GET("/purchase-orders/:id/items/:itemID", purchaseHandlers.GetItem, managers)
	authed.PUT("/purchase-orders/:id/items/:itemID", purchaseHandlers.UpdateItem, managers)
	authed.DELETE("/purchase-orders/:id/items/:itemID", purchaseHandlers.RemoveItem, managers)

	// Sales orders: all staff
	authed.POST("/sales-orders", salesHandlers.Create, allStaff)
	authed.GET("/sales-orders", salesHandlers.List, allStaff)
	authed.GET("/sales-orders/:id", salesHandlers.Get, allStaff)
	authed.GET("/sales-orders/:id/items", salesHandlers.ListItems, allStaff)
	authed.POST("/sales-orders/:id/items", salesHandlers.AddItem, allStaff)
	authed.GET("/sales-orders/:id/items/:itemID", salesHandlers.GetItem, allStaff)
	authed.PUT("/sales-orders/:id/items/:itemID", salesHandlers.UpdateItem, allStaff)
	authed.DELETE("/sales-orders/:id/items/:itemID", salesHandlers.RemoveItem, allStaff)
	authed.PATCH("/sales-orders/:id/status", salesHandlers.UpdateStatus, allStaff)
	authed.DELETE("/sales-orders/:id", salesHandlers.Delete, allStaff)

	if cfg.LowStock.Enabled {
		monitor, err := jobs.NewLowStockMonitor(stockRepo, cfg.LowStock.Threshold, time.Duration(cfg.LowStock.IntervalMinutes)*time.Minute, log)
		if err != nil {
			log.Fatal().Err(err).Msg("low-stock monitor setup failed")
		}
		monitor.Start()
		defer func() {
			if err := monitor.Stop(); err != nil {
				log.Error().Err(err).Msg("low-stock monitor shutdown failed")
			}
		}()
	}

	go func() {
		log.Info().Str("addr", cfg.HTTP.Addr()).Msg("server starting")
		if err := e.Start(cfg.HTTP.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
