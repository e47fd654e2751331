package main

import (
	"log"
	"produce_manager/internal/config"
	"produce_manager/internal/database"
	"produce_manager/internal/handlers"
	"produce_manager/internal/repository"
	"produce_manager/internal/services"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize repositories
	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	// Initialize services
	customerService := services.NewCustomerService(customerRepo, orderRepo)
	productService := services.NewProductService(productRepo, inventoryRepo, orderRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, productRepo, cfg.ExpiryWindowDays)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo)

	// Initialize handlers
	customerHandler := handlers.NewCustomerHandler(customerService)
	productHandler := handlers.NewProductHandler(productService)
	inventoryHandler := handlers.NewInventoryHandler(inventoryService)
	orderHandler := handlers.NewOrderHandler(orderService)

	// Setup routes
	router := gin.Default()
	handlers.RegisterRoutes(router, customerHandler, productHandler, inventoryHandler, orderHandler)

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
