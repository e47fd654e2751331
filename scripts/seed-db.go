package main

import (
	"fmt"
	"log"
	"produce_manager/internal/config"
	"produce_manager/internal/database"
	"produce_manager/internal/models"
	"produce_manager/internal/repository"
	"produce_manager/internal/services"
	"time"
)

// Seeds the database with sample customers, products, inventory lots and an
// order, dropping any existing data first.
func main() {
	fmt.Println("Seeding database...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Drop and recreate all tables
	fmt.Println("Dropping existing tables...")
	err = db.Migrator().DropTable(
		&models.OrderItem{},
		&models.Order{},
		&models.InventoryLot{},
		&models.Product{},
		&models.Customer{},
	)
	if err != nil {
		log.Printf("Warning: Error dropping tables: %v", err)
	}

	fmt.Println("Creating tables...")
	err = db.AutoMigrate(
		&models.Customer{},
		&models.Product{},
		&models.InventoryLot{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	customerRepo := repository.NewCustomerRepository(db)
	productRepo := repository.NewProductRepository(db)
	inventoryRepo := repository.NewInventoryRepository(db)
	orderRepo := repository.NewOrderRepository(db)

	customerService := services.NewCustomerService(customerRepo, orderRepo)
	productService := services.NewProductService(productRepo, inventoryRepo, orderRepo)
	inventoryService := services.NewInventoryService(inventoryRepo, productRepo, cfg.ExpiryWindowDays)
	orderService := services.NewOrderService(orderRepo, customerRepo, productRepo)

	// Customers
	fmt.Println("Creating customers...")
	customers := []*models.Customer{
		{
			Name: "Bistro Verde",
			Address: models.Address{
				Street:     "123 Olive Rd",
				City:       "Lisbon",
				PostalCode: "1100-123",
				Country:    "Portugal",
			},
			Phone: "+351 912 345 678",
		},
		{
			Name: "Café Aurora",
			Address: models.Address{
				Street:     "78 Sunlight Avenue",
				City:       "Porto",
				PostalCode: "4050-456",
				Country:    "Portugal",
			},
			Phone: "+49 152 36315235",
		},
	}
	for _, customer := range customers {
		if err := customerService.CreateCustomer(customer); err != nil {
			log.Fatalf("Failed to create customer %s: %v", customer.Name, err)
		}
	}

	// Products
	fmt.Println("Creating products...")
	products := []*models.Product{
		{ItemName: "Roma Tomatoes", Category: "Vegetables", Unit: "kg", DefaultPricePerUnit: 5.5},
		{ItemName: "Baby Spinach", Category: "Leafy Greens", Unit: "kg", DefaultPricePerUnit: 12.0},
		{ItemName: "Fresh Basil", Category: "Herbs", Unit: "bunch", DefaultPricePerUnit: 3.0},
		{ItemName: "Thai Basil", Category: "Herbs", Unit: "bunch", DefaultPricePerUnit: 3.5},
		{ItemName: "Yukon Gold Potatoes", Category: "Vegetables", Unit: "kg", DefaultPricePerUnit: 4.5},
		{ItemName: "Zucchini", Category: "Vegetables", Unit: "kg", DefaultPricePerUnit: 5.5},
		{ItemName: "Red Bell Peppers", Category: "Vegetables", Unit: "kg", DefaultPricePerUnit: 16.5},
		{ItemName: "Avocados", Category: "Fruits", Unit: "kg", DefaultPricePerUnit: 15.5},
	}
	productsByName := make(map[string]*models.Product)
	for _, product := range products {
		if err := productService.CreateProduct(product); err != nil {
			log.Fatalf("Failed to create product %s: %v", product.ItemName, err)
		}
		productsByName[product.ItemName] = product
	}

	// Inventory lots
	fmt.Println("Creating inventory lots...")
	now := time.Now()
	lots := []struct {
		itemName string
		quantity float64
		expiryIn int // days from now
	}{
		{"Fresh Basil", 5, 3},
		{"Thai Basil", 15, 4},
		{"Avocados", 8, 2},
	}
	for _, l := range lots {
		lot := &models.InventoryLot{
			ProductID:  productsByName[l.itemName].ID,
			Quantity:   l.quantity,
			ExpiryDate: now.AddDate(0, 0, l.expiryIn),
		}
		if err := inventoryService.CreateLot(lot); err != nil {
			log.Fatalf("Failed to create inventory lot for %s: %v", l.itemName, err)
		}
	}

	// Sample order for the first customer
	fmt.Println("Creating sample order...")
	order, err := orderService.CreateOrder(&services.CreateOrderInput{
		CustomerID:     customers[0].ID,
		DeliveryDate:   now.AddDate(0, 0, 1),
		DeliveryWindow: "before 10:00 AM",
		Items: []services.OrderItemInput{
			{ProductID: productsByName["Roma Tomatoes"].ID, Quantity: 5},
			{ProductID: productsByName["Baby Spinach"].ID, Quantity: 3},
			{ProductID: productsByName["Fresh Basil"].ID, Quantity: 5, DiscountPercent: 10},
		},
	})
	if err != nil {
		log.Fatalf("Failed to create sample order: %v", err)
	}
	fmt.Printf("Sample order %s created, total %.2f\n", order.ID, order.TotalPrice)

	fmt.Println("Database seeding completed successfully!")
}
