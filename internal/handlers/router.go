package handlers

import (
	"net/http"
	"produce_manager/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterRoutes wires all resource handlers onto the router, mirroring the
// API surface the dashboard consumes.
func RegisterRoutes(router *gin.Engine, customers *CustomerHandler, products *ProductHandler, inventory *InventoryHandler, orders *OrderHandler) {
	registerValidations()

	router.Use(CORSMiddleware())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to Fresh Produce API",
			"endpoints": gin.H{
				"customers": "/api/customers",
				"products":  "/api/products",
				"inventory": "/api/inventory",
				"orders":    "/api/orders",
			},
		})
	})

	api := router.Group("/api")
	{
		c := api.Group("/customers")
		{
			c.GET("", customers.List)
			c.GET("/:id", customers.Get)
			c.GET("/:id/orders", customers.ListOrders)
			c.POST("", customers.Create)
			c.PUT("/:id", customers.Update)
			c.DELETE("/:id", customers.Delete)
		}

		p := api.Group("/products")
		{
			p.GET("", products.List)
			p.GET("/category/:category", products.ListByCategory)
			p.GET("/:id", products.Get)
			p.GET("/:id/inventory", products.Inventory)
			p.POST("", products.Create)
			p.PUT("/:id", products.Update)
			p.DELETE("/:id", products.Delete)
		}

		i := api.Group("/inventory")
		{
			i.GET("", inventory.List)
			i.GET("/expiring-soon", inventory.ExpiringSoon)
			i.GET("/summary", inventory.Summary)
			i.GET("/product/:id", inventory.ListByProduct)
			i.POST("", inventory.Create)
			i.PUT("/:id", inventory.Update)
			i.DELETE("/:id", inventory.Delete)
		}

		o := api.Group("/orders")
		{
			o.GET("", orders.List)
			o.GET("/status/:status", orders.ListByStatus)
			o.GET("/today", orders.TodayDeliveries)
			o.GET("/:id", orders.Get)
			o.GET("/:id/next-status", orders.NextStatus)
			o.POST("", orders.Create)
			o.PATCH("/:id/status", orders.UpdateStatus)
			o.POST("/:id/items", orders.AddItem)
			o.DELETE("/:id/items/:item_id", orders.RemoveItem)
			o.PUT("/:id", orders.Update)
			o.DELETE("/:id", orders.Delete)
		}
	}
}

// registerValidations adds the custom binding validators used by the request
// structs.
func registerValidations() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return models.OrderStatus(fl.Field().String()).Valid()
		})
	}
}
