package handlers

import (
	"net/http"
	"produce_manager/internal/models"
	"produce_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type ProductHandler struct {
	products services.ProductService
}

func NewProductHandler(products services.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

type createProductRequest struct {
	ItemName            string  `json:"item_name" binding:"required"`
	Category            string  `json:"category" binding:"required"`
	Unit                string  `json:"unit" binding:"required"`
	DefaultPricePerUnit float64 `json:"default_price_per_unit" binding:"required,gt=0"`
}

type updateProductRequest struct {
	ItemName            *string  `json:"item_name"`
	Category            *string  `json:"category"`
	Unit                *string  `json:"unit"`
	DefaultPricePerUnit *float64 `json:"default_price_per_unit"`
}

func (h *ProductHandler) List(c *gin.Context) {
	products, err := h.products.GetAllProducts(c.Query("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) ListByCategory(c *gin.Context) {
	products, err := h.products.GetAllProducts(c.Param("category"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *ProductHandler) Get(c *gin.Context) {
	product, err := h.products.GetProduct(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Inventory(c *gin.Context) {
	lots, err := h.products.GetProductInventory(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

func (h *ProductHandler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product := &models.Product{
		ItemName:            req.ItemName,
		Category:            req.Category,
		Unit:                req.Unit,
		DefaultPricePerUnit: req.DefaultPricePerUnit,
	}
	if err := h.products.CreateProduct(product); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

func (h *ProductHandler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.products.UpdateProduct(c.Param("id"), &services.ProductUpdate{
		ItemName:            req.ItemName,
		Category:            req.Category,
		Unit:                req.Unit,
		DefaultPricePerUnit: req.DefaultPricePerUnit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.products.DeleteProduct(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}
