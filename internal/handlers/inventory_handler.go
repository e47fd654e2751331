package handlers

import (
	"net/http"
	"produce_manager/internal/models"
	"produce_manager/internal/services"
	"time"

	"github.com/gin-gonic/gin"
)

type InventoryHandler struct {
	inventory services.InventoryService
}

func NewInventoryHandler(inventory services.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventory: inventory}
}

type createLotRequest struct {
	ProductID  string    `json:"product" binding:"required"`
	Quantity   float64   `json:"quantity" binding:"required,gt=0"`
	ExpiryDate time.Time `json:"expiry_date" binding:"required"`
}

type updateLotRequest struct {
	ProductID  *string    `json:"product"`
	Quantity   *float64   `json:"quantity"`
	ExpiryDate *time.Time `json:"expiry_date"`
}

func (h *InventoryHandler) List(c *gin.Context) {
	lots, err := h.inventory.GetAllLots()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

func (h *InventoryHandler) ExpiringSoon(c *gin.Context) {
	lots, err := h.inventory.ExpiringSoon()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

func (h *InventoryHandler) Summary(c *gin.Context) {
	summary, err := h.inventory.Summary()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *InventoryHandler) ListByProduct(c *gin.Context) {
	lots, err := h.inventory.GetLotsByProduct(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lots)
}

func (h *InventoryHandler) Create(c *gin.Context) {
	var req createLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lot := &models.InventoryLot{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
	}
	if err := h.inventory.CreateLot(lot); err != nil {
		respondError(c, err)
		return
	}

	// Return the lot with the product expanded
	created, err := h.inventory.GetLot(lot.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *InventoryHandler) Update(c *gin.Context) {
	var req updateLotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	lot, err := h.inventory.UpdateLot(c.Param("id"), &services.InventoryUpdate{
		ProductID:  req.ProductID,
		Quantity:   req.Quantity,
		ExpiryDate: req.ExpiryDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lot)
}

func (h *InventoryHandler) Delete(c *gin.Context) {
	if err := h.inventory.DeleteLot(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Inventory lot deleted successfully"})
}
