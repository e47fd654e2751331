package handlers

import (
	"net/http"
	"produce_manager/internal/apperrors"
	"produce_manager/internal/models"
	"produce_manager/internal/services"
	"time"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders services.OrderService
}

func NewOrderHandler(orders services.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

type orderItemRequest struct {
	ProductID       string   `json:"product_id" binding:"required"`
	Quantity        float64  `json:"quantity" binding:"required,gt=0"`
	DiscountPercent float64  `json:"discount_percent" binding:"omitempty,gte=0,lte=100"`
	UnitPrice       *float64 `json:"unit_price" binding:"omitempty,gt=0"`
}

func (r orderItemRequest) toInput() services.OrderItemInput {
	return services.OrderItemInput{
		ProductID:       r.ProductID,
		Quantity:        r.Quantity,
		DiscountPercent: r.DiscountPercent,
		UnitPrice:       r.UnitPrice,
	}
}

type createOrderRequest struct {
	CustomerID     string             `json:"customer" binding:"required"`
	OrderDate      *time.Time         `json:"order_date"`
	DeliveryDate   time.Time          `json:"delivery_date" binding:"required"`
	DeliveryWindow string             `json:"delivery_window"`
	Items          []orderItemRequest `json:"items" binding:"required,min=1,dive"`
}

type updateOrderRequest struct {
	CustomerID     *string            `json:"customer"`
	OrderDate      *time.Time         `json:"order_date"`
	DeliveryDate   *time.Time         `json:"delivery_date"`
	DeliveryWindow *string            `json:"delivery_window"`
	Items          []orderItemRequest `json:"items" binding:"omitempty,dive"`
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required,orderstatus"`
}

func (h *OrderHandler) List(c *gin.Context) {
	var startDate, endDate *time.Time
	if start, end := c.Query("start_date"), c.Query("end_date"); start != "" && end != "" {
		s, err := parseDate(start)
		if err != nil {
			respondError(c, apperrors.Validationf("invalid start_date: %s", start))
			return
		}
		e, err := parseDate(end)
		if err != nil {
			respondError(c, apperrors.Validationf("invalid end_date: %s", end))
			return
		}
		startDate, endDate = &s, &e
	}

	orders, err := h.orders.ListOrders(startDate, endDate)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) ListByStatus(c *gin.Context) {
	orders, err := h.orders.ListOrdersByStatus(models.OrderStatus(c.Param("status")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) TodayDeliveries(c *gin.Context) {
	orders, err := h.orders.TodayDeliveries()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) Get(c *gin.Context) {
	order, err := h.orders.GetOrder(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

// NextStatus tells the dashboard which single forward transition it may
// offer; next_status is null for terminal orders.
func (h *OrderHandler) NextStatus(c *gin.Context) {
	next, ok, err := h.orders.NextOrderStatus(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusOK, gin.H{"next_status": nil})
		return
	}
	c.JSON(http.StatusOK, gin.H{"next_status": next})
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	items := make([]services.OrderItemInput, len(req.Items))
	for i, item := range req.Items {
		items[i] = item.toInput()
	}

	order, err := h.orders.CreateOrder(&services.CreateOrderInput{
		CustomerID:     req.CustomerID,
		OrderDate:      req.OrderDate,
		DeliveryDate:   req.DeliveryDate,
		DeliveryWindow: req.DeliveryWindow,
		Items:          items,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	force := c.Query("force") == "true"
	order, err := h.orders.SetOrderStatus(c.Param("id"), models.OrderStatus(req.Status), force)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	var req orderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	order, err := h.orders.AddOrderItem(c.Param("id"), req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) RemoveItem(c *gin.Context) {
	order, err := h.orders.RemoveOrderItem(c.Param("id"), c.Param("item_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Update(c *gin.Context) {
	var req updateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	update := &services.OrderUpdate{
		CustomerID:     req.CustomerID,
		OrderDate:      req.OrderDate,
		DeliveryDate:   req.DeliveryDate,
		DeliveryWindow: req.DeliveryWindow,
	}
	if req.Items != nil {
		items := make([]services.OrderItemInput, len(req.Items))
		for i, item := range req.Items {
			items[i] = item.toInput()
		}
		update.Items = items
	}

	order, err := h.orders.UpdateOrder(c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Delete(c *gin.Context) {
	if err := h.orders.DeleteOrder(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Order deleted successfully"})
}

// parseDate accepts RFC 3339 timestamps and plain dates.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
