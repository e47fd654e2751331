package handlers

import (
	"net/http"
	"produce_manager/internal/models"
	"produce_manager/internal/services"

	"github.com/gin-gonic/gin"
)

type CustomerHandler struct {
	customers services.CustomerService
}

func NewCustomerHandler(customers services.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

type addressRequest struct {
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
}

func (a addressRequest) toModel() models.Address {
	return models.Address{
		Street:     a.Street,
		City:       a.City,
		PostalCode: a.PostalCode,
		Country:    a.Country,
	}
}

type createCustomerRequest struct {
	Name    string         `json:"name" binding:"required"`
	Address addressRequest `json:"address" binding:"required"`
	Phone   string         `json:"phone" binding:"required"`
}

type updateCustomerRequest struct {
	Name    *string         `json:"name"`
	Address *addressRequest `json:"address"`
	Phone   *string         `json:"phone"`
}

func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customers.GetAllCustomers()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *CustomerHandler) Get(c *gin.Context) {
	customer, err := h.customers.GetCustomer(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) ListOrders(c *gin.Context) {
	orders, err := h.customers.GetCustomerOrders(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *CustomerHandler) Create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	customer := &models.Customer{
		Name:    req.Name,
		Address: req.Address.toModel(),
		Phone:   req.Phone,
	}
	if err := h.customers.CreateCustomer(customer); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *CustomerHandler) Update(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	update := &services.CustomerUpdate{
		Name:  req.Name,
		Phone: req.Phone,
	}
	if req.Address != nil {
		address := req.Address.toModel()
		update.Address = &address
	}

	customer, err := h.customers.UpdateCustomer(c.Param("id"), update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *CustomerHandler) Delete(c *gin.Context) {
	if err := h.customers.DeleteCustomer(c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Customer deleted successfully"})
}
