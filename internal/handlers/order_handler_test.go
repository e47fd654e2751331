package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"produce_manager/internal/apperrors"
	"produce_manager/internal/models"
	"produce_manager/internal/services"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubOrderService returns canned results so the tests can focus on routing,
// binding and status-code mapping.
type stubOrderService struct {
	order     *models.Order
	orders    []models.Order
	next      models.OrderStatus
	hasNext   bool
	err       error
	lastForce bool
}

func (s *stubOrderService) CreateOrder(*services.CreateOrderInput) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) GetOrder(string) (*models.Order, error) { return s.order, s.err }
func (s *stubOrderService) ListOrders(*time.Time, *time.Time) ([]models.Order, error) {
	return s.orders, s.err
}
func (s *stubOrderService) ListOrdersByStatus(models.OrderStatus) ([]models.Order, error) {
	return s.orders, s.err
}
func (s *stubOrderService) TodayDeliveries() ([]models.Order, error) { return s.orders, s.err }
func (s *stubOrderService) SetOrderStatus(_ string, _ models.OrderStatus, force bool) (*models.Order, error) {
	s.lastForce = force
	return s.order, s.err
}
func (s *stubOrderService) NextOrderStatus(string) (models.OrderStatus, bool, error) {
	return s.next, s.hasNext, s.err
}
func (s *stubOrderService) AddOrderItem(string, services.OrderItemInput) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) RemoveOrderItem(string, string) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) UpdateOrder(string, *services.OrderUpdate) (*models.Order, error) {
	return s.order, s.err
}
func (s *stubOrderService) DeleteOrder(string) error { return s.err }

func newTestRouter(orders services.OrderService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router,
		NewCustomerHandler(nil),
		NewProductHandler(nil),
		NewInventoryHandler(nil),
		NewOrderHandler(orders),
	)
	return router
}

func doRequest(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGetOrderStatusCodes(t *testing.T) {
	stub := &stubOrderService{order: &models.Order{ID: "order-1"}}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodGet, "/api/orders/order-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	stub.err = apperrors.NotFoundf("order not found: order-2")
	w = doRequest(router, http.MethodGet, "/api/orders/order-2", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body["message"], "order not found")
}

func TestUpdateStatusBinding(t *testing.T) {
	stub := &stubOrderService{order: &models.Order{ID: "order-1"}}
	router := newTestRouter(stub)

	// missing status
	w := doRequest(router, http.MethodPatch, "/api/orders/order-1/status", gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// unknown status rejected by the orderstatus validator
	w = doRequest(router, http.MethodPatch, "/api/orders/order-1/status", gin.H{"status": "pending"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// legal status passes through
	w = doRequest(router, http.MethodPatch, "/api/orders/order-1/status", gin.H{"status": "processing"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, stub.lastForce)

	// force flag forwarded
	w = doRequest(router, http.MethodPatch, "/api/orders/order-1/status?force=true", gin.H{"status": "delivered"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, stub.lastForce)
}

func TestUpdateStatusConflictMapsTo409(t *testing.T) {
	stub := &stubOrderService{err: apperrors.Conflictf("order order-1 was modified concurrently")}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodPatch, "/api/orders/order-1/status", gin.H{"status": "processing"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestDeleteOrderInvalidStateMapsTo400(t *testing.T) {
	stub := &stubOrderService{err: apperrors.InvalidStatef("cannot delete order in shipping state")}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodDelete, "/api/orders/order-1", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateOrderRequestValidation(t *testing.T) {
	stub := &stubOrderService{order: &models.Order{ID: "order-1"}}
	router := newTestRouter(stub)

	// no items
	w := doRequest(router, http.MethodPost, "/api/orders", gin.H{
		"customer":      "customer-1",
		"delivery_date": "2025-04-08T09:00:00Z",
		"items":         []gin.H{},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// non-positive quantity
	w = doRequest(router, http.MethodPost, "/api/orders", gin.H{
		"customer":      "customer-1",
		"delivery_date": "2025-04-08T09:00:00Z",
		"items":         []gin.H{{"product_id": "product-1", "quantity": 0}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// valid request
	w = doRequest(router, http.MethodPost, "/api/orders", gin.H{
		"customer":      "customer-1",
		"delivery_date": "2025-04-08T09:00:00Z",
		"items":         []gin.H{{"product_id": "product-1", "quantity": 5, "discount_percent": 10}},
	})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestNextStatusEndpoint(t *testing.T) {
	stub := &stubOrderService{next: models.StatusProcessing, hasNext: true}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodGet, "/api/orders/order-1/next-status", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "processing", body["next_status"])

	stub.hasNext = false
	w = doRequest(router, http.MethodGet, "/api/orders/order-1/next-status", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Nil(t, body["next_status"])
}

func TestListOrdersDateFilter(t *testing.T) {
	stub := &stubOrderService{orders: []models.Order{}}
	router := newTestRouter(stub)

	w := doRequest(router, http.MethodGet, "/api/orders?start_date=2025-04-01&end_date=2025-04-30", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodGet, "/api/orders?start_date=not-a-date&end_date=2025-04-30", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
