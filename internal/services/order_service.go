package services

import (
	"errors"
	"produce_manager/internal/apperrors"
	"produce_manager/internal/models"
	"produce_manager/internal/pricing"
	"produce_manager/internal/repository"
	"time"
)

// OrderItemInput is a requested order line. UnitPrice is an optional explicit
// override honored only when adding an item to an existing order; everywhere
// else the Product record is authoritative for price, name and unit.
type OrderItemInput struct {
	ProductID       string
	Quantity        float64
	DiscountPercent float64
	UnitPrice       *float64
}

type CreateOrderInput struct {
	CustomerID     string
	OrderDate      *time.Time
	DeliveryDate   time.Time
	DeliveryWindow string
	Items          []OrderItemInput
}

// OrderUpdate is a partial update; nil fields are left untouched. When Items
// is non-nil the whole item collection is replaced, re-snapshotted from the
// products, and the total price recomputed.
type OrderUpdate struct {
	CustomerID     *string
	OrderDate      *time.Time
	DeliveryDate   *time.Time
	DeliveryWindow *string
	Items          []OrderItemInput
}

type OrderService interface {
	CreateOrder(input *CreateOrderInput) (*models.Order, error)
	GetOrder(id string) (*models.Order, error)
	ListOrders(startDate, endDate *time.Time) ([]models.Order, error)
	ListOrdersByStatus(status models.OrderStatus) ([]models.Order, error)
	TodayDeliveries() ([]models.Order, error)
	SetOrderStatus(id string, status models.OrderStatus, force bool) (*models.Order, error)
	NextOrderStatus(id string) (models.OrderStatus, bool, error)
	AddOrderItem(id string, item OrderItemInput) (*models.Order, error)
	RemoveOrderItem(id, itemID string) (*models.Order, error)
	UpdateOrder(id string, update *OrderUpdate) (*models.Order, error)
	DeleteOrder(id string) error
}

type orderService struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository
	nowFunc      func() time.Time
}

func NewOrderService(orderRepo repository.OrderRepository, customerRepo repository.CustomerRepository, productRepo repository.ProductRepository) OrderService {
	return &orderService{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		nowFunc:      time.Now,
	}
}

// CreateOrder validates every reference before anything is written: a missing
// customer or product aborts the whole creation and no partial order is
// persisted.
func (s *orderService) CreateOrder(input *CreateOrderInput) (*models.Order, error) {
	if input.DeliveryDate.IsZero() {
		return nil, apperrors.Validationf("delivery_date is required")
	}

	customer, err := s.customerRepo.GetByID(input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperrors.NotFoundf("customer not found: %s", input.CustomerID)
	}

	items, err := s.buildItems(input.Items)
	if err != nil {
		return nil, err
	}

	total, err := pricing.OrderTotal(toLines(items))
	if err != nil {
		return nil, err
	}

	now := s.nowFunc()
	orderDate := now
	if input.OrderDate != nil {
		orderDate = *input.OrderDate
	}

	order := &models.Order{
		CustomerID:     input.CustomerID,
		OrderDate:      orderDate,
		DeliveryDate:   input.DeliveryDate,
		DeliveryWindow: input.DeliveryWindow,
		Items:          items,
		TotalPrice:     total,
		Progress: models.Progress{
			Status:    models.StatusReceived,
			UpdatedAt: now,
		},
	}

	if err := s.orderRepo.Create(order); err != nil {
		return nil, err
	}
	return s.getExisting(order.ID)
}

func (s *orderService) GetOrder(id string) (*models.Order, error) {
	return s.getExisting(id)
}

func (s *orderService) ListOrders(startDate, endDate *time.Time) ([]models.Order, error) {
	return s.orderRepo.GetAll(startDate, endDate)
}

func (s *orderService) ListOrdersByStatus(status models.OrderStatus) ([]models.Order, error) {
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown order status: %s", status)
	}
	return s.orderRepo.GetByStatus(status)
}

func (s *orderService) TodayDeliveries() ([]models.Order, error) {
	now := s.nowFunc()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.orderRepo.GetDeliveriesBetween(today, today.AddDate(0, 0, 1))
}

// SetOrderStatus changes the order progress. Transitions are checked against
// the forward chain (plus the received->cancelled side exit); force bypasses
// the check for administrative corrections. updated_at is refreshed on every
// status write.
func (s *orderService) SetOrderStatus(id string, status models.OrderStatus, force bool) (*models.Order, error) {
	if status == "" {
		return nil, apperrors.Validationf("status is required")
	}
	if !status.Valid() {
		return nil, apperrors.Validationf("unknown order status: %s", status)
	}

	order, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}

	if !force && !models.CanTransition(order.Progress.Status, status) {
		return nil, apperrors.InvalidStatef("cannot transition order from %s to %s", order.Progress.Status, status)
	}

	order.Progress.Status = status
	order.Progress.UpdatedAt = s.nowFunc()

	if err := s.update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// NextOrderStatus reports the single legal forward transition for the order,
// which is what the dashboard's convenience action offers.
func (s *orderService) NextOrderStatus(id string) (models.OrderStatus, bool, error) {
	order, err := s.getExisting(id)
	if err != nil {
		return "", false, err
	}
	next, ok := models.NextStatus(order.Progress.Status)
	return next, ok, nil
}

// AddOrderItem appends a line snapshotted from the product and recomputes the
// total over the full item collection. An explicit positive unit-price
// override from the caller is honored.
func (s *orderService) AddOrderItem(id string, item OrderItemInput) (*models.Order, error) {
	order, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(item.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFoundf("product not found: %s", item.ProductID)
	}

	unitPrice := product.DefaultPricePerUnit
	if item.UnitPrice != nil && *item.UnitPrice > 0 {
		unitPrice = *item.UnitPrice
	}

	order.Items = append(order.Items, models.OrderItem{
		OrderID:         order.ID,
		ProductID:       product.ID,
		ProductName:     product.ItemName,
		Quantity:        item.Quantity,
		Unit:            product.Unit,
		UnitPrice:       unitPrice,
		DiscountPercent: item.DiscountPercent,
	})

	total, err := pricing.OrderTotal(toLines(order.Items))
	if err != nil {
		return nil, err
	}
	order.TotalPrice = total

	if err := s.update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// RemoveOrderItem deletes the identified line and recomputes the total over
// the remaining items.
func (s *orderService) RemoveOrderItem(id, itemID string) (*models.Order, error) {
	order, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}

	index := -1
	for i, item := range order.Items {
		if item.ID == itemID {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, apperrors.NotFoundf("item not found in order: %s", itemID)
	}

	order.Items = append(order.Items[:index], order.Items[index+1:]...)

	total, err := pricing.OrderTotal(toLines(order.Items))
	if err != nil {
		return nil, err
	}
	order.TotalPrice = total

	if err := s.update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// UpdateOrder applies a partial update. A changed customer must exist; when
// items are supplied every product must exist, snapshots are refreshed from
// the products and the total price is always recomputed — caller-supplied
// totals are never trusted.
func (s *orderService) UpdateOrder(id string, update *OrderUpdate) (*models.Order, error) {
	order, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}

	if update.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(*update.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, apperrors.NotFoundf("customer not found: %s", *update.CustomerID)
		}
		order.CustomerID = *update.CustomerID
		order.Customer = customer
	}
	if update.OrderDate != nil {
		order.OrderDate = *update.OrderDate
	}
	if update.DeliveryDate != nil {
		if update.DeliveryDate.IsZero() {
			return nil, apperrors.Validationf("delivery_date must not be empty")
		}
		order.DeliveryDate = *update.DeliveryDate
	}
	if update.DeliveryWindow != nil {
		order.DeliveryWindow = *update.DeliveryWindow
	}
	if update.Items != nil {
		items, err := s.buildItems(update.Items)
		if err != nil {
			return nil, err
		}
		total, err := pricing.OrderTotal(toLines(items))
		if err != nil {
			return nil, err
		}
		order.Items = items
		order.TotalPrice = total
	}

	if err := s.update(order); err != nil {
		return nil, err
	}
	return order, nil
}

// DeleteOrder removes the order, permitted only while it is still received or
// already cancelled.
func (s *orderService) DeleteOrder(id string) error {
	order, err := s.getExisting(id)
	if err != nil {
		return err
	}
	if !order.Progress.Status.Deletable() {
		return apperrors.InvalidStatef("cannot delete order in %s state; order must be received or cancelled", order.Progress.Status)
	}
	return s.orderRepo.Delete(id)
}

// buildItems resolves every requested product and snapshots name, unit and
// price from the product records. Any missing product aborts with the item
// index so the caller knows which line failed.
func (s *orderService) buildItems(inputs []OrderItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for i, input := range inputs {
		product, err := s.productRepo.GetByID(input.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, apperrors.NotFoundf("product not found: %s (item %d)", input.ProductID, i)
		}
		items = append(items, models.OrderItem{
			ProductID:       product.ID,
			ProductName:     product.ItemName,
			Quantity:        input.Quantity,
			Unit:            product.Unit,
			UnitPrice:       product.DefaultPricePerUnit,
			DiscountPercent: input.DiscountPercent,
		})
	}
	return items, nil
}

func (s *orderService) getExisting(id string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperrors.NotFoundf("order not found: %s", id)
	}
	return order, nil
}

func (s *orderService) update(order *models.Order) error {
	err := s.orderRepo.Update(order)
	if errors.Is(err, repository.ErrRevisionMismatch) {
		return apperrors.Conflictf("order %s was modified concurrently, retry with fresh data", order.ID)
	}
	return err
}

func toLines(items []models.OrderItem) []pricing.Line {
	lines := make([]pricing.Line, len(items))
	for i, item := range items {
		lines[i] = pricing.Line{
			Quantity:        item.Quantity,
			UnitPrice:       item.UnitPrice,
			DiscountPercent: item.DiscountPercent,
		}
	}
	return lines
}
