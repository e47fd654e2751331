package repository

import (
	"errors"
	"produce_manager/internal/models"
	"time"

	"gorm.io/gorm"
)

// ErrRevisionMismatch is returned when an order write loses the
// compare-and-swap on the revision counter to a concurrent writer.
var ErrRevisionMismatch = errors.New("order revision mismatch")

type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	GetAll(startDate, endDate *time.Time) ([]models.Order, error)
	GetByStatus(status models.OrderStatus) ([]models.Order, error)
	GetByCustomerID(customerID string) ([]models.Order, error)
	GetDeliveriesBetween(from, to time.Time) ([]models.Order, error)
	ExistsForCustomer(customerID string) (bool, error)
	ExistsForProduct(productID string) (bool, error)
	Update(order *models.Order) error
	Delete(id string) error
}

type orderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &orderRepository{db: db}
}

func (r *orderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// GetByID returns the order with customer, items and item products expanded,
// or (nil, nil) when no order exists with the given id.
func (r *orderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	err := r.db.Preload("Customer").Preload("Items").Preload("Items.Product").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAll lists orders newest first, optionally restricted to an order-date
// range.
func (r *orderRepository) GetAll(startDate, endDate *time.Time) ([]models.Order, error) {
	var orders []models.Order
	query := r.db.Preload("Customer").Preload("Items").Order("order_date DESC")
	if startDate != nil && endDate != nil {
		query = query.Where("order_date BETWEEN ? AND ?", *startDate, *endDate)
	}
	err := query.Find(&orders).Error
	return orders, err
}

// GetByStatus lists orders in the given status, soonest delivery first.
func (r *orderRepository) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Customer").Preload("Items").
		Where("progress_status = ?", status).
		Order("delivery_date").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetByCustomerID(customerID string) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("order_date DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) GetDeliveriesBetween(from, to time.Time) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Customer").Preload("Items").
		Where("delivery_date >= ? AND delivery_date < ?", from, to).
		Order("delivery_date").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) ExistsForCustomer(customerID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Order{}).Where("customer_id = ?", customerID).Count(&count).Error
	return count > 0, err
}

func (r *orderRepository) ExistsForProduct(productID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.OrderItem{}).Where("product_id = ?", productID).Count(&count).Error
	return count > 0, err
}

// Update persists the order and replaces its item rows. The write is
// compared-and-swapped on the revision the caller read; ErrRevisionMismatch
// means a concurrent writer got there first and nothing was changed.
func (r *orderRepository) Update(order *models.Order) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Order{}).
			Where("id = ? AND revision = ?", order.ID, order.Revision).
			Updates(map[string]interface{}{
				"customer_id":         order.CustomerID,
				"order_date":          order.OrderDate,
				"delivery_date":       order.DeliveryDate,
				"delivery_window":     order.DeliveryWindow,
				"total_price":         order.TotalPrice,
				"progress_status":     order.Progress.Status,
				"progress_updated_at": order.Progress.UpdatedAt,
				"revision":            order.Revision + 1,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrRevisionMismatch
		}

		// Replace item rows; existing items keep their ids.
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		for i := range order.Items {
			order.Items[i].OrderID = order.ID
		}
		if len(order.Items) > 0 {
			if err := tx.Create(&order.Items).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	order.Revision++
	return nil
}

func (r *orderRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Order{}, "id = ?", id).Error
	})
}
