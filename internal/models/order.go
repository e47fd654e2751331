package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	StatusReceived   OrderStatus = "received"
	StatusProcessing OrderStatus = "processing"
	StatusShipping   OrderStatus = "shipping"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusReceived, StatusProcessing, StatusShipping, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// forwardChain maps each status to its single legal successor.
var forwardChain = map[OrderStatus]OrderStatus{
	StatusReceived:   StatusProcessing,
	StatusProcessing: StatusShipping,
	StatusShipping:   StatusDelivered,
}

// NextStatus returns the next forward status, or false when the order is in a
// terminal state (delivered, cancelled).
func NextStatus(s OrderStatus) (OrderStatus, bool) {
	next, ok := forwardChain[s]
	return next, ok
}

// CanTransition reports whether from -> to is a legal status change: one step
// along the forward chain, or the cancellation side-exit from received.
func CanTransition(from, to OrderStatus) bool {
	if from == StatusReceived && to == StatusCancelled {
		return true
	}
	return forwardChain[from] == to
}

// Deletable reports whether an order in this status may be deleted.
func (s OrderStatus) Deletable() bool {
	return s == StatusReceived || s == StatusCancelled
}

// Progress tracks the delivery-workflow status of an order and when it last
// changed.
type Progress struct {
	Status    OrderStatus `json:"status" gorm:"not null;index;default:'received'"`
	UpdatedAt time.Time   `json:"updated_at"`
}

type Order struct {
	ID             string      `json:"id" gorm:"primaryKey;size:36"`
	CustomerID     string      `json:"customer_id" gorm:"not null;index:idx_order_customer_date,priority:1"`
	Customer       *Customer   `json:"customer,omitempty" gorm:"foreignKey:CustomerID"`
	OrderDate      time.Time   `json:"order_date" gorm:"not null;index:idx_order_customer_date,priority:2,sort:desc"`
	DeliveryDate   time.Time   `json:"delivery_date" gorm:"not null;index"`
	DeliveryWindow string      `json:"delivery_window,omitempty"`
	Items          []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	TotalPrice     float64     `json:"total_price" gorm:"not null"`
	Progress       Progress    `json:"progress" gorm:"embedded;embeddedPrefix:progress_"`
	// Revision is bumped on every write; order updates compare-and-swap on it
	// so a concurrent writer surfaces as a conflict instead of a lost update.
	Revision  int64     `json:"revision" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (o *Order) BeforeCreate(tx *gorm.DB) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	return nil
}

// OrderItem is a line of an order. ProductName, Unit and UnitPrice are
// snapshots taken from the Product when the line was added, so later price
// changes never alter historical orders.
type OrderItem struct {
	ID              string   `json:"id" gorm:"primaryKey;size:36"`
	OrderID         string   `json:"order_id" gorm:"not null;index"`
	ProductID       string   `json:"product_id" gorm:"not null;index"`
	Product         *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	ProductName     string   `json:"product_name" gorm:"not null"`
	Quantity        float64  `json:"quantity" gorm:"not null"`
	Unit            string   `json:"unit" gorm:"not null"`
	UnitPrice       float64  `json:"unit_price" gorm:"not null"`
	DiscountPercent float64  `json:"discount_percent" gorm:"default:0"`
}

func (i *OrderItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
