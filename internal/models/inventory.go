package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InventoryLot is a single stock lot of a product with its own expiry date.
// A product typically has several lots in stock at once.
type InventoryLot struct {
	ID         string    `json:"id" gorm:"primaryKey;size:36"`
	ProductID  string    `json:"product_id" gorm:"not null;index:idx_lot_product_expiry,priority:1"`
	Product    *Product  `json:"product,omitempty" gorm:"foreignKey:ProductID"`
	Quantity   float64   `json:"quantity" gorm:"not null"`
	ExpiryDate time.Time `json:"expiry_date" gorm:"not null;index;index:idx_lot_product_expiry,priority:2"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (l *InventoryLot) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// ProductStockSummary is the per-product aggregation over all inventory lots.
type ProductStockSummary struct {
	ProductID      string    `json:"product_id"`
	ProductName    string    `json:"product_name"`
	Category       string    `json:"category"`
	Unit           string    `json:"unit"`
	TotalQuantity  float64   `json:"total_quantity"`
	LotCount       int64     `json:"lot_count"`
	EarliestExpiry time.Time `json:"earliest_expiry"`
	LatestExpiry   time.Time `json:"latest_expiry"`
}
