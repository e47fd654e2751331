package repository

import (
	"errors"
	"produce_manager/internal/models"
	"time"

	"gorm.io/gorm"
)

type InventoryRepository interface {
	Create(lot *models.InventoryLot) error
	GetByID(id string) (*models.InventoryLot, error)
	GetAll() ([]models.InventoryLot, error)
	GetByProductID(productID string) ([]models.InventoryLot, error)
	GetExpiringBetween(from, to time.Time) ([]models.InventoryLot, error)
	Summary() ([]models.ProductStockSummary, error)
	ExistsForProduct(productID string) (bool, error)
	Update(lot *models.InventoryLot) error
	Delete(id string) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(lot *models.InventoryLot) error {
	return r.db.Create(lot).Error
}

// GetByID returns (nil, nil) when no lot exists with the given id.
func (r *inventoryRepository) GetByID(id string) (*models.InventoryLot, error) {
	var lot models.InventoryLot
	err := r.db.Preload("Product").First(&lot, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &lot, nil
}

func (r *inventoryRepository) GetAll() ([]models.InventoryLot, error) {
	var lots []models.InventoryLot
	err := r.db.Preload("Product").Order("expiry_date").Find(&lots).Error
	return lots, err
}

func (r *inventoryRepository) GetByProductID(productID string) ([]models.InventoryLot, error) {
	var lots []models.InventoryLot
	err := r.db.Preload("Product").Where("product_id = ?", productID).Order("expiry_date").Find(&lots).Error
	return lots, err
}

func (r *inventoryRepository) GetExpiringBetween(from, to time.Time) ([]models.InventoryLot, error) {
	var lots []models.InventoryLot
	err := r.db.Preload("Product").
		Where("expiry_date >= ? AND expiry_date <= ?", from, to).
		Order("expiry_date").
		Find(&lots).Error
	return lots, err
}

// Summary aggregates lots per product: total quantity, lot count and the
// expiry range, joined with the product for display fields.
func (r *inventoryRepository) Summary() ([]models.ProductStockSummary, error) {
	var rows []models.ProductStockSummary
	err := r.db.Model(&models.InventoryLot{}).
		Select(`inventory_lots.product_id,
			products.item_name AS product_name,
			products.category,
			products.unit,
			SUM(inventory_lots.quantity) AS total_quantity,
			COUNT(*) AS lot_count,
			MIN(inventory_lots.expiry_date) AS earliest_expiry,
			MAX(inventory_lots.expiry_date) AS latest_expiry`).
		Joins("JOIN products ON products.id = inventory_lots.product_id").
		Group("inventory_lots.product_id, products.item_name, products.category, products.unit").
		Order("products.item_name").
		Scan(&rows).Error
	return rows, err
}

func (r *inventoryRepository) ExistsForProduct(productID string) (bool, error) {
	var count int64
	err := r.db.Model(&models.InventoryLot{}).Where("product_id = ?", productID).Count(&count).Error
	return count > 0, err
}

func (r *inventoryRepository) Update(lot *models.InventoryLot) error {
	return r.db.Save(lot).Error
}

func (r *inventoryRepository) Delete(id string) error {
	return r.db.Delete(&models.InventoryLot{}, "id = ?", id).Error
}
