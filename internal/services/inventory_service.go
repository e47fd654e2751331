package services

import (
	"produce_manager/internal/apperrors"
	"produce_manager/internal/models"
	"produce_manager/internal/repository"
	"time"
)

// InventoryUpdate is a partial update; nil fields are left untouched.
type InventoryUpdate struct {
	ProductID  *string
	Quantity   *float64
	ExpiryDate *time.Time
}

type InventoryService interface {
	CreateLot(lot *models.InventoryLot) error
	GetLot(id string) (*models.InventoryLot, error)
	GetAllLots() ([]models.InventoryLot, error)
	GetLotsByProduct(productID string) ([]models.InventoryLot, error)
	ExpiringSoon() ([]models.InventoryLot, error)
	Summary() ([]models.ProductStockSummary, error)
	UpdateLot(id string, update *InventoryUpdate) (*models.InventoryLot, error)
	DeleteLot(id string) error
}

type inventoryService struct {
	inventoryRepo repository.InventoryRepository
	productRepo   repository.ProductRepository
	windowDays    int
	nowFunc       func() time.Time
}

func NewInventoryService(inventoryRepo repository.InventoryRepository, productRepo repository.ProductRepository, windowDays int) InventoryService {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
		productRepo:   productRepo,
		windowDays:    windowDays,
		nowFunc:       time.Now,
	}
}

// CreateLot persists a stock lot; the referenced product must exist.
func (s *inventoryService) CreateLot(lot *models.InventoryLot) error {
	if lot.Quantity <= 0 {
		return apperrors.Validationf("quantity must be a positive number")
	}
	if lot.ExpiryDate.IsZero() {
		return apperrors.Validationf("expiry_date is required")
	}
	if err := s.requireProduct(lot.ProductID); err != nil {
		return err
	}
	return s.inventoryRepo.Create(lot)
}

func (s *inventoryService) GetLot(id string) (*models.InventoryLot, error) {
	return s.getExisting(id)
}

func (s *inventoryService) GetAllLots() ([]models.InventoryLot, error) {
	return s.inventoryRepo.GetAll()
}

func (s *inventoryService) GetLotsByProduct(productID string) ([]models.InventoryLot, error) {
	if err := s.requireProduct(productID); err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetByProductID(productID)
}

// ExpiringSoon lists lots expiring within the configured window from now.
func (s *inventoryService) ExpiringSoon() ([]models.InventoryLot, error) {
	now := s.nowFunc()
	return s.inventoryRepo.GetExpiringBetween(now, now.AddDate(0, 0, s.windowDays))
}

func (s *inventoryService) Summary() ([]models.ProductStockSummary, error) {
	return s.inventoryRepo.Summary()
}

// UpdateLot applies a partial update; a changed product reference must point
// at an existing product.
func (s *inventoryService) UpdateLot(id string, update *InventoryUpdate) (*models.InventoryLot, error) {
	lot, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}

	if update.ProductID != nil && *update.ProductID != lot.ProductID {
		if err := s.requireProduct(*update.ProductID); err != nil {
			return nil, err
		}
		lot.ProductID = *update.ProductID
		lot.Product = nil
	}
	if update.Quantity != nil {
		if *update.Quantity <= 0 {
			return nil, apperrors.Validationf("quantity must be a positive number")
		}
		lot.Quantity = *update.Quantity
	}
	if update.ExpiryDate != nil {
		if update.ExpiryDate.IsZero() {
			return nil, apperrors.Validationf("expiry_date must not be empty")
		}
		lot.ExpiryDate = *update.ExpiryDate
	}

	if err := s.inventoryRepo.Update(lot); err != nil {
		return nil, err
	}
	return lot, nil
}

func (s *inventoryService) DeleteLot(id string) error {
	if _, err := s.getExisting(id); err != nil {
		return err
	}
	return s.inventoryRepo.Delete(id)
}

func (s *inventoryService) requireProduct(productID string) error {
	product, err := s.productRepo.GetByID(productID)
	if err != nil {
		return err
	}
	if product == nil {
		return apperrors.NotFoundf("product not found: %s", productID)
	}
	return nil
}

func (s *inventoryService) getExisting(id string) (*models.InventoryLot, error) {
	lot, err := s.inventoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if lot == nil {
		return nil, apperrors.NotFoundf("inventory lot not found: %s", id)
	}
	return lot, nil
}
