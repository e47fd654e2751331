package services

import (
	"produce_manager/internal/apperrors"
	"produce_manager/internal/models"
	"produce_manager/internal/repository"
)

// ProductUpdate is a partial update; nil fields are left untouched.
type ProductUpdate struct {
	ItemName            *string
	Category            *string
	Unit                *string
	DefaultPricePerUnit *float64
}

type ProductService interface {
	CreateProduct(product *models.Product) error
	GetProduct(id string) (*models.Product, error)
	GetAllProducts(category string) ([]models.Product, error)
	GetProductInventory(id string) ([]models.InventoryLot, error)
	UpdateProduct(id string, update *ProductUpdate) (*models.Product, error)
	DeleteProduct(id string) error
}

type productService struct {
	productRepo   repository.ProductRepository
	inventoryRepo repository.InventoryRepository
	orderRepo     repository.OrderRepository
}

func NewProductService(productRepo repository.ProductRepository, inventoryRepo repository.InventoryRepository, orderRepo repository.OrderRepository) ProductService {
	return &productService{productRepo: productRepo, inventoryRepo: inventoryRepo, orderRepo: orderRepo}
}

// CreateProduct persists a new product; the item name must be unique.
func (s *productService) CreateProduct(product *models.Product) error {
	existing, err := s.productRepo.GetByName(product.ItemName)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.Conflictf("product with this name already exists: %s", product.ItemName)
	}
	return s.productRepo.Create(product)
}

func (s *productService) GetProduct(id string) (*models.Product, error) {
	return s.getExisting(id)
}

func (s *productService) GetAllProducts(category string) ([]models.Product, error) {
	return s.productRepo.GetAll(category)
}

func (s *productService) GetProductInventory(id string) ([]models.InventoryLot, error) {
	if _, err := s.getExisting(id); err != nil {
		return nil, err
	}
	return s.inventoryRepo.GetByProductID(id)
}

// UpdateProduct applies a partial update; a changed item name is re-checked
// for uniqueness against other products.
func (s *productService) UpdateProduct(id string, update *ProductUpdate) (*models.Product, error) {
	product, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}

	if update.ItemName != nil && *update.ItemName != product.ItemName {
		existing, err := s.productRepo.GetByName(*update.ItemName)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.Conflictf("product with this name already exists: %s", *update.ItemName)
		}
		product.ItemName = *update.ItemName
	}
	if update.Category != nil {
		product.Category = *update.Category
	}
	if update.Unit != nil {
		product.Unit = *update.Unit
	}
	if update.DefaultPricePerUnit != nil {
		if *update.DefaultPricePerUnit < 0 {
			return nil, apperrors.Validationf("default_price_per_unit must be non-negative")
		}
		product.DefaultPricePerUnit = *update.DefaultPricePerUnit
	}

	if err := s.productRepo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct removes a product, blocked while any inventory lot or order
// line still references it.
func (s *productService) DeleteProduct(id string) error {
	if _, err := s.getExisting(id); err != nil {
		return err
	}

	hasInventory, err := s.inventoryRepo.ExistsForProduct(id)
	if err != nil {
		return err
	}
	if hasInventory {
		return apperrors.InvalidStatef("cannot delete product with existing inventory; remove the inventory lots first")
	}

	inOrders, err := s.orderRepo.ExistsForProduct(id)
	if err != nil {
		return err
	}
	if inOrders {
		return apperrors.InvalidStatef("cannot delete product that is used in orders")
	}

	return s.productRepo.Delete(id)
}

func (s *productService) getExisting(id string) (*models.Product, error) {
	product, err := s.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperrors.NotFoundf("product not found: %s", id)
	}
	return product, nil
}
