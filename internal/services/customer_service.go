package services

import (
	"produce_manager/internal/apperrors"
	"produce_manager/internal/models"
	"produce_manager/internal/repository"
)

// CustomerUpdate is a partial update; nil fields are left untouched.
type CustomerUpdate struct {
	Name    *string
	Address *models.Address
	Phone   *string
}

type CustomerService interface {
	CreateCustomer(customer *models.Customer) error
	GetCustomer(id string) (*models.Customer, error)
	GetAllCustomers() ([]models.Customer, error)
	GetCustomerOrders(id string) ([]models.Order, error)
	UpdateCustomer(id string, update *CustomerUpdate) (*models.Customer, error)
	DeleteCustomer(id string) error
}

type customerService struct {
	customerRepo repository.CustomerRepository
	orderRepo    repository.OrderRepository
}

func NewCustomerService(customerRepo repository.CustomerRepository, orderRepo repository.OrderRepository) CustomerService {
	return &customerService{customerRepo: customerRepo, orderRepo: orderRepo}
}

// CreateCustomer persists a new customer; the phone number must not be in use
// by any existing customer.
func (s *customerService) CreateCustomer(customer *models.Customer) error {
	existing, err := s.customerRepo.GetByPhone(customer.Phone)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperrors.Conflictf("phone number already in use: %s", customer.Phone)
	}
	return s.customerRepo.Create(customer)
}

func (s *customerService) GetCustomer(id string) (*models.Customer, error) {
	return s.getExisting(id)
}

func (s *customerService) GetAllCustomers() ([]models.Customer, error) {
	return s.customerRepo.GetAll()
}

func (s *customerService) GetCustomerOrders(id string) ([]models.Order, error) {
	if _, err := s.getExisting(id); err != nil {
		return nil, err
	}
	return s.orderRepo.GetByCustomerID(id)
}

// UpdateCustomer applies a partial update; a changed phone number is
// re-checked for uniqueness against other customers.
func (s *customerService) UpdateCustomer(id string, update *CustomerUpdate) (*models.Customer, error) {
	customer, err := s.getExisting(id)
	if err != nil {
		return nil, err
	}

	if update.Phone != nil && *update.Phone != customer.Phone {
		existing, err := s.customerRepo.GetByPhone(*update.Phone)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != id {
			return nil, apperrors.Conflictf("phone number already in use: %s", *update.Phone)
		}
		customer.Phone = *update.Phone
	}
	if update.Name != nil {
		customer.Name = *update.Name
	}
	if update.Address != nil {
		customer.Address = *update.Address
	}

	if err := s.customerRepo.Update(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// DeleteCustomer removes a customer, blocked while any order still references
// them.
func (s *customerService) DeleteCustomer(id string) error {
	if _, err := s.getExisting(id); err != nil {
		return err
	}
	hasOrders, err := s.orderRepo.ExistsForCustomer(id)
	if err != nil {
		return err
	}
	if hasOrders {
		return apperrors.InvalidStatef("cannot delete customer with existing orders")
	}
	return s.customerRepo.Delete(id)
}

func (s *customerService) getExisting(id string) (*models.Customer, error) {
	customer, err := s.customerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperrors.NotFoundf("customer not found: %s", id)
	}
	return customer, nil
}
