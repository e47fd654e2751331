package services

import (
	"produce_manager/internal/models"
	"produce_manager/internal/repository"
	"sort"
	"time"

	"github.com/google/uuid"
)

// In-memory repository fakes. They mirror the gorm implementations closely
// enough for service tests: ids assigned on create, (nil, nil) on missing
// lookups, compare-and-swap on order revision.

type fakeCustomerRepo struct {
	customers map[string]models.Customer
}

func newFakeCustomerRepo() *fakeCustomerRepo {
	return &fakeCustomerRepo{customers: map[string]models.Customer{}}
}

func (f *fakeCustomerRepo) Create(c *models.Customer) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	f.customers[c.ID] = *c
	return nil
}

func (f *fakeCustomerRepo) GetByID(id string) (*models.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (f *fakeCustomerRepo) GetByPhone(phone string) (*models.Customer, error) {
	for _, c := range f.customers {
		if c.Phone == phone {
			c := c
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCustomerRepo) GetAll() ([]models.Customer, error) {
	out := make([]models.Customer, 0, len(f.customers))
	for _, c := range f.customers {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeCustomerRepo) Update(c *models.Customer) error {
	f.customers[c.ID] = *c
	return nil
}

func (f *fakeCustomerRepo) Delete(id string) error {
	delete(f.customers, id)
	return nil
}

type fakeProductRepo struct {
	products map[string]models.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]models.Product{}}
}

func (f *fakeProductRepo) Create(p *models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (f *fakeProductRepo) GetByName(name string) (*models.Product, error) {
	for _, p := range f.products {
		if p.ItemName == name {
			p := p
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) GetAll(category string) ([]models.Product, error) {
	out := make([]models.Product, 0, len(f.products))
	for _, p := range f.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}

func (f *fakeProductRepo) Update(p *models.Product) error {
	f.products[p.ID] = *p
	return nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

type fakeInventoryRepo struct {
	lots     map[string]models.InventoryLot
	products *fakeProductRepo
}

func newFakeInventoryRepo(products *fakeProductRepo) *fakeInventoryRepo {
	return &fakeInventoryRepo{lots: map[string]models.InventoryLot{}, products: products}
}

func (f *fakeInventoryRepo) Create(l *models.InventoryLot) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	f.lots[l.ID] = *l
	return nil
}

func (f *fakeInventoryRepo) GetByID(id string) (*models.InventoryLot, error) {
	l, ok := f.lots[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

func (f *fakeInventoryRepo) GetAll() ([]models.InventoryLot, error) {
	out := make([]models.InventoryLot, 0, len(f.lots))
	for _, l := range f.lots {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (f *fakeInventoryRepo) GetByProductID(productID string) ([]models.InventoryLot, error) {
	var out []models.InventoryLot
	for _, l := range f.lots {
		if l.ProductID == productID {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (f *fakeInventoryRepo) GetExpiringBetween(from, to time.Time) ([]models.InventoryLot, error) {
	var out []models.InventoryLot
	for _, l := range f.lots {
		if !l.ExpiryDate.Before(from) && !l.ExpiryDate.After(to) {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExpiryDate.Before(out[j].ExpiryDate) })
	return out, nil
}

func (f *fakeInventoryRepo) Summary() ([]models.ProductStockSummary, error) {
	byProduct := map[string]*models.ProductStockSummary{}
	for _, l := range f.lots {
		s, ok := byProduct[l.ProductID]
		if !ok {
			s = &models.ProductStockSummary{
				ProductID:      l.ProductID,
				EarliestExpiry: l.ExpiryDate,
				LatestExpiry:   l.ExpiryDate,
			}
			if p, _ := f.products.GetByID(l.ProductID); p != nil {
				s.ProductName = p.ItemName
				s.Category = p.Category
				s.Unit = p.Unit
			}
			byProduct[l.ProductID] = s
		}
		s.TotalQuantity += l.Quantity
		s.LotCount++
		if l.ExpiryDate.Before(s.EarliestExpiry) {
			s.EarliestExpiry = l.ExpiryDate
		}
		if l.ExpiryDate.After(s.LatestExpiry) {
			s.LatestExpiry = l.ExpiryDate
		}
	}
	out := make([]models.ProductStockSummary, 0, len(byProduct))
	for _, s := range byProduct {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductName < out[j].ProductName })
	return out, nil
}

func (f *fakeInventoryRepo) ExistsForProduct(productID string) (bool, error) {
	for _, l := range f.lots {
		if l.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeInventoryRepo) Update(l *models.InventoryLot) error {
	f.lots[l.ID] = *l
	return nil
}

func (f *fakeInventoryRepo) Delete(id string) error {
	delete(f.lots, id)
	return nil
}

type fakeOrderRepo struct {
	orders map[string]models.Order
	// updateErr, when set, is returned by the next Update call.
	updateErr error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: map[string]models.Order{}}
}

func (f *fakeOrderRepo) Create(o *models.Order) error {
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}
	f.orders[o.ID] = copyOrder(*o)
	return nil
}

func (f *fakeOrderRepo) GetByID(id string) (*models.Order, error) {
	o, ok := f.orders[id]
	if !ok {
		return nil, nil
	}
	o = copyOrder(o)
	return &o, nil
}

func (f *fakeOrderRepo) GetAll(startDate, endDate *time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if startDate != nil && endDate != nil {
			if o.OrderDate.Before(*startDate) || o.OrderDate.After(*endDate) {
				continue
			}
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (f *fakeOrderRepo) GetByStatus(status models.OrderStatus) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.Progress.Status == status {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryDate.Before(out[j].DeliveryDate) })
	return out, nil
}

func (f *fakeOrderRepo) GetByCustomerID(customerID string) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].OrderDate.After(out[j].OrderDate) })
	return out, nil
}

func (f *fakeOrderRepo) GetDeliveriesBetween(from, to time.Time) ([]models.Order, error) {
	var out []models.Order
	for _, o := range f.orders {
		if !o.DeliveryDate.Before(from) && o.DeliveryDate.Before(to) {
			out = append(out, copyOrder(o))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DeliveryDate.Before(out[j].DeliveryDate) })
	return out, nil
}

func (f *fakeOrderRepo) ExistsForCustomer(customerID string) (bool, error) {
	for _, o := range f.orders {
		if o.CustomerID == customerID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) ExistsForProduct(productID string) (bool, error) {
	for _, o := range f.orders {
		for _, item := range o.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (f *fakeOrderRepo) Update(o *models.Order) error {
	if f.updateErr != nil {
		err := f.updateErr
		f.updateErr = nil
		return err
	}
	stored, ok := f.orders[o.ID]
	if !ok || stored.Revision != o.Revision {
		return repository.ErrRevisionMismatch
	}
	for i := range o.Items {
		if o.Items[i].ID == "" {
			o.Items[i].ID = uuid.NewString()
		}
		o.Items[i].OrderID = o.ID
	}
	o.Revision++
	f.orders[o.ID] = copyOrder(*o)
	return nil
}

func (f *fakeOrderRepo) Delete(id string) error {
	delete(f.orders, id)
	return nil
}

func copyOrder(o models.Order) models.Order {
	items := make([]models.OrderItem, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
