package repository

import (
	"fmt"
	"sync"
	"time"

	"github.com/paatih-qee/langspeed-motor/internal/domain"
)

// MemoryStore is an in-memory implementation of the three repository
// interfaces, used as the test substrate. One write lock per mutating
// call gives it the same atomicity the postgres repositories get from
// a transaction: CreateOrder validates every product line before it
// touches any state, so a missing product aborts with nothing written.
type MemoryStore struct {
	mu          sync.RWMutex
	nextOrderID int
	products    map[string]domain.Product
	services    map[string]domain.Service
	orders      map[int]domain.Order

	// insertion order, for newest-first listings
	productIDs []string
	serviceIDs []string
	orderIDs   []int
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextOrderID: 1,
		products:    make(map[string]domain.Product),
		services:    make(map[string]domain.Service),
		orders:      make(map[int]domain.Order),
	}
}

var (
	_ domain.ProductRepository = (*MemoryStore)(nil)
	_ domain.ServiceRepository = (*MemoryStore)(nil)
	_ domain.OrderRepository   = (*MemoryStore)(nil)
)

func (m *MemoryStore) CreateProduct(product *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[product.ProductID]; ok {
		return nil, fmt.Errorf("product with id %s already exists", product.ProductID)
	}
	product.CreatedAt = time.Now().UTC()
	m.products[product.ProductID] = *product
	m.productIDs = append(m.productIDs, product.ProductID)
	return product, nil
}

func (m *MemoryStore) GetProductByID(productID string) (*domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.products[productID]
	if !ok {
		return nil, fmt.Errorf("product with id %s not found", productID)
	}
	cp := p
	return &cp, nil
}

func (m *MemoryStore) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.products[product.ProductID]
	if !ok {
		return nil, fmt.Errorf("product with id %s not found for update", product.ProductID)
	}
	product.CreatedAt = existing.CreatedAt
	m.products[product.ProductID] = *product
	cp := *product
	return &cp, nil
}

func (m *MemoryStore) DeleteProduct(productID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.products[productID]; !ok {
		return fmt.Errorf("product with id %s not found for deletion", productID)
	}
	delete(m.products, productID)
	for i, id := range m.productIDs {
		if id == productID {
			m.productIDs = append(m.productIDs[:i], m.productIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) ListProducts() ([]domain.Product, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Product, 0, len(m.productIDs))
	for i := len(m.productIDs) - 1; i >= 0; i-- {
		out = append(out, m.products[m.productIDs[i]])
	}
	return out, nil
}

func (m *MemoryStore) CreateService(service *domain.Service) (*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[service.ServiceID]; ok {
		return nil, fmt.Errorf("service with id %s already exists", service.ServiceID)
	}
	service.CreatedAt = time.Now().UTC()
	m.services[service.ServiceID] = *service
	m.serviceIDs = append(m.serviceIDs, service.ServiceID)
	return service, nil
}

func (m *MemoryStore) GetServiceByID(serviceID string) (*domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.services[serviceID]
	if !ok {
		return nil, fmt.Errorf("service with id %s not found", serviceID)
	}
	cp := s
	return &cp, nil
}

func (m *MemoryStore) UpdateService(service *domain.Service) (*domain.Service, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.services[service.ServiceID]
	if !ok {
		return nil, fmt.Errorf("service with id %s not found for update", service.ServiceID)
	}
	service.CreatedAt = existing.CreatedAt
	m.services[service.ServiceID] = *service
	cp := *service
	return &cp, nil
}

func (m *MemoryStore) DeleteService(serviceID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.services[serviceID]; !ok {
		return fmt.Errorf("service with id %s not found for deletion", serviceID)
	}
	delete(m.services, serviceID)
	for i, id := range m.serviceIDs {
		if id == serviceID {
			m.serviceIDs = append(m.serviceIDs[:i], m.serviceIDs[i+1:]...)
			break
		}
	}
	return nil
}

func (m *MemoryStore) ListServices() ([]domain.Service, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Service, 0, len(m.serviceIDs))
	for i := len(m.serviceIDs) - 1; i >= 0; i-- {
		out = append(out, m.services[m.serviceIDs[i]])
	}
	return out, nil
}

func (m *MemoryStore) CreateOrder(order *domain.Order) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	// validate before mutating anything
	for _, line := range order.Lines {
		if line.ItemKind != domain.ItemKindProduct {
			continue
		}
		if _, ok := m.products[line.ItemID]; !ok {
			return nil, fmt.Errorf("product with id %s not found", line.ItemID)
		}
	}

	for _, line := range order.Lines {
		if line.ItemKind != domain.ItemKindProduct {
			continue
		}
		p := m.products[line.ItemID]
		p.Stock -= line.Quantity
		if p.Stock < 0 {
			p.Stock = 0
		}
		m.products[line.ItemID] = p
	}

	order.ID = m.nextOrderID
	m.nextOrderID++
	order.CreatedAt = time.Now().UTC()
	stored := *order
	stored.Lines = append([]domain.OrderLine(nil), order.Lines...)
	m.orders[order.ID] = stored
	m.orderIDs = append(m.orderIDs, order.ID)
	return order, nil
}

func (m *MemoryStore) GetOrderByID(id int) (*domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with id %d not found", id)
	}
	cp := o
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &cp, nil
}

func (m *MemoryStore) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, fmt.Errorf("order with id %d not found for update", id)
	}
	o.Status = status
	m.orders[id] = o
	cp := o
	cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
	return &cp, nil
}

func (m *MemoryStore) ListOrders(status domain.OrderStatus) ([]domain.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Order, 0, len(m.orderIDs))
	for i := len(m.orderIDs) - 1; i >= 0; i-- {
		o := m.orders[m.orderIDs[i]]
		if status != "" && o.Status != status {
			continue
		}
		cp := o
		cp.Lines = append([]domain.OrderLine(nil), o.Lines...)
		out = append(out, cp)
	}
	return out, nil
}
