package domain

import "time"

// Product is a spare part kept in stock. ProductID is the shop-assigned
// natural key ("P-<millis>"), generated by the usecase layer on creation.
type Product struct {
	ProductID string    `json:"product_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	CreatedAt time.Time `json:"created_at"`
}

// Service is a workshop job (tune-up, oil change, ...). No stock concept.
type Service struct {
	ServiceID string    `json:"service_id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	CreatedAt time.Time `json:"created_at"`
}

type ProductRepository interface {
	CreateProduct(product *Product) (*Product, error)
	GetProductByID(productID string) (*Product, error)
	UpdateProduct(product *Product) (*Product, error)
	DeleteProduct(productID string) error
	ListProducts() ([]Product, error)
}

type ServiceRepository interface {
	CreateService(service *Service) (*Service, error)
	GetServiceByID(serviceID string) (*Service, error)
	UpdateService(service *Service) (*Service, error)
	DeleteService(serviceID string) error
	ListServices() ([]Service, error)
}
