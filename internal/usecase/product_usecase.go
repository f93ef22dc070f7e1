package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paatih-qee/langspeed-motor/internal/domain"

	"github.com/sirupsen/logrus"
)

type ProductUseCase interface {
	CreateProduct(name string, price float64, stock int) (*domain.Product, error)
	GetProductByID(productID string) (*domain.Product, error)
	UpdateProduct(productID, name string, price float64, stock int) (*domain.Product, error)
	DeleteProduct(productID string) error
	ListProducts() ([]domain.Product, error)
}

type productUseCase struct {
	productRepo domain.ProductRepository
	log         *logrus.Logger
}

func NewProductUseCase(repo domain.ProductRepository, logger *logrus.Logger) ProductUseCase {
	return &productUseCase{
		productRepo: repo,
		log:         logger,
	}
}

func validateCatalogFields(name string, price float64, stock int) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name cannot be empty")
	}
	if price < 0 {
		return errors.New("price cannot be negative")
	}
	if stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

func (uc *productUseCase) CreateProduct(name string, price float64, stock int) (*domain.Product, error) {
	if err := validateCatalogFields(name, price, stock); err != nil {
		uc.log.Warnf("Use Case: Product validation failed for '%s': %v", name, err)
		return nil, fmt.Errorf("invalid product data: %w", err)
	}

	product := &domain.Product{
		ProductID: newProductID(),
		Name:      strings.TrimSpace(name),
		Price:     price,
		Stock:     stock,
	}

	uc.log.Infof("Use Case: Attempting to create product '%s' with ID %s", product.Name, product.ProductID)
	createdProduct, err := uc.productRepo.CreateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create product '%s': %v", product.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product '%s' created successfully with ID %s", createdProduct.Name, createdProduct.ProductID)
	return createdProduct, nil
}

func (uc *productUseCase) GetProductByID(productID string) (*domain.Product, error) {
	if productID == "" {
		return nil, errors.New("invalid product ID")
	}
	product, err := uc.productRepo.GetProductByID(productID)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get product %s: %v", productID, err)
		return nil, err
	}
	return product, nil
}

func (uc *productUseCase) UpdateProduct(productID, name string, price float64, stock int) (*domain.Product, error) {
	if productID == "" {
		return nil, errors.New("invalid product ID for update")
	}
	if err := validateCatalogFields(name, price, stock); err != nil {
		uc.log.Warnf("Use Case: Product validation failed for update %s: %v", productID, err)
		return nil, fmt.Errorf("invalid product data: %w", err)
	}

	product := &domain.Product{
		ProductID: productID,
		Name:      strings.TrimSpace(name),
		Price:     price,
		Stock:     stock,
	}

	uc.log.Infof("Use Case: Attempting to update product %s", productID)
	updatedProduct, err := uc.productRepo.UpdateProduct(product)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update product %s: %v", productID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Product updated successfully for ID %s", updatedProduct.ProductID)
	return updatedProduct, nil
}

func (uc *productUseCase) DeleteProduct(productID string) error {
	if productID == "" {
		return errors.New("invalid product ID for delete")
	}
	uc.log.Infof("Use Case: Attempting to delete product %s", productID)
	if err := uc.productRepo.DeleteProduct(productID); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete product %s: %v", productID, err)
		return err
	}
	uc.log.Infof("Use Case: Product deleted successfully for ID %s", productID)
	return nil
}

func (uc *productUseCase) ListProducts() ([]domain.Product, error) {
	products, err := uc.productRepo.ListProducts()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list products: %v", err)
		return nil, fmt.Errorf("could not retrieve products: %w", err)
	}
	return products, nil
}
