package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/paatih-qee/langspeed-motor/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresProductRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresProductRepository(db *sql.DB, logger *logrus.Logger) domain.ProductRepository {
	return &postgresProductRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresProductRepository) CreateProduct(product *domain.Product) (*domain.Product, error) {
	query := `
        INSERT INTO products (product_id, name, price, stock)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at`

	err := r.db.QueryRow(query, product.ProductID, product.Name, product.Price, product.Stock).Scan(&product.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to create duplicate product ID: %s", product.ProductID)
			return nil, fmt.Errorf("product with id %s already exists", product.ProductID)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for product '%s': %s", product.Name, pqErr.Message)
			return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Failed to create product '%s': %v", product.Name, err)
		return nil, fmt.Errorf("could not create product: %w", err)
	}
	r.log.Infof("Product created successfully with ID: %s, Name: %s", product.ProductID, product.Name)
	return product, nil
}

func (r *postgresProductRepository) GetProductByID(productID string) (*domain.Product, error) {
	query := `
        SELECT product_id, name, price, stock, created_at
        FROM products
        WHERE product_id = $1`
	product := &domain.Product{}

	err := r.db.QueryRow(query, productID).Scan(
		&product.ProductID,
		&product.Name,
		&product.Price,
		&product.Stock,
		&product.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Product with ID %s not found", productID)
			return nil, fmt.Errorf("product with id %s not found", productID)
		}
		r.log.Errorf("Failed to get product by ID %s: %v", productID, err)
		return nil, fmt.Errorf("could not get product by id: %w", err)
	}

	return product, nil
}

func (r *postgresProductRepository) UpdateProduct(product *domain.Product) (*domain.Product, error) {
	query := `
        UPDATE products
        SET name = $1, price = $2, stock = $3
        WHERE product_id = $4`

	result, err := r.db.Exec(query, product.Name, product.Price, product.Stock, product.ProductID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for product update %s: %s", product.ProductID, pqErr.Message)
			return nil, fmt.Errorf("product data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Failed to update product %s: %v", product.ProductID, err)
		return nil, fmt.Errorf("could not update product: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after updating product %s: %v", product.ProductID, err)
		return nil, fmt.Errorf("could not confirm product update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Product with ID %s not found for update", product.ProductID)
		return nil, fmt.Errorf("product with id %s not found for update", product.ProductID)
	}

	r.log.Infof("Product updated successfully with ID: %s", product.ProductID)
	return r.GetProductByID(product.ProductID)
}

func (r *postgresProductRepository) DeleteProduct(productID string) error {
	query := `DELETE FROM products WHERE product_id = $1`
	result, err := r.db.Exec(query, productID)
	if err != nil {
		r.log.Errorf("Failed to delete product ID %s: %v", productID, err)
		return fmt.Errorf("could not delete product: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting product ID %s: %v", productID, err)
		return fmt.Errorf("could not confirm product deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent product ID %s", productID)
		return fmt.Errorf("product with id %s not found for deletion", productID)
	}
	r.log.Infof("Product deleted successfully with ID: %s", productID)
	return nil
}

func (r *postgresProductRepository) ListProducts() ([]domain.Product, error) {
	query := `
        SELECT product_id, name, price, stock, created_at
        FROM products
        ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list products: %v", err)
		return nil, fmt.Errorf("could not list products: %w", err)
	}
	defer rows.Close()

	products := []domain.Product{}
	for rows.Next() {
		var product domain.Product
		if err := rows.Scan(&product.ProductID, &product.Name, &product.Price, &product.Stock, &product.CreatedAt); err != nil {
			r.log.Errorf("Failed to scan product row: %v", err)
			return nil, fmt.Errorf("error scanning product data: %w", err)
		}
		products = append(products, product)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during products list iteration: %v", err)
		return nil, fmt.Errorf("error iterating products: %w", err)
	}
	r.log.Infof("Retrieved %d products", len(products))
	return products, nil
}
