package repository

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/paatih-qee/langspeed-motor/internal/domain"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
)

type postgresServiceRepository struct {
	db  *sql.DB
	log *logrus.Logger
}

func NewPostgresServiceRepository(db *sql.DB, logger *logrus.Logger) domain.ServiceRepository {
	return &postgresServiceRepository{
		db:  db,
		log: logger,
	}
}

func (r *postgresServiceRepository) CreateService(service *domain.Service) (*domain.Service, error) {
	query := `
        INSERT INTO services (service_id, name, price)
        VALUES ($1, $2, $3)
        RETURNING created_at`

	err := r.db.QueryRow(query, service.ServiceID, service.Name, service.Price).Scan(&service.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			r.log.Warnf("Attempted to create duplicate service ID: %s", service.ServiceID)
			return nil, fmt.Errorf("service with id %s already exists", service.ServiceID)
		}
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for service '%s': %s", service.Name, pqErr.Message)
			return nil, fmt.Errorf("service data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Failed to create service '%s': %v", service.Name, err)
		return nil, fmt.Errorf("could not create service: %w", err)
	}
	r.log.Infof("Service created successfully with ID: %s, Name: %s", service.ServiceID, service.Name)
	return service, nil
}

func (r *postgresServiceRepository) GetServiceByID(serviceID string) (*domain.Service, error) {
	query := `
        SELECT service_id, name, price, created_at
        FROM services
        WHERE service_id = $1`
	service := &domain.Service{}

	err := r.db.QueryRow(query, serviceID).Scan(
		&service.ServiceID,
		&service.Name,
		&service.Price,
		&service.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.Warnf("Service with ID %s not found", serviceID)
			return nil, fmt.Errorf("service with id %s not found", serviceID)
		}
		r.log.Errorf("Failed to get service by ID %s: %v", serviceID, err)
		return nil, fmt.Errorf("could not get service by id: %w", err)
	}

	return service, nil
}

func (r *postgresServiceRepository) UpdateService(service *domain.Service) (*domain.Service, error) {
	query := `
        UPDATE services
        SET name = $1, price = $2
        WHERE service_id = $3`

	result, err := r.db.Exec(query, service.Name, service.Price, service.ServiceID)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23514" {
			r.log.Warnf("Check constraint violation for service update %s: %s", service.ServiceID, pqErr.Message)
			return nil, fmt.Errorf("service data constraint violation: %s", pqErr.Message)
		}
		r.log.Errorf("Failed to update service %s: %v", service.ServiceID, err)
		return nil, fmt.Errorf("could not update service: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after updating service %s: %v", service.ServiceID, err)
		return nil, fmt.Errorf("could not confirm service update: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Service with ID %s not found for update", service.ServiceID)
		return nil, fmt.Errorf("service with id %s not found for update", service.ServiceID)
	}

	r.log.Infof("Service updated successfully with ID: %s", service.ServiceID)
	return r.GetServiceByID(service.ServiceID)
}

func (r *postgresServiceRepository) DeleteService(serviceID string) error {
	query := `DELETE FROM services WHERE service_id = $1`
	result, err := r.db.Exec(query, serviceID)
	if err != nil {
		r.log.Errorf("Failed to delete service ID %s: %v", serviceID, err)
		return fmt.Errorf("could not delete service: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		r.log.Errorf("Failed to get rows affected after deleting service ID %s: %v", serviceID, err)
		return fmt.Errorf("could not confirm service deletion: %w", err)
	}
	if rowsAffected == 0 {
		r.log.Warnf("Attempted to delete non-existent service ID %s", serviceID)
		return fmt.Errorf("service with id %s not found for deletion", serviceID)
	}
	r.log.Infof("Service deleted successfully with ID: %s", serviceID)
	return nil
}

func (r *postgresServiceRepository) ListServices() ([]domain.Service, error) {
	query := `
        SELECT service_id, name, price, created_at
        FROM services
        ORDER BY created_at DESC`
	rows, err := r.db.Query(query)
	if err != nil {
		r.log.Errorf("Failed to list services: %v", err)
		return nil, fmt.Errorf("could not list services: %w", err)
	}
	defer rows.Close()

	services := []domain.Service{}
	for rows.Next() {
		var service domain.Service
		if err := rows.Scan(&service.ServiceID, &service.Name, &service.Price, &service.CreatedAt); err != nil {
			r.log.Errorf("Failed to scan service row: %v", err)
			return nil, fmt.Errorf("error scanning service data: %w", err)
		}
		services = append(services, service)
	}
	if err = rows.Err(); err != nil {
		r.log.Errorf("Error during services list iteration: %v", err)
		return nil, fmt.Errorf("error iterating services: %w", err)
	}
	r.log.Infof("Retrieved %d services", len(services))
	return services, nil
}
