package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paatih-qee/langspeed-motor/internal/domain"

	"github.com/sirupsen/logrus"
)

type ServiceUseCase interface {
	CreateService(name string, price float64) (*domain.Service, error)
	GetServiceByID(serviceID string) (*domain.Service, error)
	UpdateService(serviceID, name string, price float64) (*domain.Service, error)
	DeleteService(serviceID string) error
	ListServices() ([]domain.Service, error)
}

type serviceUseCase struct {
	serviceRepo domain.ServiceRepository
	log         *logrus.Logger
}

func NewServiceUseCase(repo domain.ServiceRepository, logger *logrus.Logger) ServiceUseCase {
	return &serviceUseCase{
		serviceRepo: repo,
		log:         logger,
	}
}

func (uc *serviceUseCase) CreateService(name string, price float64) (*domain.Service, error) {
	if err := validateCatalogFields(name, price, 0); err != nil {
		uc.log.Warnf("Use Case: Service validation failed for '%s': %v", name, err)
		return nil, fmt.Errorf("invalid service data: %w", err)
	}

	service := &domain.Service{
		ServiceID: newServiceID(),
		Name:      strings.TrimSpace(name),
		Price:     price,
	}

	uc.log.Infof("Use Case: Attempting to create service '%s' with ID %s", service.Name, service.ServiceID)
	createdService, err := uc.serviceRepo.CreateService(service)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create service '%s': %v", service.Name, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Service '%s' created successfully with ID %s", createdService.Name, createdService.ServiceID)
	return createdService, nil
}

func (uc *serviceUseCase) GetServiceByID(serviceID string) (*domain.Service, error) {
	if serviceID == "" {
		return nil, errors.New("invalid service ID")
	}
	service, err := uc.serviceRepo.GetServiceByID(serviceID)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get service %s: %v", serviceID, err)
		return nil, err
	}
	return service, nil
}

func (uc *serviceUseCase) UpdateService(serviceID, name string, price float64) (*domain.Service, error) {
	if serviceID == "" {
		return nil, errors.New("invalid service ID for update")
	}
	if err := validateCatalogFields(name, price, 0); err != nil {
		uc.log.Warnf("Use Case: Service validation failed for update %s: %v", serviceID, err)
		return nil, fmt.Errorf("invalid service data: %w", err)
	}

	service := &domain.Service{
		ServiceID: serviceID,
		Name:      strings.TrimSpace(name),
		Price:     price,
	}

	uc.log.Infof("Use Case: Attempting to update service %s", serviceID)
	updatedService, err := uc.serviceRepo.UpdateService(service)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update service %s: %v", serviceID, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Service updated successfully for ID %s", updatedService.ServiceID)
	return updatedService, nil
}

func (uc *serviceUseCase) DeleteService(serviceID string) error {
	if serviceID == "" {
		return errors.New("invalid service ID for delete")
	}
	uc.log.Infof("Use Case: Attempting to delete service %s", serviceID)
	if err := uc.serviceRepo.DeleteService(serviceID); err != nil {
		uc.log.Warnf("Use Case: Repository failed to delete service %s: %v", serviceID, err)
		return err
	}
	uc.log.Infof("Use Case: Service deleted successfully for ID %s", serviceID)
	return nil
}

func (uc *serviceUseCase) ListServices() ([]domain.Service, error) {
	services, err := uc.serviceRepo.ListServices()
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list services: %v", err)
		return nil, fmt.Errorf("could not retrieve services: %w", err)
	}
	return services, nil
}
