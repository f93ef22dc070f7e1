package usecase

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paatih-qee/langspeed-motor/internal/domain"

	"github.com/sirupsen/logrus"
)

// OrderLineInput is one requested line of a new order: a reference into
// the catalog plus the quantity and the price quoted to the customer.
type OrderLineInput struct {
	ItemID   string
	ItemName string
	ItemKind domain.ItemKind
	Quantity int
	Price    float64
}

// CreateOrderInput carries the customer/vehicle fields and the requested
// lines for one workshop visit.
type CreateOrderInput struct {
	CustomerName  string
	CustomerPhone string
	VehicleType   string
	PlateNumber   string
	Complaint     string
	Lines         []OrderLineInput
}

type OrderUseCase interface {
	CreateOrder(input CreateOrderInput) (*domain.Order, error)
	GetOrderByID(id int) (*domain.Order, error)
	UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error)
	ListOrders(status domain.OrderStatus) ([]domain.Order, error)
}

type orderUseCase struct {
	orderRepo domain.OrderRepository
	log       *logrus.Logger
}

func NewOrderUseCase(repo domain.OrderRepository, logger *logrus.Logger) OrderUseCase {
	return &orderUseCase{
		orderRepo: repo,
		log:       logger,
	}
}

// CreateOrder validates the request, computes line subtotals and the order
// total, mints a unique order number and hands the assembled order to the
// repository, which persists header, lines and stock decrements atomically.
//
// Oversell is floored, not rejected: ordering quantity 5 of a product with
// stock 2 leaves stock at 0. The front desk checks availability before
// submitting; the ledger just refuses to go negative.
func (uc *orderUseCase) CreateOrder(input CreateOrderInput) (*domain.Order, error) {
	if err := validateCustomerFields(input); err != nil {
		uc.log.Warnf("Use Case: Order validation failed: %v", err)
		return nil, err
	}
	if len(input.Lines) == 0 {
		uc.log.Warn("Use Case: Attempted to create order with no lines")
		return nil, errors.New("order must contain at least one line")
	}
	for i, line := range input.Lines {
		if line.ItemID == "" {
			return nil, fmt.Errorf("line %d: item ID cannot be empty", i)
		}
		if strings.TrimSpace(line.ItemName) == "" {
			return nil, fmt.Errorf("line %d (item %s): item name cannot be empty", i, line.ItemID)
		}
		if !domain.IsValidItemKind(line.ItemKind) {
			return nil, fmt.Errorf("line %d (item %s): invalid item kind %q", i, line.ItemID, line.ItemKind)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("line %d (item %s): quantity must be positive", i, line.ItemID)
		}
		if line.Price < 0 {
			return nil, fmt.Errorf("line %d (item %s): price cannot be negative", i, line.ItemID)
		}
	}

	order := &domain.Order{
		OrderNumber:   newOrderNumber(),
		CustomerName:  strings.TrimSpace(input.CustomerName),
		CustomerPhone: strings.TrimSpace(input.CustomerPhone),
		VehicleType:   strings.TrimSpace(input.VehicleType),
		PlateNumber:   strings.TrimSpace(input.PlateNumber),
		Complaint:     strings.TrimSpace(input.Complaint),
		Status:        domain.StatusInProgress,
		Lines:         make([]domain.OrderLine, 0, len(input.Lines)),
	}

	var total float64
	for _, line := range input.Lines {
		subtotal := float64(line.Quantity) * line.Price
		total += subtotal
		order.Lines = append(order.Lines, domain.OrderLine{
			ItemID:   line.ItemID,
			ItemName: strings.TrimSpace(line.ItemName),
			ItemKind: line.ItemKind,
			Quantity: line.Quantity,
			Price:    line.Price,
			Subtotal: subtotal,
		})
	}
	order.TotalAmount = total

	uc.log.Infof("Use Case: Creating order %s for customer '%s' (%d lines, total %.2f)",
		order.OrderNumber, order.CustomerName, len(order.Lines), order.TotalAmount)

	createdOrder, err := uc.orderRepo.CreateOrder(order)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to create order %s: %v", order.OrderNumber, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order created successfully with ID %d (%s)", createdOrder.ID, createdOrder.OrderNumber)
	return createdOrder, nil
}

func validateCustomerFields(input CreateOrderInput) error {
	if strings.TrimSpace(input.CustomerName) == "" {
		return errors.New("customer name cannot be empty")
	}
	if strings.TrimSpace(input.CustomerPhone) == "" {
		return errors.New("customer phone cannot be empty")
	}
	if strings.TrimSpace(input.VehicleType) == "" {
		return errors.New("vehicle type cannot be empty")
	}
	if strings.TrimSpace(input.PlateNumber) == "" {
		return errors.New("plate number cannot be empty")
	}
	if strings.TrimSpace(input.Complaint) == "" {
		return errors.New("complaint cannot be empty")
	}
	return nil
}

func (uc *orderUseCase) GetOrderByID(id int) (*domain.Order, error) {
	if id <= 0 {
		return nil, errors.New("invalid order ID")
	}
	order, err := uc.orderRepo.GetOrderByID(id)
	if err != nil {
		uc.log.Warnf("Use Case: Repository failed to get order ID %d: %v", id, err)
		return nil, err
	}
	return order, nil
}

// UpdateOrderStatus permits both directions: the shop reopens a completed
// order when a repair comes back, so Completed -> InProgress is legal.
// Only the status value itself is validated.
func (uc *orderUseCase) UpdateOrderStatus(id int, status domain.OrderStatus) (*domain.Order, error) {
	if id <= 0 {
		return nil, errors.New("invalid order ID for status update")
	}
	if !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid target order status: %s", status)
	}

	uc.log.Infof("Use Case: Attempting to update status for order ID %d to '%s'", id, status)
	updatedOrder, err := uc.orderRepo.UpdateOrderStatus(id, status)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to update status for order ID %d: %v", id, err)
		return nil, err
	}

	uc.log.Infof("Use Case: Order status updated successfully for ID %d to %s", updatedOrder.ID, updatedOrder.Status)
	return updatedOrder, nil
}

func (uc *orderUseCase) ListOrders(status domain.OrderStatus) ([]domain.Order, error) {
	if status != "" && !domain.IsValidStatus(status) {
		return nil, fmt.Errorf("invalid order status filter: %s", status)
	}
	orders, err := uc.orderRepo.ListOrders(status)
	if err != nil {
		uc.log.Errorf("Use Case: Repository failed to list orders: %v", err)
		return nil, fmt.Errorf("could not retrieve orders: %w", err)
	}
	return orders, nil
}
