package domain

import "time"

type OrderStatus string

const (
	StatusInProgress OrderStatus = "InProgress"
	StatusCompleted  OrderStatus = "Completed"
)

func IsValidStatus(status OrderStatus) bool {
	switch status {
	case StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// ItemKind tags an order line as referencing either the products or the
// services collection. Only product lines carry a stock decrement.
type ItemKind string

const (
	ItemKindProduct ItemKind = "product"
	ItemKindService ItemKind = "service"
)

func IsValidItemKind(kind ItemKind) bool {
	return kind == ItemKindProduct || kind == ItemKindService
}

// OrderLine snapshots name/price at order time, so it survives deletion
// of the catalog item it was built from. Write-once.
type OrderLine struct {
	ItemID   string   `json:"item_id"`
	ItemName string   `json:"item_name"`
	ItemKind ItemKind `json:"item_kind"`
	Quantity int      `json:"quantity"`
	Price    float64  `json:"price"`
	Subtotal float64  `json:"subtotal"`
}

type Order struct {
	ID            int         `json:"id"`
	OrderNumber   string      `json:"order_number"`
	CustomerName  string      `json:"customer_name"`
	CustomerPhone string      `json:"customer_phone"`
	VehicleType   string      `json:"vehicle_type"`
	PlateNumber   string      `json:"plate_number"`
	Complaint     string      `json:"complaint"`
	TotalAmount   float64     `json:"total_amount"`
	Status        OrderStatus `json:"status"`
	Lines         []OrderLine `json:"lines"`
	CreatedAt     time.Time   `json:"created_at"`
}

// OrderRepository persists order headers together with their lines.
// CreateOrder must apply the header insert, the line inserts and the
// product stock decrements atomically: a missing product aborts the
// whole order, never leaving a half-written one behind.
type OrderRepository interface {
	CreateOrder(order *Order) (*Order, error)
	GetOrderByID(id int) (*Order, error)
	UpdateOrderStatus(id int, status OrderStatus) (*Order, error)
	ListOrders(status OrderStatus) ([]Order, error)
}
