package usecase

import (
	"io"
	"strings"
	"testing"

	"github.com/paatih-qee/langspeed-motor/internal/domain"
	"github.com/paatih-qee/langspeed-motor/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setupUseCases(t *testing.T) (*repository.MemoryStore, ProductUseCase, ServiceUseCase, OrderUseCase) {
	t.Helper()
	store := repository.NewMemoryStore()
	logger := testLogger()
	return store,
		NewProductUseCase(store, logger),
		NewServiceUseCase(store, logger),
		NewOrderUseCase(store, logger)
}

func orderInput(lines ...OrderLineInput) CreateOrderInput {
	return CreateOrderInput{
		CustomerName:  "Budi Santoso",
		CustomerPhone: "081234567890",
		VehicleType:   "Honda Vario 125",
		PlateNumber:   "B 1234 ABC",
		Complaint:     "Mesin kasar saat idle",
		Lines:         lines,
	}
}

func TestCreateOrder_ProductLineDecrementsStock(t *testing.T) {
	_, products, _, orders := setupUseCases(t)

	p, err := products.CreateProduct("Oil Filter", 50000, 10)
	require.NoError(t, err)

	created, err := orders.CreateOrder(orderInput(OrderLineInput{
		ItemID:   p.ProductID,
		ItemName: p.Name,
		ItemKind: domain.ItemKindProduct,
		Quantity: 3,
		Price:    p.Price,
	}))
	require.NoError(t, err)

	assert.Equal(t, float64(150000), created.TotalAmount)
	require.Len(t, created.Lines, 1)
	assert.Equal(t, float64(150000), created.Lines[0].Subtotal)
	assert.Equal(t, domain.StatusInProgress, created.Status)
	assert.True(t, strings.HasPrefix(created.OrderNumber, "ORD-"))

	pAfter, err := products.GetProductByID(p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 7, pAfter.Stock)
}

func TestCreateOrder_ServiceLineTouchesNoStock(t *testing.T) {
	_, products, services, orders := setupUseCases(t)

	p, err := products.CreateProduct("Spark Plug", 25000, 6)
	require.NoError(t, err)
	s, err := services.CreateService("Tune-up", 75000)
	require.NoError(t, err)

	created, err := orders.CreateOrder(orderInput(OrderLineInput{
		ItemID:   s.ServiceID,
		ItemName: s.Name,
		ItemKind: domain.ItemKindService,
		Quantity: 1,
		Price:    s.Price,
	}))
	require.NoError(t, err)
	assert.Equal(t, float64(75000), created.TotalAmount)

	pAfter, err := products.GetProductByID(p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 6, pAfter.Stock, "service orders must not mutate product stock")
}

func TestCreateOrder_TotalIsSumOfSubtotals(t *testing.T) {
	_, products, services, orders := setupUseCases(t)

	p, err := products.CreateProduct("Chain Kit", 150000, 5)
	require.NoError(t, err)
	s, err := services.CreateService("Chain Replacement", 50000)
	require.NoError(t, err)

	created, err := orders.CreateOrder(orderInput(
		OrderLineInput{ItemID: p.ProductID, ItemName: p.Name, ItemKind: domain.ItemKindProduct, Quantity: 2, Price: p.Price},
		OrderLineInput{ItemID: s.ServiceID, ItemName: s.Name, ItemKind: domain.ItemKindService, Quantity: 1, Price: s.Price},
	))
	require.NoError(t, err)

	require.Len(t, created.Lines, 2)
	var sum float64
	for _, line := range created.Lines {
		assert.Equal(t, float64(line.Quantity)*line.Price, line.Subtotal)
		sum += line.Subtotal
	}
	assert.Equal(t, sum, created.TotalAmount)
	assert.Equal(t, float64(350000), created.TotalAmount)
}

// Oversell floors at zero rather than erroring. That is the documented
// policy: the front desk validates availability before submitting, and
// the ledger only guarantees stock never goes negative.
func TestCreateOrder_OversellFloorsStockAtZero(t *testing.T) {
	_, products, _, orders := setupUseCases(t)

	p, err := products.CreateProduct("Inner Tube", 40000, 2)
	require.NoError(t, err)

	_, err = orders.CreateOrder(orderInput(OrderLineInput{
		ItemID:   p.ProductID,
		ItemName: p.Name,
		ItemKind: domain.ItemKindProduct,
		Quantity: 5,
		Price:    p.Price,
	}))
	require.NoError(t, err, "oversell is floored, not rejected")

	pAfter, err := products.GetProductByID(p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 0, pAfter.Stock)
}

func TestCreateOrder_MissingProductAbortsWholeOrder(t *testing.T) {
	_, products, _, orders := setupUseCases(t)

	p, err := products.CreateProduct("Air Filter", 35000, 8)
	require.NoError(t, err)

	_, err = orders.CreateOrder(orderInput(
		OrderLineInput{ItemID: p.ProductID, ItemName: p.Name, ItemKind: domain.ItemKindProduct, Quantity: 2, Price: p.Price},
		OrderLineInput{ItemID: "P-404", ItemName: "Ghost Part", ItemKind: domain.ItemKindProduct, Quantity: 1, Price: 1000},
	))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	pAfter, err := products.GetProductByID(p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 8, pAfter.Stock, "aborted order must not leave stock decremented")

	list, err := orders.ListOrders("")
	require.NoError(t, err)
	assert.Empty(t, list, "aborted order must not leave a header behind")
}

func TestCreateOrder_Validation(t *testing.T) {
	_, products, _, orders := setupUseCases(t)

	p, err := products.CreateProduct("Bolt", 1000, 100)
	require.NoError(t, err)
	validLine := OrderLineInput{ItemID: p.ProductID, ItemName: p.Name, ItemKind: domain.ItemKindProduct, Quantity: 1, Price: p.Price}

	cases := []struct {
		name  string
		input CreateOrderInput
	}{
		{"empty customer name", func() CreateOrderInput { in := orderInput(validLine); in.CustomerName = " "; return in }()},
		{"empty phone", func() CreateOrderInput { in := orderInput(validLine); in.CustomerPhone = ""; return in }()},
		{"empty vehicle type", func() CreateOrderInput { in := orderInput(validLine); in.VehicleType = ""; return in }()},
		{"empty plate number", func() CreateOrderInput { in := orderInput(validLine); in.PlateNumber = ""; return in }()},
		{"empty complaint", func() CreateOrderInput { in := orderInput(validLine); in.Complaint = ""; return in }()},
		{"no lines", orderInput()},
		{"zero quantity", orderInput(OrderLineInput{ItemID: p.ProductID, ItemName: p.Name, ItemKind: domain.ItemKindProduct, Quantity: 0, Price: 1})},
		{"negative price", orderInput(OrderLineInput{ItemID: p.ProductID, ItemName: p.Name, ItemKind: domain.ItemKindProduct, Quantity: 1, Price: -1})},
		{"empty item id", orderInput(OrderLineInput{ItemID: "", ItemName: "X", ItemKind: domain.ItemKindProduct, Quantity: 1, Price: 1})},
		{"empty item name", orderInput(OrderLineInput{ItemID: "P-1", ItemName: "", ItemKind: domain.ItemKindProduct, Quantity: 1, Price: 1})},
		{"bad item kind", orderInput(OrderLineInput{ItemID: "P-1", ItemName: "X", ItemKind: "warranty", Quantity: 1, Price: 1})},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := orders.CreateOrder(tc.input)
			require.Error(t, err)
		})
	}

	pAfter, err := products.GetProductByID(p.ProductID)
	require.NoError(t, err)
	assert.Equal(t, 100, pAfter.Stock, "rejected orders must not touch stock")
}

func TestUpdateOrderStatus_BothDirections(t *testing.T) {
	_, products, _, orders := setupUseCases(t)

	p, err := products.CreateProduct("Brake Cable", 20000, 3)
	require.NoError(t, err)
	created, err := orders.CreateOrder(orderInput(OrderLineInput{
		ItemID: p.ProductID, ItemName: p.Name, ItemKind: domain.ItemKindProduct, Quantity: 1, Price: p.Price,
	}))
	require.NoError(t, err)

	updated, err := orders.UpdateOrderStatus(created.ID, domain.StatusCompleted)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, updated.Status)

	got, err := orders.GetOrderByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, got.Status)

	// reopening a completed order is allowed
	reopened, err := orders.UpdateOrderStatus(created.ID, domain.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusInProgress, reopened.Status)

	_, err = orders.UpdateOrderStatus(created.ID, "Cancelled")
	require.Error(t, err)

	_, err = orders.UpdateOrderStatus(9999, domain.StatusCompleted)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteProductKeepsOrderLineSnapshot(t *testing.T) {
	_, products, _, orders := setupUseCases(t)

	p, err := products.CreateProduct("Clutch Lever", 45000, 5)
	require.NoError(t, err)
	created, err := orders.CreateOrder(orderInput(OrderLineInput{
		ItemID: p.ProductID, ItemName: p.Name, ItemKind: domain.ItemKindProduct, Quantity: 2, Price: p.Price,
	}))
	require.NoError(t, err)

	require.NoError(t, products.DeleteProduct(p.ProductID))

	got, err := orders.GetOrderByID(created.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Clutch Lever", got.Lines[0].ItemName)
	assert.Equal(t, float64(45000), got.Lines[0].Price)
	assert.Equal(t, float64(90000), got.Lines[0].Subtotal)
}

func TestListOrders_NewestFirstAndStatusFilter(t *testing.T) {
	_, products, _, orders := setupUseCases(t)

	p, err := products.CreateProduct("Mirror", 30000, 10)
	require.NoError(t, err)
	line := OrderLineInput{ItemID: p.ProductID, ItemName: p.Name, ItemKind: domain.ItemKindProduct, Quantity: 1, Price: p.Price}

	first, err := orders.CreateOrder(orderInput(line))
	require.NoError(t, err)
	second, err := orders.CreateOrder(orderInput(line))
	require.NoError(t, err)

	_, err = orders.UpdateOrderStatus(first.ID, domain.StatusCompleted)
	require.NoError(t, err)

	all, err := orders.ListOrders("")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	inProgress, err := orders.ListOrders(domain.StatusInProgress)
	require.NoError(t, err)
	require.Len(t, inProgress, 1)
	assert.Equal(t, second.ID, inProgress[0].ID)

	_, err = orders.ListOrders("Unknown")
	require.Error(t, err)
}
