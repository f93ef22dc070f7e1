package delivery

import (
	"net/http"
	"strconv"

	"github.com/paatih-qee/langspeed-motor/internal/domain"
	"github.com/paatih-qee/langspeed-motor/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type OrderHandler struct {
	useCase usecase.OrderUseCase
	log     *logrus.Logger
}

func NewOrderHandler(uc usecase.OrderUseCase, logger *logrus.Logger) *OrderHandler {
	return &OrderHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	orders := router.Group("/orders")
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrderByID)
		orders.PATCH("/:id/status", h.UpdateOrderStatus)
	}
}

type orderLineRequest struct {
	ItemID   string  `json:"item_id"`
	ItemName string  `json:"item_name"`
	ItemKind string  `json:"item_kind"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type createOrderRequest struct {
	CustomerName  string             `json:"customer_name"`
	CustomerPhone string             `json:"customer_phone"`
	VehicleType   string             `json:"vehicle_type"`
	PlateNumber   string             `json:"plate_number"`
	Complaint     string             `json:"complaint"`
	Lines         []orderLineRequest `json:"lines"`
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create order: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	input := usecase.CreateOrderInput{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		VehicleType:   req.VehicleType,
		PlateNumber:   req.PlateNumber,
		Complaint:     req.Complaint,
		Lines:         make([]usecase.OrderLineInput, 0, len(req.Lines)),
	}
	for _, line := range req.Lines {
		input.Lines = append(input.Lines, usecase.OrderLineInput{
			ItemID:   line.ItemID,
			ItemName: line.ItemName,
			ItemKind: domain.ItemKind(line.ItemKind),
			Quantity: line.Quantity,
			Price:    line.Price,
		})
	}

	createdOrder, err := h.useCase.CreateOrder(input)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to create order for customer '%s': %v", req.CustomerName, err)
		ErrorResponse(c, statusCode, "Failed to create order: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Order created successfully", createdOrder)
}

func (h *OrderHandler) GetOrderByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid order ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	order, err := h.useCase.GetOrderByID(id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get order by ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to retrieve order: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order retrieved successfully", order)
}

type updateOrderStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandler) UpdateOrderStatus(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid order ID parameter for status update: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid order ID format")
		return
	}

	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for status update of order ID %d: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updatedOrder, err := h.useCase.UpdateOrderStatus(id, domain.OrderStatus(req.Status))
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to update status for order ID %d: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to update order status: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Order status updated successfully", updatedOrder)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	status := c.Query("status")

	orders, err := h.useCase.ListOrders(domain.OrderStatus(status))
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to list orders: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve orders: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Orders retrieved successfully", orders)
}
