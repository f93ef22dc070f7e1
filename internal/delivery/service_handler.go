package delivery

import (
	"net/http"

	"github.com/paatih-qee/langspeed-motor/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type ServiceHandler struct {
	useCase usecase.ServiceUseCase
	log     *logrus.Logger
}

func NewServiceHandler(uc usecase.ServiceUseCase, logger *logrus.Logger) *ServiceHandler {
	return &ServiceHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *ServiceHandler) RegisterRoutes(router gin.IRouter) {
	services := router.Group("/services")
	{
		services.POST("", h.CreateService)
		services.GET("", h.ListServices)
		services.GET("/:id", h.GetServiceByID)
		services.PUT("/:id", h.UpdateService)
		services.DELETE("/:id", h.DeleteService)
	}
}

type serviceRequest struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

func (h *ServiceHandler) CreateService(c *gin.Context) {
	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for create service: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	createdService, err := h.useCase.CreateService(req.Name, req.Price)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to create service '%s': %v", req.Name, err)
		ErrorResponse(c, statusCode, "Failed to create service: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusCreated, "Service created successfully", createdService)
}

func (h *ServiceHandler) GetServiceByID(c *gin.Context) {
	id := c.Param("id")

	service, err := h.useCase.GetServiceByID(id)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to get service by ID %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to retrieve service: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Service retrieved successfully", service)
}

func (h *ServiceHandler) UpdateService(c *gin.Context) {
	id := c.Param("id")

	var req serviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Errorf("Failed to bind JSON for update service ID %s: %v", id, err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	updatedService, err := h.useCase.UpdateService(id, req.Name, req.Price)
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to update service ID %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to update service: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Service updated successfully", updatedService)
}

func (h *ServiceHandler) DeleteService(c *gin.Context) {
	id := c.Param("id")

	if err := h.useCase.DeleteService(id); err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Warnf("Failed to delete service ID %s: %v", id, err)
		ErrorResponse(c, statusCode, "Failed to delete service: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Service deleted successfully", nil)
}

func (h *ServiceHandler) ListServices(c *gin.Context) {
	services, err := h.useCase.ListServices()
	if err != nil {
		statusCode := mapErrorToStatus(err)
		h.log.Errorf("Failed to list services: %v", err)
		ErrorResponse(c, statusCode, "Failed to retrieve services: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Services retrieved successfully", services)
}
