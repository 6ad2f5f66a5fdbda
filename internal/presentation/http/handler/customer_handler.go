package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/domain/model"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/request"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// List handles listing customers
func (h *CustomerHandler) List(c *gin.Context) {
	customers, err := h.customerService.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", customers)
}

// ListByProduct handles listing the customers who bought a product
func (h *CustomerHandler) ListByProduct(c *gin.Context) {
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}

	customers, err := h.customerService.GetByProductID(c.Request.Context(), productID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customers retrieved successfully", customers)
}

// Get handles getting a single customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	customer, err := h.customerService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.Create(c.Request.Context(), &model.CustomerModel{
		Name:          req.Name,
		Surname:       req.Surname,
		BirthDate:     req.BirthDate,
		DiscountValue: req.DiscountValue,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}

// Update handles updating a customer
func (h *CustomerHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	var req request.CustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	customer, err := h.customerService.Update(c.Request.Context(), &model.CustomerModel{
		ID:            id,
		Name:          req.Name,
		Surname:       req.Surname,
		BirthDate:     req.BirthDate,
		DiscountValue: req.DiscountValue,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer updated successfully", customer)
}

// Delete handles deleting a customer together with its receipts
func (h *CustomerHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "customer")
	if !ok {
		return
	}

	if err := h.customerService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer deleted successfully", nil)
}
