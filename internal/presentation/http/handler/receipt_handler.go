package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/domain/model"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/request"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
)

// ReceiptHandler handles receipt-related HTTP requests
type ReceiptHandler struct {
	receiptService *service.ReceiptService
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptService: receiptService}
}

// List handles listing receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	receipts, err := h.receiptService.GetAll(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", receipts)
}

// Get handles getting a single receipt
func (h *ReceiptHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	receipt, err := h.receiptService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt retrieved successfully", receipt)
}

// Details handles listing the lines of a receipt
func (h *ReceiptHandler) Details(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	lines, err := h.receiptService.GetReceiptDetails(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt details retrieved successfully", lines)
}

// Sum handles computing the amount to pay for a receipt
func (h *ReceiptHandler) Sum(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	total, err := h.receiptService.ToPay(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt sum calculated", total)
}

// Period handles listing receipts whose operation date falls in [startDate, endDate]
func (h *ReceiptHandler) Period(c *gin.Context) {
	var req request.PeriodRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "startDate and endDate are required")
		return
	}

	start, err := parseTime(req.StartDate)
	if err != nil {
		response.BadRequest(c, "Invalid startDate")
		return
	}
	end, err := parseTime(req.EndDate)
	if err != nil {
		response.BadRequest(c, "Invalid endDate")
		return
	}

	receipts, err := h.receiptService.GetReceiptsByPeriod(c.Request.Context(), start, end)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved successfully", receipts)
}

// Create handles creating a receipt
func (h *ReceiptHandler) Create(c *gin.Context) {
	var req request.ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	receipt, err := h.receiptService.Create(c.Request.Context(), &model.ReceiptModel{
		CustomerID:    req.CustomerID,
		OperationDate: req.OperationDate,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt created successfully", receipt)
}

// Update handles updating the header of a receipt
func (h *ReceiptHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	var req request.ReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	receipt, err := h.receiptService.Update(c.Request.Context(), &model.ReceiptModel{
		ID:            id,
		CustomerID:    req.CustomerID,
		OperationDate: req.OperationDate,
		IsCheckedOut:  req.IsCheckedOut,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt updated successfully", receipt)
}

// Delete handles deleting a receipt
func (h *ReceiptHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	if err := h.receiptService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt deleted successfully", nil)
}

// AddProduct handles putting units of a product on a receipt
func (h *ReceiptHandler) AddProduct(c *gin.Context) {
	receiptID, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}
	quantity, ok := parseQuantity(c)
	if !ok {
		return
	}

	if err := h.receiptService.AddProduct(c.Request.Context(), productID, receiptID, quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product added to receipt", nil)
}

// RemoveProduct handles taking units of a product off a receipt
func (h *ReceiptHandler) RemoveProduct(c *gin.Context) {
	receiptID, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}
	productID, ok := parseID(c, "productId", "product")
	if !ok {
		return
	}
	quantity, ok := parseQuantity(c)
	if !ok {
		return
	}

	if err := h.receiptService.RemoveProduct(c.Request.Context(), productID, receiptID, quantity); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product removed from receipt", nil)
}

// CheckOut handles closing a receipt
func (h *ReceiptHandler) CheckOut(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	if err := h.receiptService.CheckOut(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt checked out", nil)
}
