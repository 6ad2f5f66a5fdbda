package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// PrintReceipt prints the slip of a receipt.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	id, ok := parseID(c, "id", "receipt")
	if !ok {
		return
	}

	slip, err := h.printerService.PrintReceipt(c.Request.Context(), id)
	if err != nil {
		// If the slip was built but printing failed, return it with a warning
		if slip != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": slip,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": slip,
	})
}
