package request

import (
	"time"

	"github.com/google/uuid"
)

// ReceiptRequest represents a receipt create or update request
type ReceiptRequest struct {
	CustomerID    uuid.UUID `json:"customer_id" binding:"required"`
	OperationDate time.Time `json:"operation_date"`
	IsCheckedOut  bool      `json:"is_checked_out"`
}

// PeriodRequest represents the bounds of a receipt period query
type PeriodRequest struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}
