package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/enum"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ReceiptModel is the header view of a receipt
type ReceiptModel struct {
	ID             uuid.UUID          `json:"id"`
	CustomerID     uuid.UUID          `json:"customer_id"`
	OperationDate  time.Time          `json:"operation_date"`
	IsCheckedOut   bool               `json:"is_checked_out"`
	Status         enum.ReceiptStatus `json:"status"`
	ReceiptLineIDs []uuid.UUID        `json:"receipt_details_ids"`
}

// Validate checks the receipt invariants
func (m *ReceiptModel) Validate() error {
	if m == nil {
		return apperror.NewNullModelError("Receipt")
	}
	if m.CustomerID == uuid.Nil {
		return apperror.NewValidationError("Receipt", "customer_id", "is required")
	}
	return nil
}

// ReceiptLineModel is the view of one receipt line
type ReceiptLineModel struct {
	ID                uuid.UUID       `json:"id"`
	ReceiptID         uuid.UUID       `json:"receipt_id"`
	ProductID         uuid.UUID       `json:"product_id"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DiscountUnitPrice decimal.Decimal `json:"discount_unit_price"`
}

// Validate checks the receipt line invariants
func (m *ReceiptLineModel) Validate() error {
	if m == nil {
		return apperror.NewNullModelError("ReceiptDetail")
	}
	if m.ReceiptID == uuid.Nil {
		return apperror.NewValidationError("ReceiptDetail", "receipt_id", "is required")
	}
	if m.ProductID == uuid.Nil {
		return apperror.NewValidationError("ReceiptDetail", "product_id", "is required")
	}
	if m.DiscountUnitPrice.IsNegative() {
		return apperror.NewValidationError("ReceiptDetail", "discount_unit_price", "must not be negative")
	}
	if !m.UnitPrice.IsPositive() {
		return apperror.NewValidationError("ReceiptDetail", "unit_price", "must be positive")
	}
	if m.Quantity <= 0 {
		return apperror.NewValidationError("ReceiptDetail", "quantity", "must be positive")
	}
	return nil
}

func FromReceipt(r *entity.Receipt) ReceiptModel {
	m := ReceiptModel{
		ID:             r.ID,
		CustomerID:     r.CustomerID,
		OperationDate:  r.OperationDate,
		IsCheckedOut:   r.IsCheckedOut,
		Status:         enum.ReceiptStatusOf(r.IsCheckedOut),
		ReceiptLineIDs: make([]uuid.UUID, 0, len(r.Lines)),
	}
	for _, l := range r.Lines {
		m.ReceiptLineIDs = append(m.ReceiptLineIDs, l.ID)
	}
	return m
}

func FromReceipts(receipts []entity.Receipt) []ReceiptModel {
	out := make([]ReceiptModel, 0, len(receipts))
	for i := range receipts {
		out = append(out, FromReceipt(&receipts[i]))
	}
	return out
}

func FromReceiptLine(l *entity.ReceiptLine) ReceiptLineModel {
	return ReceiptLineModel{
		ID:                l.ID,
		ReceiptID:         l.ReceiptID,
		ProductID:         l.ProductID,
		Quantity:          l.Quantity,
		UnitPrice:         l.UnitPrice,
		DiscountUnitPrice: l.DiscountUnitPrice,
	}
}

func FromReceiptLines(lines []entity.ReceiptLine) []ReceiptLineModel {
	out := make([]ReceiptLineModel, 0, len(lines))
	for i := range lines {
		out = append(out, FromReceiptLine(&lines[i]))
	}
	return out
}
