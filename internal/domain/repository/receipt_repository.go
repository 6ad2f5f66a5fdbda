package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt data operations.
// Getters return (nil, nil) when the receipt does not exist.
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	// GetByID loads the receipt row only
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// GetByIDForUpdate locks the receipt row until the transaction ends and
	// loads its lines and customer
	GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	// GetByIDWithDetails loads lines with product and category, and customer with person
	GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error)
	GetAllWithDetails(ctx context.Context) ([]entity.Receipt, error)
	// GetByPeriodWithDetails returns receipts with start <= operation date <= end
	GetByPeriodWithDetails(ctx context.Context, start, end time.Time) ([]entity.Receipt, error)
	// Update stores the receipt header fields
	Update(ctx context.Context, receipt *entity.Receipt) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// ReceiptLineRepository defines the interface for receipt line data operations
type ReceiptLineRepository interface {
	Create(ctx context.Context, line *entity.ReceiptLine) error
	GetByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptLine, error)
	Update(ctx context.Context, line *entity.ReceiptLine) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByReceiptID(ctx context.Context, receiptID uuid.UUID) error
	DeleteByProductID(ctx context.Context, productID uuid.UUID) error
}
