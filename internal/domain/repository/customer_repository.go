package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// CustomerRepository defines the interface for customer data operations.
// Getters return (nil, nil) when the customer does not exist.
type CustomerRepository interface {
	// Create stores the customer together with its person
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByID loads the customer with its person
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	// GetByIDWithDetails also loads receipts and their lines
	GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	GetAllWithDetails(ctx context.Context) ([]entity.Customer, error)
	// Update stores the customer and its person, never its receipts
	Update(ctx context.Context, customer *entity.Customer) error
	// Delete removes the customer and its person
	Delete(ctx context.Context, id uuid.UUID) error
}
