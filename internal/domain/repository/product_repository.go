package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// ProductRepository defines the interface for product data operations
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	// GetByIDWithDetails loads the category and receipt lines
	GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetAllWithDetails(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	// ClearCategory detaches every product of the category
	ClearCategory(ctx context.Context, categoryID uuid.UUID) error
}

// CategoryRepository defines the interface for product category data operations
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.ProductCategory) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductCategory, error)
	// GetAllWithDetails loads every category with its products
	GetAllWithDetails(ctx context.Context) ([]entity.ProductCategory, error)
	Update(ctx context.Context, category *entity.ProductCategory) error
	Delete(ctx context.Context, id uuid.UUID) error
}
