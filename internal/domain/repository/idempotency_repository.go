package repository

import (
	"context"
	"time"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
)

// IdempotencyRepository defines the interface for idempotency key operations
type IdempotencyRepository interface {
	// GetByKey retrieves a stored response by key and endpoint
	GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error)
	Create(ctx context.Context, ikey *entity.IdempotencyKey) error
	// DeleteExpired removes keys that expired before now
	DeleteExpired(ctx context.Context, now time.Time) error
}
