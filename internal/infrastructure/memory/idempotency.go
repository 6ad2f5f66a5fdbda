package memory

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
)

type idempotencyRepository struct {
	mu   sync.RWMutex
	keys map[string]entity.IdempotencyKey
}

// NewIdempotencyRepository creates an in-process idempotency key store
func NewIdempotencyRepository() repository.IdempotencyRepository {
	return &idempotencyRepository{keys: make(map[string]entity.IdempotencyKey)}
}

func idempotencyID(key, endpoint string) string {
	return endpoint + "|" + key
}

func (r *idempotencyRepository) GetByKey(_ context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ikey, ok := r.keys[idempotencyID(key, endpoint)]
	if !ok {
		return nil, nil
	}
	return &ikey, nil
}

func (r *idempotencyRepository) Create(_ context.Context, ikey *entity.IdempotencyKey) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := idempotencyID(ikey.Key, ikey.Endpoint)
	if existing, exists := r.keys[id]; exists && !existing.IsExpired(time.Now()) {
		return nil
	}
	if ikey.CreatedAt.IsZero() {
		ikey.CreatedAt = time.Now().UTC()
	}
	r.keys[id] = *ikey
	return nil
}

func (r *idempotencyRepository) DeleteExpired(_ context.Context, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, ikey := range r.keys {
		if ikey.IsExpired(now) {
			delete(r.keys, id)
		}
	}
	return nil
}
