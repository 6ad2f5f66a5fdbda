package repository

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type idempotencyRepository struct {
	db  *gorm.DB
	now func() time.Time
}

// NewIdempotencyRepository creates a new idempotency repository
func NewIdempotencyRepository(db *gorm.DB) domainRepo.IdempotencyRepository {
	return &idempotencyRepository{db: db, now: time.Now}
}

func (r *idempotencyRepository) GetByKey(ctx context.Context, key, endpoint string) (*entity.IdempotencyKey, error) {
	var ikey entity.IdempotencyKey
	err := r.db.WithContext(ctx).
		Where("key = ? AND endpoint = ?", key, endpoint).
		First(&ikey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get idempotency key")
	}
	return &ikey, nil
}

// Create stores the key. An expired row for the same key and endpoint is
// replaced; a live one keeps the first response.
func (r *idempotencyRepository) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key"}, {Name: "endpoint"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"response_code", "content_type", "response_body", "expires_at", "created_at",
		}),
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Expr{SQL: "idempotency_keys.expires_at < ?", Vars: []any{r.now()}},
		}},
	}).Create(ikey).Error
	return errors.Wrap(err, "store idempotency key")
}

func (r *idempotencyRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	err := r.db.WithContext(ctx).
		Where("expires_at < ?", now).
		Delete(&entity.IdempotencyKey{}).Error
	return errors.Wrap(err, "delete expired idempotency keys")
}
