package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// dryRunDB builds statements without a server
func dryRunDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: "host=localhost user=trademarket dbname=trademarket sslmode=disable",
	}), &gorm.Config{DryRun: true, DisableAutomaticPing: true})
	require.NoError(t, err)
	return db
}

func TestIdempotencyRepository_CreateReplacesOnlyExpiredRows(t *testing.T) {
	now := time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
	db := dryRunDB(t)
	repo := &idempotencyRepository{db: db, now: func() time.Time { return now }}

	ikey := &entity.IdempotencyKey{
		Key:          "create-alan",
		Endpoint:     "POST /api/customers",
		ResponseCode: 201,
		ContentType:  "application/json; charset=utf-8",
		ResponseBody: `{"success":true}`,
		ExpiresAt:    now.Add(24 * time.Hour),
	}

	var stmt *gorm.Statement
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture", func(tx *gorm.DB) {
		stmt = tx.Statement
	}))
	require.NoError(t, repo.Create(context.Background(), ikey))
	require.NotNil(t, stmt)

	sql := stmt.SQL.String()
	assert.Contains(t, sql, `ON CONFLICT ("key","endpoint") DO UPDATE SET`)
	for _, col := range []string{"response_code", "content_type", "response_body", "expires_at", "created_at"} {
		assert.Contains(t, sql, `"`+col+`"="excluded"."`+col+`"`)
	}
	assert.NotContains(t, sql, "DO NOTHING")
	assert.Contains(t, sql, "idempotency_keys.expires_at <")
	assert.Contains(t, stmt.Vars, now)
}
