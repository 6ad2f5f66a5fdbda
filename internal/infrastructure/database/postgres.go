package database

import (
	"github.com/pkg/errors"
	"github.com/sangkips/trademarket-api/internal/config"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewPostgresDB creates a new PostgreSQL database connection
func NewPostgresDB(cfg *config.DatabaseConfig, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  cfg.DSN(),
		PreferSimpleProtocol: true, // disables implicit prepared statement usage
	}), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect to database")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "get underlying sql.DB")
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)

	logger.Info("connected to PostgreSQL",
		zap.String("host", cfg.Host),
		zap.String("database", cfg.Name),
	)
	return db, nil
}

// AutoMigrate runs GORM auto-migration for all entities
func AutoMigrate(db *gorm.DB, logger *zap.Logger) error {
	logger.Info("running database migrations")

	err := db.AutoMigrate(
		&entity.Person{},
		&entity.Customer{},
		&entity.ProductCategory{},
		&entity.Product{},
		&entity.Receipt{},
		&entity.ReceiptLine{},
		&entity.IdempotencyKey{},
	)
	if err != nil {
		return errors.Wrap(err, "run migrations")
	}

	logger.Info("database migrations completed")
	return nil
}
