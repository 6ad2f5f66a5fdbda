package repository

import (
	"context"

	"github.com/pkg/errors"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"gorm.io/gorm"
)

// gormTransactionManager implements domainRepo.TransactionManager on a gorm transaction
type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory builds repositories bound to one open transaction
type gormRepositoryFactory struct {
	tx *gorm.DB
}

func (f *gormRepositoryFactory) NewCustomerRepository() domainRepo.CustomerRepository {
	return NewCustomerRepository(f.tx)
}

func (f *gormRepositoryFactory) NewProductRepository() domainRepo.ProductRepository {
	return NewProductRepository(f.tx)
}

func (f *gormRepositoryFactory) NewCategoryRepository() domainRepo.CategoryRepository {
	return NewCategoryRepository(f.tx)
}

func (f *gormRepositoryFactory) NewReceiptRepository() domainRepo.ReceiptRepository {
	return NewReceiptRepository(f.tx)
}

func (f *gormRepositoryFactory) NewReceiptLineRepository() domainRepo.ReceiptLineRepository {
	return NewReceiptLineRepository(f.tx)
}

// NewTransactionManager creates a transaction manager over db
func NewTransactionManager(db *gorm.DB) domainRepo.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute runs fn inside one database transaction and commits once
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repos domainRepo.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.Wrap(tx.Error, "begin transaction")
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit().Error; err != nil {
		return errors.Wrap(err, "commit transaction")
	}
	return nil
}
