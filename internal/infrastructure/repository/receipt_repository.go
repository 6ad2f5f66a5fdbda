package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type receiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository creates a new receipt repository
func NewReceiptRepository(db *gorm.DB) domainRepo.ReceiptRepository {
	return &receiptRepository{db: db}
}

func (r *receiptRepository) Create(ctx context.Context, receipt *entity.Receipt) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(receipt).Error
	return errors.Wrap(err, "create receipt")
}

func (r *receiptRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get receipt")
	}
	return &receipt, nil
}

func (r *receiptRepository) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Customer").
		Preload("Lines").
		First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "lock receipt")
	}
	return &receipt, nil
}

func (r *receiptRepository) withDetails(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Lines.Product.Category").
		Preload("Customer.Person")
}

func (r *receiptRepository) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Receipt, error) {
	var receipt entity.Receipt
	err := r.withDetails(ctx).First(&receipt, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get receipt with details")
	}
	return &receipt, nil
}

func (r *receiptRepository) GetAllWithDetails(ctx context.Context) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.withDetails(ctx).Order("operation_date ASC").Find(&receipts).Error
	return receipts, errors.Wrap(err, "list receipts")
}

func (r *receiptRepository) GetByPeriodWithDetails(ctx context.Context, start, end time.Time) ([]entity.Receipt, error) {
	var receipts []entity.Receipt
	err := r.withDetails(ctx).
		Where("operation_date >= ? AND operation_date <= ?", start, end).
		Order("operation_date ASC").
		Find(&receipts).Error
	return receipts, errors.Wrap(err, "list receipts by period")
}

func (r *receiptRepository) Update(ctx context.Context, receipt *entity.Receipt) error {
	err := r.db.WithContext(ctx).
		Model(receipt).
		Select("customer_id", "operation_date", "is_checked_out", "updated_at").
		Updates(receipt).Error
	return errors.Wrap(err, "update receipt")
}

func (r *receiptRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&entity.Receipt{}, "id = ?", id).Error
	return errors.Wrap(err, "delete receipt")
}

type receiptLineRepository struct {
	db *gorm.DB
}

// NewReceiptLineRepository creates a new receipt line repository
func NewReceiptLineRepository(db *gorm.DB) domainRepo.ReceiptLineRepository {
	return &receiptLineRepository{db: db}
}

func (r *receiptLineRepository) Create(ctx context.Context, line *entity.ReceiptLine) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(line).Error
	return errors.Wrap(err, "create receipt line")
}

func (r *receiptLineRepository) GetByReceiptID(ctx context.Context, receiptID uuid.UUID) ([]entity.ReceiptLine, error) {
	var lines []entity.ReceiptLine
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("receipt_id = ?", receiptID).
		Order("created_at ASC").
		Find(&lines).Error
	return lines, errors.Wrap(err, "list receipt lines")
}

func (r *receiptLineRepository) Update(ctx context.Context, line *entity.ReceiptLine) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(line).Error
	return errors.Wrap(err, "update receipt line")
}

func (r *receiptLineRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&entity.ReceiptLine{}, "id = ?", id).Error
	return errors.Wrap(err, "delete receipt line")
}

func (r *receiptLineRepository) DeleteByReceiptID(ctx context.Context, receiptID uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&entity.ReceiptLine{}, "receipt_id = ?", receiptID).Error
	return errors.Wrap(err, "delete receipt lines")
}

func (r *receiptLineRepository) DeleteByProductID(ctx context.Context, productID uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&entity.ReceiptLine{}, "product_id = ?", productID).Error
	return errors.Wrap(err, "delete product lines")
}
