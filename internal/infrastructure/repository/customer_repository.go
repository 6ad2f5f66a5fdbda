package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	domainRepo "github.com/sangkips/trademarket-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return errors.Wrap(r.db.WithContext(ctx).Create(customer).Error, "create customer")
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).Preload("Person").First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get customer")
	}
	return &customer, nil
}

func (r *customerRepository) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).
		Preload("Person").
		Preload("Receipts.Lines").
		First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get customer with details")
	}
	return &customer, nil
}

func (r *customerRepository) GetAllWithDetails(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Preload("Person").
		Preload("Receipts.Lines").
		Order("created_at ASC").
		Find(&customers).Error
	return customers, errors.Wrap(err, "list customers")
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	if err := r.db.WithContext(ctx).Save(&customer.Person).Error; err != nil {
		return errors.Wrap(err, "update person")
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(customer).Error
	return errors.Wrap(err, "update customer")
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	var customer entity.Customer
	if err := r.db.WithContext(ctx).Select("id", "person_id").First(&customer, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return errors.Wrap(err, "find customer")
	}
	if err := r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id).Error; err != nil {
		return errors.Wrap(err, "delete customer")
	}
	err := r.db.WithContext(ctx).Delete(&entity.Person{}, "id = ?", customer.PersonID).Error
	return errors.Wrap(err, "delete person")
}
