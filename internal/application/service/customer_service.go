package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/internal/domain/model"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"go.uber.org/zap"
)

// CustomerService handles customer-related operations
type CustomerService struct {
	tm     repository.TransactionManager
	logger *zap.Logger
}

// NewCustomerService creates a new customer service
func NewCustomerService(tm repository.TransactionManager, logger *zap.Logger) *CustomerService {
	return &CustomerService{tm: tm, logger: logger.Named("customers")}
}

// GetAll returns every customer
func (s *CustomerService) GetAll(ctx context.Context) ([]model.CustomerModel, error) {
	var out []model.CustomerModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		customers, err := repos.NewCustomerRepository().GetAllWithDetails(ctx)
		if err != nil {
			return err
		}
		out = model.FromCustomers(customers)
		return nil
	})
	return out, err
}

// GetByID returns one customer
func (s *CustomerService) GetByID(ctx context.Context, id uuid.UUID) (*model.CustomerModel, error) {
	var out model.CustomerModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		customer, err := repos.NewCustomerRepository().GetByIDWithDetails(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}
		out = model.FromCustomer(customer)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// GetByProductID returns the customers that have the product on any of their receipts
func (s *CustomerService) GetByProductID(ctx context.Context, productID uuid.UUID) ([]model.CustomerModel, error) {
	out := []model.CustomerModel{}
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		customers, err := repos.NewCustomerRepository().GetAllWithDetails(ctx)
		if err != nil {
			return err
		}
		for i := range customers {
			if customers[i].HasBought(productID) {
				out = append(out, model.FromCustomer(&customers[i]))
			}
		}
		return nil
	})
	return out, err
}

// Create stores a customer and its person
func (s *CustomerService) Create(ctx context.Context, m *model.CustomerModel) (*model.CustomerModel, error) {
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	customer := &entity.Customer{
		DiscountValue: m.DiscountValue,
		Person: entity.Person{
			Name:      m.Name,
			Surname:   m.Surname,
			BirthDate: m.BirthDate.UTC(),
		},
	}
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return repos.NewCustomerRepository().Create(ctx, customer)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created", zap.Stringer("customer_id", customer.ID))
	out := model.FromCustomer(customer)
	return &out, nil
}

// Update copies the person fields and discount of m onto the stored customer
func (s *CustomerService) Update(ctx context.Context, m *model.CustomerModel) (*model.CustomerModel, error) {
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	var out model.CustomerModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		customers := repos.NewCustomerRepository()
		customer, err := customers.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		customer.Person.Name = m.Name
		customer.Person.Surname = m.Surname
		customer.Person.BirthDate = m.BirthDate.UTC()
		customer.DiscountValue = m.DiscountValue
		if err := customers.Update(ctx, customer); err != nil {
			return err
		}

		updated, err := customers.GetByIDWithDetails(ctx, m.ID)
		if err != nil {
			return err
		}
		out = model.FromCustomer(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a customer with its receipts and their lines
func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		customers := repos.NewCustomerRepository()
		customer, err := customers.GetByIDWithDetails(ctx, id)
		if err != nil {
			return err
		}
		if customer == nil {
			return apperror.NewNotFoundError("Customer")
		}

		receipts := repos.NewReceiptRepository()
		lines := repos.NewReceiptLineRepository()
		for _, r := range customer.Receipts {
			if err := lines.DeleteByReceiptID(ctx, r.ID); err != nil {
				return err
			}
			if err := receipts.Delete(ctx, r.ID); err != nil {
				return err
			}
		}
		return customers.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.Stringer("customer_id", id))
	return nil
}
