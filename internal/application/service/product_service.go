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

// ProductService handles catalog operations: products and their categories
type ProductService struct {
	tm     repository.TransactionManager
	logger *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(tm repository.TransactionManager, logger *zap.Logger) *ProductService {
	return &ProductService{tm: tm, logger: logger.Named("products")}
}

// GetAll returns every product
func (s *ProductService) GetAll(ctx context.Context) ([]model.ProductModel, error) {
	return s.GetByFilter(ctx, model.ProductFilter{})
}

// GetByFilter returns the products matching every set criterion of filter
func (s *ProductService) GetByFilter(ctx context.Context, filter model.ProductFilter) ([]model.ProductModel, error) {
	var out []model.ProductModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		products, err := repos.NewProductRepository().GetAllWithDetails(ctx)
		if err != nil {
			return err
		}
		out = make([]model.ProductModel, 0, len(products))
		for i := range products {
			if filter.Match(&products[i]) {
				out = append(out, model.FromProduct(&products[i]))
			}
		}
		return nil
	})
	return out, err
}

// GetByID returns one product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*model.ProductModel, error) {
	var out model.ProductModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		product, err := repos.NewProductRepository().GetByIDWithDetails(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}
		out = model.FromProduct(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, m *model.ProductModel) (*model.ProductModel, error) {
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	var out model.ProductModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		if err := ensureCategory(ctx, repos, m.CategoryID); err != nil {
			return err
		}
		products := repos.NewProductRepository()
		product := &entity.Product{
			CategoryID: m.CategoryID,
			Name:       m.Name,
			Price:      m.Price,
		}
		if err := products.Create(ctx, product); err != nil {
			return err
		}
		created, err := products.GetByIDWithDetails(ctx, product.ID)
		if err != nil {
			return err
		}
		out = model.FromProduct(created)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("product created", zap.Stringer("product_id", out.ID), zap.String("name", out.Name))
	return &out, nil
}

// Update copies name, price and category of m onto the stored product
func (s *ProductService) Update(ctx context.Context, m *model.ProductModel) (*model.ProductModel, error) {
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	var out model.ProductModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		products := repos.NewProductRepository()
		product, err := products.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}
		if err := ensureCategory(ctx, repos, m.CategoryID); err != nil {
			return err
		}

		product.Name = m.Name
		product.Price = m.Price
		product.CategoryID = m.CategoryID
		if err := products.Update(ctx, product); err != nil {
			return err
		}
		updated, err := products.GetByIDWithDetails(ctx, product.ID)
		if err != nil {
			return err
		}
		out = model.FromProduct(updated)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a product together with the receipt lines referencing it
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		products := repos.NewProductRepository()
		product, err := products.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return apperror.NewNotFoundError("Product")
		}
		if err := repos.NewReceiptLineRepository().DeleteByProductID(ctx, id); err != nil {
			return err
		}
		return products.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.Stringer("product_id", id))
	return nil
}

// GetAllCategories returns every product category
func (s *ProductService) GetAllCategories(ctx context.Context) ([]model.ProductCategoryModel, error) {
	var out []model.ProductCategoryModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		categories, err := repos.NewCategoryRepository().GetAllWithDetails(ctx)
		if err != nil {
			return err
		}
		out = model.FromCategories(categories)
		return nil
	})
	return out, err
}

// AddCategory creates a product category
func (s *ProductService) AddCategory(ctx context.Context, m *model.ProductCategoryModel) (*model.ProductCategoryModel, error) {
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	category := &entity.ProductCategory{Name: m.Name}
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		return repos.NewCategoryRepository().Create(ctx, category)
	})
	if err != nil {
		return nil, err
	}

	out := model.FromCategory(category)
	return &out, nil
}

// UpdateCategory renames a product category
func (s *ProductService) UpdateCategory(ctx context.Context, m *model.ProductCategoryModel) (*model.ProductCategoryModel, error) {
	if err := model.Validate(m); err != nil {
		return nil, err
	}

	var out model.ProductCategoryModel
	err := s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		categories := repos.NewCategoryRepository()
		category, err := categories.GetByID(ctx, m.ID)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NewNotFoundError("Product category")
		}
		category.Name = m.Name
		if err := categories.Update(ctx, category); err != nil {
			return err
		}
		out = model.FromCategory(category)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// RemoveCategory deletes a category; its products stay in the catalog without one
func (s *ProductService) RemoveCategory(ctx context.Context, id uuid.UUID) error {
	return s.tm.Execute(ctx, func(repos repository.RepositoryFactory) error {
		categories := repos.NewCategoryRepository()
		category, err := categories.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if category == nil {
			return apperror.NewNotFoundError("Product category")
		}
		if err := repos.NewProductRepository().ClearCategory(ctx, id); err != nil {
			return err
		}
		return categories.Delete(ctx, id)
	})
}

func ensureCategory(ctx context.Context, repos repository.RepositoryFactory, id *uuid.UUID) error {
	if id == nil {
		return nil
	}
	category, err := repos.NewCategoryRepository().GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if category == nil {
		return apperror.NewNotFoundError("Product category")
	}
	return nil
}
