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

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(product).Error
	return errors.Wrap(err, "create product")
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	return &product, nil
}

func (r *productRepository) GetByIDWithDetails(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("ReceiptLines").
		First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get product with details")
	}
	return &product, nil
}

func (r *productRepository) GetAllWithDetails(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("ReceiptLines").
		Order("name ASC").
		Find(&products).Error
	return products, errors.Wrap(err, "list products")
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(product).Error
	return errors.Wrap(err, "update product")
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
	return errors.Wrap(err, "delete product")
}

func (r *productRepository) ClearCategory(ctx context.Context, categoryID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("category_id = ?", categoryID).
		Update("category_id", nil).Error
	return errors.Wrap(err, "detach products from category")
}

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository creates a new product category repository
func NewCategoryRepository(db *gorm.DB) domainRepo.CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *entity.ProductCategory) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(category).Error
	return errors.Wrap(err, "create category")
}

func (r *categoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.ProductCategory, error) {
	var category entity.ProductCategory
	err := r.db.WithContext(ctx).First(&category, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "get category")
	}
	return &category, nil
}

func (r *categoryRepository) GetAllWithDetails(ctx context.Context) ([]entity.ProductCategory, error) {
	var categories []entity.ProductCategory
	err := r.db.WithContext(ctx).
		Preload("Products").
		Order("name ASC").
		Find(&categories).Error
	return categories, errors.Wrap(err, "list categories")
}

func (r *categoryRepository) Update(ctx context.Context, category *entity.ProductCategory) error {
	err := r.db.WithContext(ctx).Omit(clause.Associations).Save(category).Error
	return errors.Wrap(err, "update category")
}

func (r *categoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.db.WithContext(ctx).Delete(&entity.ProductCategory{}, "id = ?", id).Error
	return errors.Wrap(err, "delete category")
}
