package model

import (
	"strings"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"github.com/shopspring/decimal"
)

// ProductModel is the catalog view of a product
type ProductModel struct {
	ID             uuid.UUID       `json:"id"`
	CategoryID     *uuid.UUID      `json:"category_id,omitempty"`
	CategoryName   string          `json:"category_name,omitempty"`
	Name           string          `json:"name"`
	Price          decimal.Decimal `json:"price"`
	ReceiptLineIDs []uuid.UUID     `json:"receipt_line_ids"`
}

// Validate checks the product invariants
func (m *ProductModel) Validate() error {
	if m == nil {
		return apperror.NewNullModelError("Product")
	}
	if m.Price.IsNegative() {
		return apperror.NewValidationError("Product", "price", "must not be negative")
	}
	if strings.TrimSpace(m.Name) == "" {
		return apperror.NewValidationError("Product", "name", "must not be empty")
	}
	return nil
}

// ProductCategoryModel is the catalog view of a category
type ProductCategoryModel struct {
	ID         uuid.UUID   `json:"id"`
	Name       string      `json:"name"`
	ProductIDs []uuid.UUID `json:"product_ids"`
}

// Validate checks the category rule set used by category create and update
func (m *ProductCategoryModel) Validate() error {
	if m == nil {
		return apperror.NewNullModelError("ProductCategory")
	}
	if strings.TrimSpace(m.Name) == "" {
		return apperror.NewValidationError("ProductCategory", "name", "must not be empty")
	}
	return nil
}

// ProductFilter narrows a product listing. Nil fields do not filter.
type ProductFilter struct {
	CategoryID *uuid.UUID
	MinPrice   *decimal.Decimal
	MaxPrice   *decimal.Decimal
}

// Match reports whether p passes every set criterion; price bounds are inclusive
func (f ProductFilter) Match(p *entity.Product) bool {
	if f.CategoryID != nil && !p.InCategory(*f.CategoryID) {
		return false
	}
	if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
		return false
	}
	return true
}

func FromProduct(p *entity.Product) ProductModel {
	m := ProductModel{
		ID:             p.ID,
		CategoryID:     p.CategoryID,
		Name:           p.Name,
		Price:          p.Price,
		ReceiptLineIDs: make([]uuid.UUID, 0, len(p.ReceiptLines)),
	}
	if p.Category != nil {
		m.CategoryName = p.Category.Name
	}
	for _, l := range p.ReceiptLines {
		m.ReceiptLineIDs = append(m.ReceiptLineIDs, l.ID)
	}
	return m
}

func FromProducts(products []entity.Product) []ProductModel {
	out := make([]ProductModel, 0, len(products))
	for i := range products {
		out = append(out, FromProduct(&products[i]))
	}
	return out
}

func FromCategory(c *entity.ProductCategory) ProductCategoryModel {
	m := ProductCategoryModel{
		ID:         c.ID,
		Name:       c.Name,
		ProductIDs: make([]uuid.UUID, 0, len(c.Products)),
	}
	for _, p := range c.Products {
		m.ProductIDs = append(m.ProductIDs, p.ID)
	}
	return m
}

func FromCategories(categories []entity.ProductCategory) []ProductCategoryModel {
	out := make([]ProductCategoryModel, 0, len(categories))
	for i := range categories {
		out = append(out, FromCategory(&categories[i]))
	}
	return out
}
