package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductCategory groups products in the catalog
type ProductCategory struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Products []Product `gorm:"foreignKey:CategoryID" json:"products,omitempty"`
}

// BeforeCreate generates a UUID before creating a new category
func (c *ProductCategory) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ProductCategory model
func (ProductCategory) TableName() string {
	return "product_categories"
}

// Product represents a product in the catalog
type Product struct {
	ID         uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	CategoryID *uuid.UUID      `gorm:"type:uuid;index" json:"category_id,omitempty"`
	Name       string          `gorm:"size:255;not null" json:"name"`
	Price      decimal.Decimal `gorm:"type:numeric(18,2);not null;default:0" json:"price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`

	// Relationships
	Category     *ProductCategory `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	ReceiptLines []ReceiptLine    `gorm:"foreignKey:ProductID" json:"-"`
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// InCategory reports whether the product belongs to categoryID
func (p *Product) InCategory(categoryID uuid.UUID) bool {
	return p.CategoryID != nil && *p.CategoryID == categoryID
}
