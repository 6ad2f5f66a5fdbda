package request

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRequest represents a product create or update request
type ProductRequest struct {
	CategoryID *uuid.UUID      `json:"category_id"`
	Name       string          `json:"name" binding:"required,max=255"`
	Price      decimal.Decimal `json:"price"`
}

// CategoryRequest represents a product category create or update request
type CategoryRequest struct {
	Name string `json:"name" binding:"required,max=255"`
}

// ProductFilterRequest represents product filter parameters
type ProductFilterRequest struct {
	CategoryID string `form:"categoryId"`
	MinPrice   string `form:"minPrice"`
	MaxPrice   string `form:"maxPrice"`
}
