package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/application/service"
	"github.com/sangkips/trademarket-api/internal/domain/model"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/request"
	"github.com/sangkips/trademarket-api/internal/presentation/http/dto/response"
	"github.com/shopspring/decimal"
)

// ProductHandler handles product and category HTTP requests
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler creates a new product handler
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// List handles listing products, optionally filtered by category and price range
func (h *ProductHandler) List(c *gin.Context) {
	var req request.ProductFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	filter, ok := parseProductFilter(c, &req)
	if !ok {
		return
	}

	products, err := h.productService.GetByFilter(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Products retrieved successfully", products)
}

func parseProductFilter(c *gin.Context, req *request.ProductFilterRequest) (model.ProductFilter, bool) {
	var filter model.ProductFilter
	if req.CategoryID != "" {
		id, err := uuid.Parse(req.CategoryID)
		if err != nil {
			response.BadRequest(c, "Invalid category ID format")
			return filter, false
		}
		filter.CategoryID = &id
	}
	if req.MinPrice != "" {
		price, err := decimal.NewFromString(req.MinPrice)
		if err != nil {
			response.BadRequest(c, "Invalid minPrice")
			return filter, false
		}
		filter.MinPrice = &price
	}
	if req.MaxPrice != "" {
		price, err := decimal.NewFromString(req.MaxPrice)
		if err != nil {
			response.BadRequest(c, "Invalid maxPrice")
			return filter, false
		}
		filter.MaxPrice = &price
	}
	return filter, true
}

// Get handles getting a single product
func (h *ProductHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	product, err := h.productService.GetByID(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product retrieved successfully", product)
}

// Create handles creating a product
func (h *ProductHandler) Create(c *gin.Context) {
	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &model.ProductModel{
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Product created successfully", product)
}

// Update handles updating a product
func (h *ProductHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	var req request.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	product, err := h.productService.Update(c.Request.Context(), &model.ProductModel{
		ID:         id,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		Price:      req.Price,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product updated successfully", product)
}

// Delete handles deleting a product
func (h *ProductHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id", "product")
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Product deleted successfully", nil)
}

// ListCategories handles listing product categories
func (h *ProductHandler) ListCategories(c *gin.Context) {
	categories, err := h.productService.GetAllCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Categories retrieved successfully", categories)
}

// CreateCategory handles creating a product category
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.productService.AddCategory(c.Request.Context(), &model.ProductCategoryModel{Name: req.Name})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Category created successfully", category)
}

// UpdateCategory handles renaming a product category
func (h *ProductHandler) UpdateCategory(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	var req request.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	category, err := h.productService.UpdateCategory(c.Request.Context(), &model.ProductCategoryModel{ID: id, Name: req.Name})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category updated successfully", category)
}

// DeleteCategory handles deleting a product category
func (h *ProductHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseID(c, "id", "category")
	if !ok {
		return
	}

	if err := h.productService.RemoveCategory(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Category deleted successfully", nil)
}
