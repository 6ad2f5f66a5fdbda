package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/model"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_GetByFilter(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})

	fruit, err := env.products.AddCategory(ctx, &model.ProductCategoryModel{Name: "Fruit"})
	require.NoError(t, err)
	for _, p := range []model.ProductModel{
		{Name: "Apple", Price: dec("1.20"), CategoryID: &fruit.ID},
		{Name: "Banana", Price: dec("0.80"), CategoryID: &fruit.ID},
		{Name: "Cheese", Price: dec("7.90")},
	} {
		_, err := env.products.Create(ctx, &p)
		require.NoError(t, err)
	}

	names := func(products []model.ProductModel) []string {
		out := make([]string, 0, len(products))
		for _, p := range products {
			out = append(out, p.Name)
		}
		return out
	}

	all, err := env.products.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Banana", "Cheese"}, names(all))

	inFruit, err := env.products.GetByFilter(ctx, model.ProductFilter{CategoryID: &fruit.ID})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Banana"}, names(inFruit))
	assert.Equal(t, "Fruit", inFruit[0].CategoryName)

	lo, hi := dec("0.80"), dec("1.20")
	priced, err := env.products.GetByFilter(ctx, model.ProductFilter{MinPrice: &lo, MaxPrice: &hi})
	require.NoError(t, err)
	assert.Equal(t, []string{"Apple", "Banana"}, names(priced))
}

func TestProductService_CreateValidatesBeforeStoring(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})

	_, err := env.products.Create(ctx, &model.ProductModel{Name: "Broken", Price: dec("-1")})
	assert.True(t, apperror.IsValidation(err))

	missing := uuid.New()
	_, err = env.products.Create(ctx, &model.ProductModel{Name: "Orphan", Price: dec("1"), CategoryID: &missing})
	assert.EqualError(t, err, "Product category not found")

	all, err := env.products.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductService_DeleteRemovesReceiptLines(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})
	receiptID := env.receipt(t, env.customer(t, 0), time.Now())
	productID := env.product(t, "Bread", "2.40")
	require.NoError(t, env.receipts.AddProduct(ctx, productID, receiptID, 2))

	require.NoError(t, env.products.Delete(ctx, productID))

	assert.Empty(t, env.lines(t, receiptID))
	_, err := env.products.GetByID(ctx, productID)
	assert.True(t, apperror.IsNotFound(err))
	assert.True(t, apperror.IsNotFound(env.products.Delete(ctx, productID)))
}

func TestProductService_Categories(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})

	dairy, err := env.products.AddCategory(ctx, &model.ProductCategoryModel{Name: "Dairy"})
	require.NoError(t, err)
	milk, err := env.products.Create(ctx, &model.ProductModel{Name: "Milk", Price: dec("1.05"), CategoryID: &dairy.ID})
	require.NoError(t, err)

	renamed, err := env.products.UpdateCategory(ctx, &model.ProductCategoryModel{ID: dairy.ID, Name: "Milk products"})
	require.NoError(t, err)
	assert.Equal(t, "Milk products", renamed.Name)

	categories, err := env.products.GetAllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, []uuid.UUID{milk.ID}, categories[0].ProductIDs)

	_, err = env.products.AddCategory(ctx, &model.ProductCategoryModel{Name: " "})
	assert.True(t, apperror.IsValidation(err))

	_, err = env.products.UpdateCategory(ctx, &model.ProductCategoryModel{ID: uuid.New(), Name: "Ghost"})
	assert.True(t, apperror.IsNotFound(err))

	// Removing a category keeps its products
	require.NoError(t, env.products.RemoveCategory(ctx, dairy.ID))
	product, err := env.products.GetByID(ctx, milk.ID)
	require.NoError(t, err)
	assert.Nil(t, product.CategoryID)

	categories, err = env.products.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}
