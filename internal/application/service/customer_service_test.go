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

func TestCustomerService_CreateRejectsInvalidModel(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})

	_, err := env.customers.Create(ctx, &model.CustomerModel{
		Name:      "Young",
		Surname:   "Buyer",
		BirthDate: time.Date(2010, time.June, 1, 0, 0, 0, 0, time.UTC),
	})
	require.Error(t, err)
	assert.True(t, apperror.IsValidation(err))

	all, err := env.customers.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestCustomerService_GetByProductID(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})
	buyer := env.customer(t, 5)
	other := env.customer(t, 0)
	bread := env.product(t, "Bread", "2.40")
	milk := env.product(t, "Milk", "1.05")

	require.NoError(t, env.receipts.AddProduct(ctx, bread, env.receipt(t, buyer, time.Now()), 1))
	require.NoError(t, env.receipts.AddProduct(ctx, milk, env.receipt(t, other, time.Now()), 1))

	got, err := env.customers.GetByProductID(ctx, bread)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, buyer, got[0].ID)

	none, err := env.customers.GetByProductID(ctx, uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestCustomerService_Update(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})
	id := env.customer(t, 5)
	receiptID := env.receipt(t, id, time.Now())

	customer, err := env.customers.GetByID(ctx, id)
	require.NoError(t, err)
	customer.Surname = "King"
	customer.DiscountValue = 15

	updated, err := env.customers.Update(ctx, customer)
	require.NoError(t, err)
	assert.Equal(t, "King", updated.Surname)
	assert.Equal(t, 15, updated.DiscountValue)
	assert.Equal(t, []uuid.UUID{receiptID}, updated.ReceiptIDs)

	customer.ID = uuid.New()
	_, err = env.customers.Update(ctx, customer)
	assert.True(t, apperror.IsNotFound(err))
}

func TestCustomerService_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t, ReceiptOptions{})
	id := env.customer(t, 0)
	receiptID := env.receipt(t, id, time.Now())
	productID := env.product(t, "Bread", "2.40")
	require.NoError(t, env.receipts.AddProduct(ctx, productID, receiptID, 1))

	require.NoError(t, env.customers.Delete(ctx, id))

	_, err := env.customers.GetByID(ctx, id)
	assert.True(t, apperror.IsNotFound(err))
	_, err = env.receipts.GetByID(ctx, receiptID)
	assert.True(t, apperror.IsNotFound(err))

	product, err := env.products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.Empty(t, product.ReceiptLineIDs)
}
