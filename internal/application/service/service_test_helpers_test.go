package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/model"
	"github.com/sangkips/trademarket-api/internal/domain/repository"
	"github.com/sangkips/trademarket-api/internal/infrastructure/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type testEnv struct {
	tm        repository.TransactionManager
	receipts  *ReceiptService
	products  *ProductService
	customers *CustomerService
}

func newTestEnv(t *testing.T, opts ReceiptOptions) *testEnv {
	t.Helper()
	logger := zaptest.NewLogger(t)
	tm := memory.NewStore().NewTransactionManager()
	return &testEnv{
		tm:        tm,
		receipts:  NewReceiptService(tm, opts, logger),
		products:  NewProductService(tm, logger),
		customers: NewCustomerService(tm, logger),
	}
}

func (e *testEnv) customer(t *testing.T, discount int) uuid.UUID {
	t.Helper()
	c, err := e.customers.Create(context.Background(), &model.CustomerModel{
		Name:          "Ada",
		Surname:       "Lovelace",
		BirthDate:     time.Date(1985, time.December, 10, 0, 0, 0, 0, time.UTC),
		DiscountValue: discount,
	})
	require.NoError(t, err)
	return c.ID
}

func (e *testEnv) product(t *testing.T, name, price string) uuid.UUID {
	t.Helper()
	p, err := e.products.Create(context.Background(), &model.ProductModel{
		Name:  name,
		Price: decimal.RequireFromString(price),
	})
	require.NoError(t, err)
	return p.ID
}

func (e *testEnv) receipt(t *testing.T, customerID uuid.UUID, at time.Time) uuid.UUID {
	t.Helper()
	r, err := e.receipts.Create(context.Background(), &model.ReceiptModel{
		CustomerID:    customerID,
		OperationDate: at,
	})
	require.NoError(t, err)
	return r.ID
}

func (e *testEnv) lines(t *testing.T, receiptID uuid.UUID) []model.ReceiptLineModel {
	t.Helper()
	lines, err := e.receipts.GetReceiptDetails(context.Background(), receiptID)
	require.NoError(t, err)
	return lines
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
