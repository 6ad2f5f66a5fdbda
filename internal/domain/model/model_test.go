package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/pkg/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCustomer() *CustomerModel {
	return &CustomerModel{
		Name:          "Ada",
		Surname:       "Lovelace",
		BirthDate:     time.Date(1985, time.December, 10, 0, 0, 0, 0, time.UTC),
		DiscountValue: 10,
	}
}

func TestCustomerModel_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(m *CustomerModel)
		wantErr string
	}{
		{"valid", func(*CustomerModel) {}, ""},
		{"negative discount", func(m *CustomerModel) { m.DiscountValue = -1 }, "Customer discount_value must not be negative"},
		{"blank name", func(m *CustomerModel) { m.Name = "  " }, "Customer name must not be empty"},
		{"empty surname", func(m *CustomerModel) { m.Surname = "" }, "Customer surname must not be empty"},
		{"born 2010", func(m *CustomerModel) { m.BirthDate = time.Date(2010, time.March, 1, 0, 0, 0, 0, time.UTC) }, "birth_date"},
		{"born 1899", func(m *CustomerModel) { m.BirthDate = time.Date(1899, time.December, 31, 0, 0, 0, 0, time.UTC) }, "birth_date"},
		{"lower bound", func(m *CustomerModel) { m.BirthDate = MinBirthDate }, ""},
		{"upper bound", func(m *CustomerModel) { m.BirthDate = MaxBirthDate }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := validCustomer()
			tt.mutate(m)

			err := m.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, apperror.IsValidation(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NilModels(t *testing.T) {
	var customer *CustomerModel
	var product *ProductModel
	var receipt *ReceiptModel
	var line *ReceiptLineModel

	assert.EqualError(t, Validate(customer), "Customer cannot be null")
	assert.EqualError(t, Validate(product), "Product cannot be null")
	assert.EqualError(t, Validate(receipt), "Receipt cannot be null")
	assert.EqualError(t, Validate(line), "ReceiptDetail cannot be null")
	assert.EqualError(t, Validate(nil), "Model cannot be null")
}

func TestProductModel_Validate(t *testing.T) {
	assert.NoError(t, (&ProductModel{Name: "Milk", Price: decimal.Zero}).Validate())
	assert.EqualError(t, (&ProductModel{Name: "Milk", Price: decimal.NewFromInt(-1)}).Validate(), "Product price must not be negative")
	assert.EqualError(t, (&ProductModel{Price: decimal.NewFromInt(1)}).Validate(), "Product name must not be empty")
	assert.EqualError(t, (&ProductCategoryModel{}).Validate(), "ProductCategory name must not be empty")
}

func TestReceiptLineModel_Validate(t *testing.T) {
	valid := func() *ReceiptLineModel {
		return &ReceiptLineModel{
			ReceiptID:         uuid.New(),
			ProductID:         uuid.New(),
			Quantity:          1,
			UnitPrice:         decimal.RequireFromString("1.50"),
			DiscountUnitPrice: decimal.RequireFromString("1.35"),
		}
	}

	assert.NoError(t, valid().Validate())

	m := valid()
	m.Quantity = 0
	assert.EqualError(t, m.Validate(), "ReceiptDetail quantity must be positive")

	m = valid()
	m.UnitPrice = decimal.Zero
	assert.EqualError(t, m.Validate(), "ReceiptDetail unit_price must be positive")

	m = valid()
	m.DiscountUnitPrice = decimal.NewFromInt(-1)
	assert.EqualError(t, m.Validate(), "ReceiptDetail discount_unit_price must not be negative")

	m = valid()
	m.ProductID = uuid.Nil
	assert.EqualError(t, m.Validate(), "ReceiptDetail product_id is required")
}

func TestReceiptModel_RequiresCustomer(t *testing.T) {
	assert.EqualError(t, (&ReceiptModel{}).Validate(), "Receipt customer_id is required")
	assert.NoError(t, (&ReceiptModel{CustomerID: uuid.New()}).Validate())
}

func TestProductFilter_Match(t *testing.T) {
	fruit := uuid.New()
	apple := &entity.Product{Name: "Apple", CategoryID: &fruit, Price: decimal.RequireFromString("1.20")}
	cheese := &entity.Product{Name: "Cheese", Price: decimal.RequireFromString("7.90")}

	lo := decimal.RequireFromString("1.20")
	hi := decimal.RequireFromString("7.90")

	assert.True(t, ProductFilter{}.Match(cheese))
	assert.True(t, ProductFilter{CategoryID: &fruit}.Match(apple))
	assert.False(t, ProductFilter{CategoryID: &fruit}.Match(cheese))
	// bounds are inclusive
	assert.True(t, ProductFilter{MinPrice: &lo, MaxPrice: &hi}.Match(apple))
	assert.True(t, ProductFilter{MinPrice: &lo, MaxPrice: &hi}.Match(cheese))

	tooCheap := decimal.RequireFromString("1.21")
	assert.False(t, ProductFilter{MinPrice: &tooCheap}.Match(apple))
}

func TestFromReceipt_Status(t *testing.T) {
	r := &entity.Receipt{
		ID:           uuid.New(),
		CustomerID:   uuid.New(),
		IsCheckedOut: true,
		Lines:        []entity.ReceiptLine{{ID: uuid.New()}, {ID: uuid.New()}},
	}

	m := FromReceipt(r)
	assert.True(t, m.Status.IsCheckedOut())
	assert.Equal(t, []uuid.UUID{r.Lines[0].ID, r.Lines[1].ID}, m.ReceiptLineIDs)
}
