package entity

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDiscountedPrice(t *testing.T) {
	tests := []struct {
		price    string
		discount int
		want     string
	}{
		{"100.00", 10, "90"},
		{"100.00", 0, "100"},
		{"100.00", 100, "0"},
		{"9.99", 15, "8.49"}, // 8.4915 truncated
		{"0.01", 50, "0"},
	}

	for _, tt := range tests {
		got := DiscountedPrice(decimal.RequireFromString(tt.price), tt.discount)
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "%s at %d%%: got %s", tt.price, tt.discount, got)
	}
}

func TestReceipt_TotalAndLine(t *testing.T) {
	apple, bread := uuid.New(), uuid.New()
	r := &Receipt{
		Lines: []ReceiptLine{
			{ProductID: apple, Quantity: 3, UnitPrice: decimal.RequireFromString("100"), DiscountUnitPrice: decimal.RequireFromString("90")},
			{ProductID: bread, Quantity: 2, UnitPrice: decimal.RequireFromString("2.40"), DiscountUnitPrice: decimal.RequireFromString("2.16")},
		},
	}

	assert.True(t, r.Total().Equal(decimal.RequireFromString("274.32")))
	assert.Equal(t, 2, r.Line(bread).Quantity)
	assert.Nil(t, r.Line(uuid.New()))

	// Line points into the slice so callers can edit it in place
	r.Line(apple).Quantity = 5
	assert.Equal(t, 5, r.Lines[0].Quantity)
}

func TestReceipt_EmptyTotalIsZero(t *testing.T) {
	r := &Receipt{}
	assert.True(t, r.Total().IsZero())
	assert.Equal(t, 0, r.Discount())

	r.Customer = &Customer{DiscountValue: 7}
	assert.Equal(t, 7, r.Discount())
}

func TestCustomer_HasBought(t *testing.T) {
	product := uuid.New()
	c := &Customer{
		Receipts: []Receipt{
			{Lines: []ReceiptLine{{ProductID: uuid.New()}}},
			{Lines: []ReceiptLine{{ProductID: product}}},
		},
	}

	assert.True(t, c.HasBought(product))
	assert.False(t, c.HasBought(uuid.New()))
}

func TestProduct_InCategory(t *testing.T) {
	category := uuid.New()
	assert.True(t, (&Product{CategoryID: &category}).InCategory(category))
	assert.False(t, (&Product{}).InCategory(category))
}
