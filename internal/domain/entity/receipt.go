package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MoneyScale is the number of fractional digits kept for prices
const MoneyScale = 2

var hundred = decimal.NewFromInt(100)

// DiscountedPrice applies an integer percent discount to price: price * (100 - discount) / 100,
// truncated to MoneyScale digits.
func DiscountedPrice(price decimal.Decimal, discount int) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(100 - discount))).Div(hundred).Truncate(MoneyScale)
}

// Receipt is a sales basket owned by one customer
type Receipt struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"customer_id"`
	OperationDate time.Time `gorm:"not null;index" json:"operation_date"`
	IsCheckedOut  bool      `gorm:"not null;default:false" json:"is_checked_out"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Customer *Customer     `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Lines    []ReceiptLine `gorm:"foreignKey:ReceiptID" json:"lines,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt
func (r *Receipt) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Receipt model
func (Receipt) TableName() string {
	return "receipts"
}

// Line returns the line for productID, or nil when the product is not on the receipt
func (r *Receipt) Line(productID uuid.UUID) *ReceiptLine {
	for i := range r.Lines {
		if r.Lines[i].ProductID == productID {
			return &r.Lines[i]
		}
	}
	return nil
}

// Total sums quantity * discounted unit price over the loaded lines
func (r *Receipt) Total() decimal.Decimal {
	total := decimal.Zero
	for i := range r.Lines {
		total = total.Add(r.Lines[i].Total())
	}
	return total
}

// Discount returns the owning customer's discount, zero when the customer is not loaded
func (r *Receipt) Discount() int {
	if r.Customer == nil {
		return 0
	}
	return r.Customer.DiscountValue
}

// ReceiptLine is one product entry on a receipt with prices frozen at creation time
type ReceiptLine struct {
	ID                uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	ReceiptID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_lines_receipt_product" json:"receipt_id"`
	ProductID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_receipt_lines_receipt_product;index" json:"product_id"`
	Quantity          int             `gorm:"not null" json:"quantity"`
	UnitPrice         decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"unit_price"`
	DiscountUnitPrice decimal.Decimal `gorm:"type:numeric(18,2);not null" json:"discount_unit_price"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`

	// Relationships
	Product *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// BeforeCreate generates a UUID before creating a new receipt line
func (l *ReceiptLine) BeforeCreate(tx *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the ReceiptLine model
func (ReceiptLine) TableName() string {
	return "receipt_lines"
}

// Total returns quantity * discounted unit price
func (l *ReceiptLine) Total() decimal.Decimal {
	return l.DiscountUnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
