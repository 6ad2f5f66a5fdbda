package entity

import (
	"github.com/sangkips/trademarket-api/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// SlipHeader holds the store header printed at the top of a slip.
type SlipHeader struct {
	StoreName string `json:"store_name"`
}

// SlipItem represents a single printed receipt line.
type SlipItem struct {
	Name              string          `json:"name"`
	Quantity          int             `json:"quantity"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	DiscountUnitPrice decimal.Decimal `json:"discount_unit_price"`
	Total             decimal.Decimal `json:"total"`
}

// Slip is the printable form of a receipt.
// It is not persisted; it is composed from a receipt with its lines at print time.
type Slip struct {
	Header   SlipHeader         `json:"header"`
	Number   string             `json:"number"`
	Date     string             `json:"date"`
	Customer string             `json:"customer,omitempty"`
	Discount int                `json:"discount"`
	Status   enum.ReceiptStatus `json:"status"`
	Items    []SlipItem         `json:"items"`
	Total    decimal.Decimal    `json:"total"`
}
