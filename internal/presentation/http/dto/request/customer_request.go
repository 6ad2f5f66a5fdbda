package request

import "time"

// CustomerRequest represents a customer create or update request
type CustomerRequest struct {
	Name          string    `json:"name" binding:"required,max=255"`
	Surname       string    `json:"surname" binding:"required,max=255"`
	BirthDate     time.Time `json:"birth_date" binding:"required"`
	DiscountValue int       `json:"discount_value"`
}
