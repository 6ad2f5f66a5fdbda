package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sangkips/trademarket-api/internal/domain/entity"
	"github.com/sangkips/trademarket-api/pkg/apperror"
)

// CustomerModel is the flattened view of a customer and its person
type CustomerModel struct {
	ID            uuid.UUID   `json:"id"`
	Name          string      `json:"name"`
	Surname       string      `json:"surname"`
	BirthDate     time.Time   `json:"birth_date"`
	DiscountValue int         `json:"discount_value"`
	ReceiptIDs    []uuid.UUID `json:"receipts_ids"`
}

// Validate checks the customer invariants
func (m *CustomerModel) Validate() error {
	if m == nil {
		return apperror.NewNullModelError("Customer")
	}
	if m.DiscountValue < 0 {
		return apperror.NewValidationError("Customer", "discount_value", "must not be negative")
	}
	if strings.TrimSpace(m.Name) == "" {
		return apperror.NewValidationError("Customer", "name", "must not be empty")
	}
	if strings.TrimSpace(m.Surname) == "" {
		return apperror.NewValidationError("Customer", "surname", "must not be empty")
	}
	birth := m.BirthDate.UTC()
	if birth.Before(MinBirthDate) || birth.After(MaxBirthDate) {
		return apperror.NewValidationError("Customer", "birth_date",
			"must be between "+MinBirthDate.Format(time.DateOnly)+" and "+MaxBirthDate.Format(time.DateOnly))
	}
	return nil
}

// FromCustomer maps a customer entity. The person must be loaded.
func FromCustomer(c *entity.Customer) CustomerModel {
	m := CustomerModel{
		ID:            c.ID,
		Name:          c.Person.Name,
		Surname:       c.Person.Surname,
		BirthDate:     c.Person.BirthDate,
		DiscountValue: c.DiscountValue,
		ReceiptIDs:    make([]uuid.UUID, 0, len(c.Receipts)),
	}
	for _, r := range c.Receipts {
		m.ReceiptIDs = append(m.ReceiptIDs, r.ID)
	}
	return m
}

// FromCustomers maps a customer slice
func FromCustomers(customers []entity.Customer) []CustomerModel {
	out := make([]CustomerModel, 0, len(customers))
	for i := range customers {
		out = append(out, FromCustomer(&customers[i]))
	}
	return out
}
