package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Person holds the personal data of a customer
type Person struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Surname   string    `gorm:"size:255;not null" json:"surname"`
	BirthDate time.Time `gorm:"not null" json:"birth_date"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID before creating a new person
func (p *Person) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Person model
func (Person) TableName() string {
	return "persons"
}

// Customer is a buyer with a personal discount applied to every new receipt line
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	PersonID      uuid.UUID `gorm:"type:uuid;not null;index" json:"person_id"`
	DiscountValue int       `gorm:"not null;default:0" json:"discount_value"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	Person   Person    `gorm:"foreignKey:PersonID" json:"person"`
	Receipts []Receipt `gorm:"foreignKey:CustomerID" json:"receipts,omitempty"`
}

// BeforeCreate generates a UUID before creating a new customer
func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Customer model
func (Customer) TableName() string {
	return "customers"
}

// HasBought reports whether any receipt of the customer has a line for productID.
// Receipts and their lines must be loaded.
func (c *Customer) HasBought(productID uuid.UUID) bool {
	for i := range c.Receipts {
		if c.Receipts[i].Line(productID) != nil {
			return true
		}
	}
	return false
}
