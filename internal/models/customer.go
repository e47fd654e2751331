package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Address is embedded into Customer rather than stored as its own table.
type Address struct {
	Street     string `json:"street" gorm:"not null"`
	City       string `json:"city" gorm:"not null"`
	PostalCode string `json:"postal_code" gorm:"not null"`
	Country    string `json:"country" gorm:"not null"`
}

type Customer struct {
	ID        string    `json:"id" gorm:"primaryKey;size:36"`
	Name      string    `json:"name" gorm:"not null"`
	Address   Address   `json:"address" gorm:"embedded;embeddedPrefix:address_"`
	Phone     string    `json:"phone" gorm:"uniqueIndex;not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
