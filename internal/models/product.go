package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Product struct {
	ID                  string    `json:"id" gorm:"primaryKey;size:36"`
	ItemName            string    `json:"item_name" gorm:"uniqueIndex;not null"`
	Category            string    `json:"category" gorm:"index;not null"`
	Unit                string    `json:"unit" gorm:"not null"` // kg, bunch, piece, ...
	DefaultPricePerUnit float64   `json:"default_price_per_unit" gorm:"not null"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}
