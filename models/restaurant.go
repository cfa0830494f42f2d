package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Restaurant holds the single row of venue settings.
type Restaurant struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Address   string
	Phone     string
	Email     string
	TaxRate   decimal.Decimal `gorm:"type:decimal(5,2)"`
	Currency  string          `gorm:"not null;default:USD"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (r *Restaurant) TableName() string {
	return "restaurants"
}
