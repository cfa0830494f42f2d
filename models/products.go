package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a sellable menu item.
// Stock fields are only meaningful while TrackInventory is set; the low-stock
// query ignores untracked products entirely. StockQuantity may go negative:
// sales are never clamped against the current level.
type Product struct {
	ID                uint            `gorm:"primaryKey"`
	Name              string          `gorm:"not null"`
	Description       string
	Price             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Cost              decimal.Decimal `gorm:"type:decimal(10,2)"`
	CategoryID        uint            `gorm:"index;not null"`
	Category          Category        `gorm:"foreignKey:CategoryID"`
	TrackInventory    bool            `gorm:"not null;default:false"`
	StockQuantity     int             `gorm:"not null;default:0"`
	LowStockThreshold int             `gorm:"not null;default:0"`
	IsActive          bool            `gorm:"not null;default:true"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

func (p *Product) TableName() string {
	return "products"
}

// LowStock reports whether the product is tracked and at or below its threshold.
func (p *Product) LowStock() bool {
	return p.TrackInventory && p.StockQuantity <= p.LowStockThreshold
}
