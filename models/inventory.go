package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Ledger entry types. Sales and waste carry negative quantities, purchases
// positive; adjustments may go either way.
const (
	TransactionTypeSale       = "sale"
	TransactionTypePurchase   = "purchase"
	TransactionTypeAdjustment = "adjustment"
	TransactionTypeWaste      = "waste"
)

// ValidTransactionType reports whether t is a known ledger reason code.
func ValidTransactionType(t string) bool {
	switch t {
	case TransactionTypeSale, TransactionTypePurchase,
		TransactionTypeAdjustment, TransactionTypeWaste:
		return true
	}
	return false
}

// InventoryTransaction is one append-only stock ledger entry. Rows are never
// updated or deleted; the sum of a product's quantities equals the net stock
// movement since the product was created.
type InventoryTransaction struct {
	ID        uint            `gorm:"primaryKey"`
	ProductID uint            `gorm:"index;not null"`
	Product   Product         `gorm:"foreignKey:ProductID"`
	Type      string          `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	UnitCost  decimal.Decimal `gorm:"type:decimal(10,2)"`
	TotalCost decimal.Decimal `gorm:"type:decimal(10,2)"`
	Reference string
	CreatedBy string
	CreatedAt time.Time `gorm:"index"`
}

func (t *InventoryTransaction) TableName() string {
	return "inventory_transactions"
}
