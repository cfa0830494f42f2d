package models

import (
	"errors"

	"gorm.io/gorm"
)

type InventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) *InventoryRepository {
	return &InventoryRepository{
		db: db,
	}
}

// GetTransactions lists ledger entries newest first. With a product id the
// full history for that product is returned; without one the listing is
// capped at the most recent 100 rows.
func (r *InventoryRepository) GetTransactions(productID uint) ([]InventoryTransaction, error) {
	var entries []InventoryTransaction
	query := r.db.Preload("Product").Order("created_at DESC")
	if productID != 0 {
		query = query.Where("product_id = ?", productID)
	} else {
		query = query.Limit(100)
	}
	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CreateTransaction appends a ledger entry and applies its quantity to the
// product's stock in the same transaction, so a crash between the two writes
// can never desynchronize stock from the ledger. The quantity is signed and
// applied as-is; the resulting stock level is allowed to go negative.
func (r *InventoryRepository) CreateTransaction(entry *InventoryTransaction) error {
	if !ValidTransactionType(entry.Type) {
		return ErrInvalidTransactionType
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		var product Product
		if err := tx.First(&product, entry.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrProductNotFound
			}
			return err
		}

		if err := tx.Create(entry).Error; err != nil {
			return err
		}

		return tx.Model(&Product{}).
			Where("id = ?", entry.ProductID).
			Update("stock_quantity", gorm.Expr("stock_quantity + ?", entry.Quantity)).Error
	})
}
