package models

import (
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens a throwaway sqlite database with the full schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "pos_test.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&User{},
		&Restaurant{},
		&Category{},
		&Product{},
		&Order{},
		&OrderItem{},
		&InventoryTransaction{},
		&Notification{},
	))

	return db
}

// seedProduct inserts a tracked or untracked product and returns it.
func seedProduct(t *testing.T, db *gorm.DB, name string, tracked bool, stock, threshold int) *Product {
	t.Helper()

	category := Category{Name: "Mains", IsActive: true}
	require.NoError(t, db.FirstOrCreate(&category, Category{Name: "Mains"}).Error)

	product := &Product{
		Name:              name,
		Price:             decimal.NewFromFloat(4.00),
		CategoryID:        category.ID,
		TrackInventory:    tracked,
		StockQuantity:     stock,
		LowStockThreshold: threshold,
		IsActive:          true,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}
