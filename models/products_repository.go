package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type ProductsRepository struct {
	db *gorm.DB
}

func NewProductsRepository(db *gorm.DB) *ProductsRepository {
	return &ProductsRepository{
		db: db,
	}
}

// GetProducts returns all active products sorted by name.
func (r *ProductsRepository) GetProducts() ([]Product, error) {
	var products []Product
	if err := r.db.
		Preload("Category").
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) GetByID(id uint) (*Product, error) {
	var product Product
	if err := r.db.
		Preload("Category").
		First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	return &product, nil
}

func (r *ProductsRepository) GetByCategory(categoryID uint) ([]Product, error) {
	var products []Product
	if err := r.db.
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("name ASC").
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetLowStock returns active tracked products at or below their threshold.
// Untracked products never appear here no matter what their stock column says.
func (r *ProductsRepository) GetLowStock() ([]Product, error) {
	var products []Product
	if err := r.db.
		Where("is_active = ? AND track_inventory = ? AND stock_quantity <= low_stock_threshold",
			true, true).
		Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *ProductsRepository) Create(product *Product) error {
	return r.db.Create(product).Error
}

func (r *ProductsRepository) Update(id uint, fields map[string]any) (*Product, error) {
	fields["updated_at"] = time.Now()
	res := r.db.Model(&Product{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(id)
}

// UpdateStock applies a signed delta to the product's stock quantity. The
// update is relative ("stock = stock + delta") so interleaved writers cannot
// overwrite each other's movements.
func (r *ProductsRepository) UpdateStock(id uint, delta int) (*Product, error) {
	res := r.db.Model(&Product{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"stock_quantity": gorm.Expr("stock_quantity + ?", delta),
			"updated_at":     time.Now(),
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}
	return r.GetByID(id)
}

// Delete soft-deletes: historical orders keep referencing the row.
func (r *ProductsRepository) Delete(id uint) error {
	res := r.db.Model(&Product{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
