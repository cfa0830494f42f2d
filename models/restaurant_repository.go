package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type RestaurantRepository struct {
	db *gorm.DB
}

func NewRestaurantRepository(db *gorm.DB) *RestaurantRepository {
	return &RestaurantRepository{
		db: db,
	}
}

// Get returns the single settings row.
func (r *RestaurantRepository) Get() (*Restaurant, error) {
	var restaurant Restaurant
	if err := r.db.First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRestaurantNotFound
		}
		return nil, err
	}
	return &restaurant, nil
}

func (r *RestaurantRepository) Create(restaurant *Restaurant) error {
	return r.db.Create(restaurant).Error
}

func (r *RestaurantRepository) Update(id uint, fields map[string]any) (*Restaurant, error) {
	fields["updated_at"] = time.Now()
	res := r.db.Model(&Restaurant{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrRestaurantNotFound
	}
	return r.Get()
}
