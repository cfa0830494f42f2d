package models

import "gorm.io/gorm"

type NotificationsRepository struct {
	db *gorm.DB
}

func NewNotificationsRepository(db *gorm.DB) *NotificationsRepository {
	return &NotificationsRepository{
		db: db,
	}
}

// GetNotifications lists alerts newest first. With a user id the full history
// for that user is returned; without one the latest 50 rows across all users.
func (r *NotificationsRepository) GetNotifications(userID string) ([]Notification, error) {
	var notifications []Notification
	query := r.db.Order("created_at DESC")
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	} else {
		query = query.Limit(50)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *NotificationsRepository) Create(notification *Notification) error {
	return r.db.Create(notification).Error
}

func (r *NotificationsRepository) MarkAsRead(id uint) error {
	res := r.db.Model(&Notification{}).Where("id = ?", id).Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}
