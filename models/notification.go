package models

import "time"

// Notification is a dashboard alert for a user.
type Notification struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    string `gorm:"index"`
	Title     string `gorm:"not null"`
	Message   string
	Type      string `gorm:"not null;default:info"`
	IsRead    bool   `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (n *Notification) TableName() string {
	return "notifications"
}
