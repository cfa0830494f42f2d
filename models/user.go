package models

import "time"

// User is an authenticated member of the restaurant staff.
// IDs are strings because sessions mint them outside the database.
type User struct {
	ID        string `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;not null"`
	FirstName string
	LastName  string
	Role      string `gorm:"not null;default:staff"`
	IsActive  bool   `gorm:"not null;default:true"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (u *User) TableName() string {
	return "users"
}
