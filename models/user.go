package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:320;not null;uniqueIndex" json:"email,omitempty"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	FirstName string    `gorm:"size:128" json:"first_name,omitempty"`
	LastName  string    `gorm:"size:128" json:"last_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
