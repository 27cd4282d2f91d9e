package models

import (
	"time"
)

type User struct {
	ID           int64     `gorm:"primaryKey" json:"id"`
	Login        string    `gorm:"uniqueIndex;not null" json:"login"`
	PasswordHash string    `gorm:"column:password_hash;not null" json:"-"` // Not show in JSON
	CreatedAt    time.Time `json:"created_at"`
}

func (User) TableName() string {
	return "users"
}
