package models

import (
	"time"
)

// RefreshToken is one entry of the refresh token ledger.
// Consumed moves from false to true exactly once, on rotation.
type RefreshToken struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	UserID    int64     `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Token     string    `gorm:"uniqueIndex;not null" json:"token"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	Consumed  bool      `gorm:"not null;default:false" json:"consumed"`
	CreatedAt time.Time `json:"created_at"`
}

func (RefreshToken) TableName() string {
	return "refresh_tokens"
}

// Active reports whether the entry may still be rotated at the given instant.
func (t *RefreshToken) Active(now time.Time) bool {
	return !t.Consumed && now.Before(t.ExpiresAt)
}
