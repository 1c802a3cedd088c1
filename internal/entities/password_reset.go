package entities

import "time"

// PasswordResetToken is a single-use credential issued by forgot-password.
// Email is a plain column, not a foreign key to users.
type PasswordResetToken struct {
	ID        string    `gorm:"primaryKey;type:text"`
	Email     string    `gorm:"index;not null"`
	Token     string    `gorm:"uniqueIndex;not null"`
	ExpiresAt time.Time `gorm:"not null"`
	Used      bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
}

func (PasswordResetToken) TableName() string { return "password_resets" }

// Expired reports whether the token is past its expiry at now.
func (t *PasswordResetToken) Expired(now time.Time) bool {
	return !now.Before(t.ExpiresAt)
}
