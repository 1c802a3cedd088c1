package entities

import "time"

// Role is the access tier of a user account.
type Role string

const (
	RoleAdmin Role = "ADMIN"
	RoleFree  Role = "FREE"
	RolePro   Role = "PRO"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleFree, RolePro:
		return true
	}
	return false
}

// User represents a user entity in the database
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:text"` // UUID
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"` // Don't expose password hash in JSON
	Name         string    `json:"nome" gorm:"not null"`
	Avatar       *string   `json:"avatar,omitempty"`
	Bio          *string   `json:"bio,omitempty"`
	Role         Role      `json:"role" gorm:"type:text;not null;default:FREE"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UpdatedBy    *string   `json:"updatedBy,omitempty"`
}

func (User) TableName() string { return "users" }
