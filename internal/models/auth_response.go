package models

import (
	"time"

	"focototal-be/internal/entities"
)

// UserResponse is the redacted user projection returned to clients.
type UserResponse struct {
	ID        string        `json:"id"`
	Name      string        `json:"nome"`
	Email     string        `json:"email"`
	Username  string        `json:"username"`
	Avatar    *string       `json:"avatar,omitempty"`
	Bio       *string       `json:"bio,omitempty"`
	Role      entities.Role `json:"role"`
	CreatedAt time.Time     `json:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt"`
}

func NewUserResponse(u *entities.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Username:  u.Username,
		Avatar:    u.Avatar,
		Bio:       u.Bio,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// LoginResponse represents the response after successful authentication
type LoginResponse struct {
	Token string       `json:"token"` // JWT token
	User  UserResponse `json:"user"`
}

// RegisterResponse represents the response after user registration
type RegisterResponse struct {
	Message string       `json:"message"`
	User    UserResponse `json:"user"`
}

type MeResponse struct {
	User UserResponse `json:"user"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
