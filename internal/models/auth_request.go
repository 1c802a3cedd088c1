package models

import (
	"strings"

	"focototal-be/internal/entities"
)

// LoginRequest represents the request body for user login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"senha" binding:"required,min=6"`
}

func (r *LoginRequest) Normalize() {
	r.Email = strings.TrimSpace(r.Email)
}

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Name     string        `json:"nome" binding:"required,min=2,max=100"`
	Email    string        `json:"email" binding:"required,email"`
	Password string        `json:"senha" binding:"required,min=6,maxbytes=72"`
	Role     entities.Role `json:"role" binding:"omitempty,oneof=ADMIN FREE PRO"`
	Username string        `json:"username" binding:"omitempty,min=3,max=50"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	if r.Role == "" {
		r.Role = entities.RoleFree
	}
}

type ForgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

func (r *ForgotPasswordRequest) Normalize() {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

type ResetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"novaSenha" binding:"required,min=6,maxbytes=72"`
}

func (r *ResetPasswordRequest) Normalize() {
	r.Token = strings.TrimSpace(r.Token)
}

// CreateUserRequest is the admin-only provisioning payload. The password is
// generated server side and mailed to the new user.
type CreateUserRequest struct {
	Name     string        `json:"nome" binding:"required,min=2,max=100"`
	Email    string        `json:"email" binding:"required,email"`
	Role     entities.Role `json:"role" binding:"omitempty,oneof=ADMIN FREE PRO"`
	Username string        `json:"username" binding:"omitempty,min=3,max=50"`
}

func (r *CreateUserRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Username = strings.TrimSpace(r.Username)
	if r.Role == "" {
		r.Role = entities.RoleFree
	}
}
