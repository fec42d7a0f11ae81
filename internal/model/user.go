package model

import (
	"github.com/google/uuid"
)

// AdminUser is a clinic staff account used for the admin route group.
type AdminUser struct {
	Base
	ClinicID     uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Name         string    `db:"name" json:"name"`
	IsActive     bool      `db:"is_active" json:"is_active"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginResponse struct {
	Token     string     `json:"token"`
	ExpiresAt int64      `json:"expires_at"`
	User      *AdminUser `json:"user"`
}

type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	ClinicID uuid.UUID `json:"clinic_id"`
	Email    string    `json:"email"`
}
