package model

import (
	"github.com/google/uuid"
)

type Veterinarian struct {
	Base
	ClinicID       uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name           string    `db:"name" json:"name"`
	Email          string    `db:"email" json:"email,omitempty"`
	Phone          string    `db:"phone" json:"phone,omitempty"`
	Specialization string    `db:"specialization" json:"specialization,omitempty"`
	IsActive       bool      `db:"is_active" json:"is_active"`
}

type CreateVeterinarianRequest struct {
	ClinicID       string `json:"clinic_id" binding:"required,uuid"`
	Name           string `json:"name" binding:"required,max=100"`
	Email          string `json:"email" binding:"omitempty,email"`
	Phone          string `json:"phone" binding:"max=30"`
	Specialization string `json:"specialization" binding:"max=100"`
}

type UpdateVeterinarianRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=100"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone" binding:"omitempty,max=30"`
	Specialization *string `json:"specialization" binding:"omitempty,max=100"`
	IsActive       *bool   `json:"is_active"`
}
