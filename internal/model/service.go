package model

import (
	"github.com/google/uuid"
)

// Service is a named, priced, timed offering. Bookings capture the service id
// at creation time; existing bookings are never retroactively renamed.
type Service struct {
	Base
	ClinicID        uuid.UUID `db:"clinic_id" json:"clinic_id"`
	Name            string    `db:"name" json:"name"`
	Description     string    `db:"description" json:"description,omitempty"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Price           float64   `db:"price" json:"price"`
	IsActive        bool      `db:"is_active" json:"is_active"`
}

type CreateServiceRequest struct {
	ClinicID        string  `json:"clinic_id" binding:"required,uuid"`
	Name            string  `json:"name" binding:"required,max=100"`
	Description     string  `json:"description" binding:"max=500"`
	DurationMinutes int     `json:"duration_minutes" binding:"required,min=5,max=480"`
	Price           float64 `json:"price" binding:"min=0"`
}

type UpdateServiceRequest struct {
	Name            *string  `json:"name" binding:"omitempty,max=100"`
	Description     *string  `json:"description" binding:"omitempty,max=500"`
	DurationMinutes *int     `json:"duration_minutes" binding:"omitempty,min=5,max=480"`
	Price           *float64 `json:"price" binding:"omitempty,min=0"`
	IsActive        *bool    `json:"is_active"`
}
