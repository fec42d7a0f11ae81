package model

import (
	"github.com/google/uuid"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusNoShow    BookingStatus = "no_show"
)

// IsTerminal reports whether no further status transitions are allowed.
func (s BookingStatus) IsTerminal() bool {
	switch s {
	case BookingStatusCancelled, BookingStatusCompleted, BookingStatusNoShow:
		return true
	}
	return false
}

type BookingSource string

const (
	BookingSourceDirect      BookingSource = "direct"
	BookingSourceAIPetDoctor BookingSource = "ai_pet_doctor"
)

type Booking struct {
	Base
	BookingNumber  string        `db:"booking_number" json:"booking_number"`
	ClinicID       uuid.UUID     `db:"clinic_id" json:"clinic_id"`
	ServiceID      uuid.UUID     `db:"service_id" json:"service_id"`
	VeterinarianID *uuid.UUID    `db:"veterinarian_id" json:"veterinarian_id,omitempty"`
	UserID         *uuid.UUID    `db:"user_id" json:"user_id,omitempty"`
	BookingDate    string        `db:"booking_date" json:"booking_date"` // "2006-01-02"
	BookingTime    string        `db:"booking_time" json:"booking_time"` // "HH:MM", slot-aligned
	Status         BookingStatus `db:"status" json:"status"`
	CustomerName   string        `db:"customer_name" json:"customer_name"`
	CustomerPhone  string        `db:"customer_phone" json:"customer_phone"`
	CustomerEmail  string        `db:"customer_email" json:"customer_email,omitempty"`
	PetName        string        `db:"pet_name" json:"pet_name"`
	PetSpecies     string        `db:"pet_species" json:"pet_species,omitempty"`
	PetAge         *int          `db:"pet_age" json:"pet_age,omitempty"`
	Symptoms       string        `db:"symptoms" json:"symptoms,omitempty"`
	AdminNotes     string        `db:"admin_notes" json:"admin_notes,omitempty"`
	Source         BookingSource `db:"source" json:"source"`
}

type CreateBookingRequest struct {
	ClinicID       string  `json:"clinic_id" binding:"required,uuid"`
	ServiceID      string  `json:"service_id" binding:"required,uuid"`
	VeterinarianID *string `json:"veterinarian_id" binding:"omitempty,uuid"`
	UserID         *string `json:"user_id" binding:"omitempty,uuid"`
	BookingDate    string  `json:"booking_date" binding:"required,datetime=2006-01-02"`
	BookingTime    string  `json:"booking_time" binding:"required,hhmm"`
	CustomerName   string  `json:"customer_name" binding:"required,max=100"`
	CustomerPhone  string  `json:"customer_phone" binding:"required,max=30"`
	CustomerEmail  string  `json:"customer_email" binding:"omitempty,email"`
	PetName        string  `json:"pet_name" binding:"required,max=100"`
	PetSpecies     string  `json:"pet_species" binding:"max=50"`
	PetAge         *int    `json:"pet_age" binding:"omitempty,min=0,max=100"`
	Symptoms       string  `json:"symptoms" binding:"max=2000"`
	Source         string  `json:"source" binding:"omitempty,oneof=direct ai_pet_doctor"`
}

type UpdateBookingStatusRequest struct {
	Status BookingStatus `json:"status" binding:"required,oneof=pending confirmed cancelled completed no_show"`
}

type RescheduleBookingRequest struct {
	BookingDate string `json:"booking_date" binding:"required,datetime=2006-01-02"`
	BookingTime string `json:"booking_time" binding:"required,hhmm"`
}

type UpdateBookingNotesRequest struct {
	AdminNotes string `json:"admin_notes" binding:"max=2000"`
}

type BookingFilters struct {
	ClinicID       uuid.UUID
	VeterinarianID *uuid.UUID
	Status         BookingStatus
	DateFrom       string
	DateTo         string
	Pagination
}
