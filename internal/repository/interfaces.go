package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/model"
)

var (
	// ErrNotFound is returned when a row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSlotTaken is returned when a conditional confirm loses the race for
	// a slot that already holds a confirmed booking.
	ErrSlotTaken = errors.New("slot already confirmed for another booking")
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	GetByNumber(ctx context.Context, number string) (*model.Booking, error)
	Update(ctx context.Context, booking *model.Booking) error
	List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error)
	// ConfirmedVeterinarianIDs returns the veterinarians holding a confirmed
	// booking at the exact slot.
	ConfirmedVeterinarianIDs(ctx context.Context, clinicID uuid.UUID, date, clock string) ([]uuid.UUID, error)
	// Confirm flips a pending booking to confirmed only if no other confirmed
	// booking holds the same (clinic, veterinarian, date, time); returns
	// ErrSlotTaken otherwise.
	Confirm(ctx context.Context, id uuid.UUID) error
}

type ScheduleRepository interface {
	// GetWeeklyHours returns up to 7 rows ordered by day_of_week. A nil
	// veterinarianID selects the clinic-wide schedule.
	GetWeeklyHours(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID) ([]*model.WeeklyHours, error)
	// ReplaceWeeklyHours upserts a full week in one transaction.
	ReplaceWeeklyHours(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID, days []*model.WeeklyHours) error
	ListClosedDates(ctx context.Context, clinicID uuid.UUID, from string) ([]*model.ClosedDate, error)
	CreateClosedDate(ctx context.Context, cd *model.ClosedDate) error
	DeleteClosedDate(ctx context.Context, id uuid.UUID) error
	// IsClosedOn reports a clinic-wide closed date, or a vet-scoped one when
	// veterinarianID is set.
	IsClosedOn(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID, date string) (bool, error)
}

type VeterinarianRepository interface {
	Create(ctx context.Context, vet *model.Veterinarian) error
	Get(ctx context.Context, id uuid.UUID) (*model.Veterinarian, error)
	Update(ctx context.Context, vet *model.Veterinarian) error
	ListActive(ctx context.Context, clinicID uuid.UUID) ([]*model.Veterinarian, error)
	List(ctx context.Context, clinicID uuid.UUID) ([]*model.Veterinarian, error)
}

type ServiceRepository interface {
	Create(ctx context.Context, svc *model.Service) error
	Get(ctx context.Context, id uuid.UUID) (*model.Service, error)
	Update(ctx context.Context, svc *model.Service) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, clinicID uuid.UUID, activeOnly bool) ([]*model.Service, error)
}

type ClinicRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*model.Clinic, error)
	Update(ctx context.Context, clinic *model.Clinic) error
}

type AdminUserRepository interface {
	GetByEmail(ctx context.Context, email string) (*model.AdminUser, error)
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errorMessage *string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
