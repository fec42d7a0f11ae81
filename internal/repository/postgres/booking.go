package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

type bookingRepository struct {
	BaseRepository
}

func NewBookingRepository(db *sqlx.DB) repository.BookingRepository {
	return &bookingRepository{NewBaseRepository(db)}
}

const bookingColumns = `
	id, booking_number, clinic_id, service_id, veterinarian_id, user_id,
	booking_date, booking_time, status,
	customer_name, customer_phone, customer_email,
	pet_name, pet_species, pet_age, symptoms, admin_notes, source,
	created_at, updated_at
`

func (r *bookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	query := `
		INSERT INTO bookings (` + bookingColumns + `)
		VALUES (
			:id, :booking_number, :clinic_id, :service_id, :veterinarian_id, :user_id,
			:booking_date, :booking_time, :status,
			:customer_name, :customer_phone, :customer_email,
			:pet_name, :pet_species, :pet_age, :symptoms, :admin_notes, :source,
			:created_at, :updated_at
		)
	`
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, booking); err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) Get(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE id = $1`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) GetByNumber(ctx context.Context, number string) (*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE booking_number = $1`

	var booking model.Booking
	err := r.db.GetContext(ctx, &booking, query, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get booking by number: %w", err)
	}
	return &booking, nil
}

func (r *bookingRepository) Update(ctx context.Context, booking *model.Booking) error {
	query := `
		UPDATE bookings
		SET booking_date = :booking_date,
			booking_time = :booking_time,
			veterinarian_id = :veterinarian_id,
			status = :status,
			admin_notes = :admin_notes,
			updated_at = :updated_at
		WHERE id = :id
	`
	booking.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, booking)
	if err != nil {
		return fmt.Errorf("failed to update booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE clinic_id = $1`
	args := []interface{}{filters.ClinicID}
	argCount := 2

	if filters.VeterinarianID != nil {
		query += fmt.Sprintf(" AND veterinarian_id = $%d", argCount)
		args = append(args, *filters.VeterinarianID)
		argCount++
	}
	if filters.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argCount)
		args = append(args, filters.Status)
		argCount++
	}
	if filters.DateFrom != "" {
		query += fmt.Sprintf(" AND booking_date >= $%d", argCount)
		args = append(args, filters.DateFrom)
		argCount++
	}
	if filters.DateTo != "" {
		query += fmt.Sprintf(" AND booking_date <= $%d", argCount)
		args = append(args, filters.DateTo)
		argCount++
	}

	query += " ORDER BY booking_date ASC, booking_time ASC"

	if filters.PageSize > 0 {
		page := filters.Page
		if page < 1 {
			page = 1
		}
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", argCount, argCount+1)
		args = append(args, filters.PageSize, (page-1)*filters.PageSize)
	}

	var bookings []*model.Booking
	if err := r.db.SelectContext(ctx, &bookings, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

func (r *bookingRepository) ConfirmedVeterinarianIDs(ctx context.Context, clinicID uuid.UUID, date, clock string) ([]uuid.UUID, error) {
	query := `
		SELECT veterinarian_id
		FROM bookings
		WHERE clinic_id = $1
		AND booking_date = $2
		AND booking_time = $3
		AND status = 'confirmed'
		AND veterinarian_id IS NOT NULL
	`
	var ids []uuid.UUID
	if err := r.db.SelectContext(ctx, &ids, query, clinicID, date, clock); err != nil {
		return nil, fmt.Errorf("failed to get confirmed veterinarians: %w", err)
	}
	return ids, nil
}

// Confirm is a conditional write: the status flip lands only when the slot is
// not already held by another confirmed booking for the same veterinarian.
func (r *bookingRepository) Confirm(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE bookings b
		SET status = 'confirmed', updated_at = $1
		WHERE b.id = $2
		AND b.status = 'pending'
		AND NOT EXISTS (
			SELECT 1 FROM bookings o
			WHERE o.clinic_id = b.clinic_id
			AND o.booking_date = b.booking_date
			AND o.booking_time = b.booking_time
			AND o.veterinarian_id IS NOT DISTINCT FROM b.veterinarian_id
			AND o.status = 'confirmed'
			AND o.id != b.id
		)
	`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to confirm booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrSlotTaken
	}
	return nil
}
