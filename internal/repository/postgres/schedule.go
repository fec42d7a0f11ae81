package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

type scheduleRepository struct {
	BaseRepository
}

func NewScheduleRepository(db *sqlx.DB) repository.ScheduleRepository {
	return &scheduleRepository{NewBaseRepository(db)}
}

func (r *scheduleRepository) GetWeeklyHours(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID) ([]*model.WeeklyHours, error) {
	query := `
		SELECT id, clinic_id, veterinarian_id, day_of_week, is_open, is_24h,
			   open_time, close_time, break_start, break_end,
			   created_at, updated_at
		FROM weekly_hours
		WHERE clinic_id = $1
		AND veterinarian_id IS NOT DISTINCT FROM $2
		ORDER BY day_of_week ASC
	`
	var hours []*model.WeeklyHours
	if err := r.db.SelectContext(ctx, &hours, query, clinicID, veterinarianID); err != nil {
		return nil, fmt.Errorf("failed to get weekly hours: %w", err)
	}
	return hours, nil
}

// ReplaceWeeklyHours writes all 7 rows in one transaction so a failed save
// never leaves a torn week behind.
func (r *scheduleRepository) ReplaceWeeklyHours(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID, days []*model.WeeklyHours) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		del := `DELETE FROM weekly_hours WHERE clinic_id = $1 AND veterinarian_id IS NOT DISTINCT FROM $2`
		if _, err := tx.ExecContext(ctx, del, clinicID, veterinarianID); err != nil {
			return fmt.Errorf("failed to clear weekly hours: %w", err)
		}

		ins := `
			INSERT INTO weekly_hours (
				id, clinic_id, veterinarian_id, day_of_week, is_open, is_24h,
				open_time, close_time, break_start, break_end,
				created_at, updated_at
			) VALUES (
				:id, :clinic_id, :veterinarian_id, :day_of_week, :is_open, :is_24h,
				:open_time, :close_time, :break_start, :break_end,
				:created_at, :updated_at
			)
		`
		now := time.Now()
		for _, day := range days {
			day.ID = uuid.New()
			day.ClinicID = clinicID
			day.VeterinarianID = veterinarianID
			day.CreatedAt = now
			day.UpdatedAt = now

			if _, err := tx.NamedExecContext(ctx, ins, day); err != nil {
				return fmt.Errorf("failed to insert weekly hours for day %d: %w", day.DayOfWeek, err)
			}
		}
		return nil
	})
}

func (r *scheduleRepository) ListClosedDates(ctx context.Context, clinicID uuid.UUID, from string) ([]*model.ClosedDate, error) {
	query := `
		SELECT id, clinic_id, veterinarian_id, closed_on, reason, created_at, updated_at
		FROM closed_dates
		WHERE clinic_id = $1
		AND closed_on >= $2
		ORDER BY closed_on ASC
	`
	var dates []*model.ClosedDate
	if err := r.db.SelectContext(ctx, &dates, query, clinicID, from); err != nil {
		return nil, fmt.Errorf("failed to list closed dates: %w", err)
	}
	return dates, nil
}

func (r *scheduleRepository) CreateClosedDate(ctx context.Context, cd *model.ClosedDate) error {
	query := `
		INSERT INTO closed_dates (
			id, clinic_id, veterinarian_id, closed_on, reason, created_at, updated_at
		) VALUES (
			:id, :clinic_id, :veterinarian_id, :closed_on, :reason, :created_at, :updated_at
		)
	`
	cd.ID = uuid.New()
	cd.CreatedAt = time.Now()
	cd.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, cd); err != nil {
		return fmt.Errorf("failed to create closed date: %w", err)
	}
	return nil
}

func (r *scheduleRepository) DeleteClosedDate(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM closed_dates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete closed date: %w", err)
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

func (r *scheduleRepository) IsClosedOn(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID, date string) (bool, error) {
	// A clinic-wide closed date also closes every veterinarian.
	query := `
		SELECT EXISTS (
			SELECT 1 FROM closed_dates
			WHERE clinic_id = $1
			AND closed_on = $2
			AND (veterinarian_id IS NULL OR veterinarian_id IS NOT DISTINCT FROM $3)
		)
	`
	var closed bool
	if err := r.db.GetContext(ctx, &closed, query, clinicID, date, veterinarianID); err != nil {
		return false, fmt.Errorf("failed to check closed date: %w", err)
	}
	return closed, nil
}
