package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	schedulecore "github.com/vetdesk/booking-api/internal/schedule"
)

// ErrPastDate rejects closed dates created for days already gone.
var ErrPastDate = fmt.Errorf("date must not be in the past")

type Service struct {
	repo repository.ScheduleRepository
	now  func() time.Time
}

func NewService(repo repository.ScheduleRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// GetWeeklyHours returns the 7 weekday rows for a clinic or veterinarian.
// A clinic with no configuration yet gets the default schedule. Veterinarian
// hours are auto-initialized from the clinic's hours on first fetch.
func (s *Service) GetWeeklyHours(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID) ([]*model.WeeklyHours, error) {
	hours, err := s.repo.GetWeeklyHours(ctx, clinicID, veterinarianID)
	if err != nil {
		return nil, fmt.Errorf("failed to get weekly hours: %w", err)
	}
	if len(hours) == 7 {
		return hours, nil
	}

	if veterinarianID == nil {
		return s.defaultWeek(clinicID), nil
	}

	clinicHours, err := s.GetWeeklyHours(ctx, clinicID, nil)
	if err != nil {
		return nil, err
	}

	seeded := make([]*model.WeeklyHours, len(clinicHours))
	for i, h := range clinicHours {
		day := *h
		seeded[i] = &day
	}
	if err := s.repo.ReplaceWeeklyHours(ctx, clinicID, veterinarianID, seeded); err != nil {
		return nil, fmt.Errorf("failed to initialize veterinarian hours: %w", err)
	}
	return seeded, nil
}

// HoursForDate resolves the effective schedule for one calendar date,
// honoring closed-date exceptions. A veterinarian inherits clinic-wide
// closures on top of their own.
func (s *Service) HoursForDate(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID, date string) (*model.WeeklyHours, bool, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, false, fmt.Errorf("invalid date %q: %w", date, err)
	}

	closed, err := s.repo.IsClosedOn(ctx, clinicID, veterinarianID, date)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check closed dates: %w", err)
	}
	if closed {
		return nil, true, nil
	}

	week, err := s.GetWeeklyHours(ctx, clinicID, veterinarianID)
	if err != nil {
		return nil, false, err
	}

	weekday := int(day.Weekday())
	for _, h := range week {
		if h.DayOfWeek == weekday {
			return h, false, nil
		}
	}
	return schedulecore.DefaultHours(weekday), false, nil
}

// DaySlots expands a date into its bookable grid. A closed day reports
// Closed=true so callers render it as a day off rather than fully booked.
func (s *Service) DaySlots(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID, date string) (*model.DaySlots, error) {
	hours, closed, err := s.HoursForDate(ctx, clinicID, veterinarianID, date)
	if err != nil {
		return nil, err
	}
	if closed {
		return &model.DaySlots{Date: date, Closed: true}, nil
	}

	slots := schedulecore.Slots(hours)
	return &model.DaySlots{
		Date:   date,
		Closed: !hours.IsOpen,
		Slots:  slots,
	}, nil
}

// SaveWeeklyHours validates a full week and replaces it atomically. The save
// is all-or-nothing: the first invalid day aborts with a day-named error
// before any write.
func (s *Service) SaveWeeklyHours(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID, days []model.WeeklyHoursEntry) error {
	if err := schedulecore.ValidateWeek(days); err != nil {
		return err
	}

	rows := make([]*model.WeeklyHours, len(days))
	for i, day := range days {
		rows[i] = &model.WeeklyHours{
			DayOfWeek:  day.DayOfWeek,
			IsOpen:     day.IsOpen,
			Is24H:      day.Is24H,
			OpenTime:   day.OpenTime,
			CloseTime:  day.CloseTime,
			BreakStart: day.BreakStart,
			BreakEnd:   day.BreakEnd,
		}
	}

	if err := s.repo.ReplaceWeeklyHours(ctx, clinicID, veterinarianID, rows); err != nil {
		return fmt.Errorf("failed to save weekly hours: %w", err)
	}
	return nil
}

func (s *Service) ListClosedDates(ctx context.Context, clinicID uuid.UUID) ([]*model.ClosedDate, error) {
	from := s.now().Format("2006-01-02")
	dates, err := s.repo.ListClosedDates(ctx, clinicID, from)
	if err != nil {
		return nil, fmt.Errorf("failed to list closed dates: %w", err)
	}
	return dates, nil
}

func (s *Service) CreateClosedDate(ctx context.Context, clinicID uuid.UUID, veterinarianID *uuid.UUID, date, reason string) (*model.ClosedDate, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	today := s.now().Format("2006-01-02")
	if day.Format("2006-01-02") < today {
		return nil, ErrPastDate
	}

	cd := &model.ClosedDate{
		ClinicID:       clinicID,
		VeterinarianID: veterinarianID,
		Date:           date,
		Reason:         reason,
	}
	if err := s.repo.CreateClosedDate(ctx, cd); err != nil {
		return nil, fmt.Errorf("failed to create closed date: %w", err)
	}
	return cd, nil
}

// DeleteClosedDate is a hard delete; the confirmation step lives in the
// client.
func (s *Service) DeleteClosedDate(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteClosedDate(ctx, id); err != nil {
		return fmt.Errorf("failed to delete closed date: %w", err)
	}
	return nil
}

func (s *Service) defaultWeek(clinicID uuid.UUID) []*model.WeeklyHours {
	week := make([]*model.WeeklyHours, 7)
	for i := 0; i < 7; i++ {
		day := schedulecore.DefaultHours(i)
		day.ClinicID = clinicID
		week[i] = day
	}
	return week
}
