package booking

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	"github.com/vetdesk/booking-api/internal/schedule"
	"github.com/vetdesk/booking-api/internal/service/event"
)

var (
	ErrPastDate       = fmt.Errorf("booking date must not be in the past")
	ErrSlotNotAligned = fmt.Errorf("booking time must sit on a 30-minute slot")
)

// ServiceSource resolves the offered service a booking references; in
// production it is the read-through cache.
type ServiceSource interface {
	GetService(ctx context.Context, id uuid.UUID) (*model.Service, error)
	GetVeterinarian(ctx context.Context, id uuid.UUID) (*model.Veterinarian, error)
}

// Notifier delivers customer-facing booking notifications.
type Notifier interface {
	SendStatusChange(ctx context.Context, booking *model.Booking) error
}

type Service struct {
	repo     repository.BookingRepository
	lookups  ServiceSource
	events   *event.Service
	notifier Notifier
	now      func() time.Time
}

func NewService(repo repository.BookingRepository, lookups ServiceSource, events *event.Service, notifier Notifier) *Service {
	return &Service{
		repo:     repo,
		lookups:  lookups,
		events:   events,
		notifier: notifier,
		now:      time.Now,
	}
}

// CreateBooking inserts a new request in pending status. Pending bookings do
// not reserve the slot; the clinic picks among competing requests at
// confirmation time.
func (s *Service) CreateBooking(ctx context.Context, req *model.CreateBookingRequest) (*model.Booking, error) {
	if !schedule.IsSlotAligned(req.BookingTime) {
		return nil, ErrSlotNotAligned
	}
	if req.BookingDate < s.now().Format("2006-01-02") {
		return nil, ErrPastDate
	}

	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id: %w", err)
	}
	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("invalid service id: %w", err)
	}

	svc, err := s.lookups.GetService(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve service: %w", err)
	}
	if !svc.IsActive {
		return nil, fmt.Errorf("service %s is not bookable", svc.Name)
	}

	booking := &model.Booking{
		BookingNumber: newBookingNumber(s.now()),
		ClinicID:      clinicID,
		ServiceID:     serviceID,
		BookingDate:   req.BookingDate,
		BookingTime:   req.BookingTime,
		Status:        model.BookingStatusPending,
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		PetName:       req.PetName,
		PetSpecies:    req.PetSpecies,
		PetAge:        req.PetAge,
		Symptoms:      req.Symptoms,
		Source:        model.BookingSourceDirect,
	}
	booking.ID = uuid.New()

	if req.Source != "" {
		booking.Source = model.BookingSource(req.Source)
	}
	if req.VeterinarianID != nil {
		vetID, err := uuid.Parse(*req.VeterinarianID)
		if err != nil {
			return nil, fmt.Errorf("invalid veterinarian id: %w", err)
		}
		vet, err := s.lookups.GetVeterinarian(ctx, vetID)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve veterinarian: %w", err)
		}
		if !vet.IsActive {
			return nil, fmt.Errorf("veterinarian %s is not accepting bookings", vet.Name)
		}
		booking.VeterinarianID = &vetID
	}
	if req.UserID != nil {
		userID, err := uuid.Parse(*req.UserID)
		if err != nil {
			return nil, fmt.Errorf("invalid user id: %w", err)
		}
		booking.UserID = &userID
	}

	if err := s.repo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	s.record(ctx, "BOOKING_CREATED", booking)
	return booking, nil
}

func (s *Service) GetBooking(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) GetBookingByNumber(ctx context.Context, number string) (*model.Booking, error) {
	booking, err := s.repo.GetByNumber(ctx, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}
	return booking, nil
}

func (s *Service) ListBookings(ctx context.Context, filters *model.BookingFilters) ([]*model.Booking, error) {
	bookings, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus applies one lifecycle transition. Confirmation is a
// conditional write: it only lands when no other confirmed booking holds the
// same slot, so two admins racing over competing requests cannot
// double-confirm. Approving a booking never auto-cancels its competitors.
func (s *Service) UpdateStatus(ctx context.Context, id uuid.UUID, status model.BookingStatus) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if err := checkTransition(booking.Status, status); err != nil {
		return nil, err
	}

	if status == model.BookingStatusConfirmed {
		if err := s.repo.Confirm(ctx, id); err != nil {
			return nil, err
		}
	} else {
		booking.Status = status
		if err := s.repo.Update(ctx, booking); err != nil {
			return nil, fmt.Errorf("failed to update booking: %w", err)
		}
	}
	booking.Status = status

	s.record(ctx, "BOOKING_STATUS_CHANGED", booking)
	s.notify(ctx, booking)
	return booking, nil
}

// RescheduleBooking moves a booking to a new slot. A confirmed booking is
// reverted to pending and needs re-approval.
func (s *Service) RescheduleBooking(ctx context.Context, id uuid.UUID, newDate, newTime string) (*model.Booking, error) {
	if !schedule.IsSlotAligned(newTime) {
		return nil, ErrSlotNotAligned
	}
	if newDate < s.now().Format("2006-01-02") {
		return nil, ErrPastDate
	}

	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	if err := Reschedule(booking, newDate, newTime); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to reschedule booking: %w", err)
	}

	s.record(ctx, "BOOKING_RESCHEDULED", booking)
	s.notify(ctx, booking)
	return booking, nil
}

// UpdateNotes edits the admin memo; allowed in any status.
func (s *Service) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) (*model.Booking, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	booking.AdminNotes = notes
	if err := s.repo.Update(ctx, booking); err != nil {
		return nil, fmt.Errorf("failed to update booking notes: %w", err)
	}
	return booking, nil
}

func (s *Service) record(ctx context.Context, eventType string, booking *model.Booking) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, eventType, booking); err != nil {
		log.Warn().Err(err).Str("booking_number", booking.BookingNumber).Msg("failed to record change-feed event")
	}
}

func (s *Service) notify(ctx context.Context, booking *model.Booking) {
	if s.notifier == nil || booking.CustomerEmail == "" {
		return
	}
	if err := s.notifier.SendStatusChange(ctx, booking); err != nil {
		log.Warn().Err(err).Str("booking_number", booking.BookingNumber).Msg("failed to send booking notification")
	}
}

// newBookingNumber builds the human-readable identifier, e.g. VB-20260830-4F2A1C.
func newBookingNumber(now time.Time) string {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand is best effort here; fall back to a uuid fragment.
		return fmt.Sprintf("VB-%s-%s", now.Format("20060102"),
			strings.ToUpper(uuid.New().String()[:6]))
	}
	return fmt.Sprintf("VB-%s-%X", now.Format("20060102"), buf)
}
