package availability

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetdesk/booking-api/internal/model"
)

type stubBookingRepo struct {
	confirmedIDs []uuid.UUID
	err          error
}

func (s *stubBookingRepo) Create(context.Context, *model.Booking) error { return nil }
func (s *stubBookingRepo) Get(context.Context, uuid.UUID) (*model.Booking, error) {
	return nil, nil
}
func (s *stubBookingRepo) GetByNumber(context.Context, string) (*model.Booking, error) {
	return nil, nil
}
func (s *stubBookingRepo) Update(context.Context, *model.Booking) error { return nil }
func (s *stubBookingRepo) List(context.Context, *model.BookingFilters) ([]*model.Booking, error) {
	return nil, nil
}
func (s *stubBookingRepo) Confirm(context.Context, uuid.UUID) error { return nil }
func (s *stubBookingRepo) ConfirmedVeterinarianIDs(context.Context, uuid.UUID, string, string) ([]uuid.UUID, error) {
	return s.confirmedIDs, s.err
}

type stubVetSource struct {
	vets []*model.Veterinarian
	err  error
}

func (s *stubVetSource) ActiveVeterinarians(context.Context, uuid.UUID) ([]*model.Veterinarian, error) {
	return s.vets, s.err
}

func vet(id uuid.UUID, name string) *model.Veterinarian {
	v := &model.Veterinarian{Name: name, IsActive: true}
	v.ID = id
	return v
}

func TestAvailableVeterinariansExcludesConfirmed(t *testing.T) {
	clinicID := uuid.New()
	busy := uuid.New()
	free := uuid.New()

	svc := NewService(
		&stubBookingRepo{confirmedIDs: []uuid.UUID{busy}},
		&stubVetSource{vets: []*model.Veterinarian{vet(busy, "Dr. Kim"), vet(free, "Dr. Lee")}},
	)

	available, err := svc.AvailableVeterinarians(context.Background(), clinicID, "2026-09-02", "10:00")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, free, available[0].ID)
}

func TestAvailableVeterinariansPendingDoesNotBlock(t *testing.T) {
	// The repository only ever reports confirmed bookings, so a vet whose
	// only booking at the slot is pending or cancelled stays available.
	vetID := uuid.New()

	svc := NewService(
		&stubBookingRepo{confirmedIDs: nil},
		&stubVetSource{vets: []*model.Veterinarian{vet(vetID, "Dr. Kim")}},
	)

	available, err := svc.AvailableVeterinarians(context.Background(), uuid.New(), "2026-09-02", "10:00")
	require.NoError(t, err)
	require.Len(t, available, 1)
	assert.Equal(t, vetID, available[0].ID)
}

func TestAvailableVeterinariansEmptyMeansZeroMatches(t *testing.T) {
	busy := uuid.New()

	svc := NewService(
		&stubBookingRepo{confirmedIDs: []uuid.UUID{busy}},
		&stubVetSource{vets: []*model.Veterinarian{vet(busy, "Dr. Kim")}},
	)

	available, err := svc.AvailableVeterinarians(context.Background(), uuid.New(), "2026-09-02", "10:00")
	require.NoError(t, err)
	assert.Empty(t, available)
	assert.NotNil(t, available)
}

func TestAvailableVeterinariansPropagatesErrors(t *testing.T) {
	svc := NewService(
		&stubBookingRepo{err: errors.New("db down")},
		&stubVetSource{},
	)
	_, err := svc.AvailableVeterinarians(context.Background(), uuid.New(), "2026-09-02", "10:00")
	assert.Error(t, err)

	svc = NewService(
		&stubBookingRepo{},
		&stubVetSource{err: errors.New("db down")},
	)
	_, err = svc.AvailableVeterinarians(context.Background(), uuid.New(), "2026-09-02", "10:00")
	assert.Error(t, err)
}
