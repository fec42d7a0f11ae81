package booking

import (
	"context"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

type fakeBookingRepo struct {
	bookings    map[uuid.UUID]*model.Booking
	confirmErr  error
	confirmed   []uuid.UUID
	updateCalls int
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: make(map[uuid.UUID]*model.Booking)}
}

func (f *fakeBookingRepo) Create(_ context.Context, b *model.Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (f *fakeBookingRepo) GetByNumber(_ context.Context, number string) (*model.Booking, error) {
	for _, b := range f.bookings {
		if b.BookingNumber == number {
			return b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeBookingRepo) Update(_ context.Context, b *model.Booking) error {
	f.updateCalls++
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) List(_ context.Context, _ *model.BookingFilters) ([]*model.Booking, error) {
	var out []*model.Booking
	for _, b := range f.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (f *fakeBookingRepo) ConfirmedVeterinarianIDs(context.Context, uuid.UUID, string, string) ([]uuid.UUID, error) {
	return nil, nil
}

func (f *fakeBookingRepo) Confirm(_ context.Context, id uuid.UUID) error {
	if f.confirmErr != nil {
		return f.confirmErr
	}
	f.confirmed = append(f.confirmed, id)
	f.bookings[id].Status = model.BookingStatusConfirmed
	return nil
}

type fakeLookups struct {
	service *model.Service
	vet     *model.Veterinarian
}

func (f *fakeLookups) GetService(context.Context, uuid.UUID) (*model.Service, error) {
	if f.service == nil {
		return nil, repository.ErrNotFound
	}
	return f.service, nil
}

func (f *fakeLookups) GetVeterinarian(context.Context, uuid.UUID) (*model.Veterinarian, error) {
	if f.vet == nil {
		return nil, repository.ErrNotFound
	}
	return f.vet, nil
}

func activeService() *model.Service {
	return &model.Service{Name: "Checkup", DurationMinutes: 30, IsActive: true}
}

func newTestService(repo *fakeBookingRepo, lookups *fakeLookups) *Service {
	svc := NewService(repo, lookups, nil, nil)
	return svc
}

func validCreateRequest() *model.CreateBookingRequest {
	return &model.CreateBookingRequest{
		ClinicID:      uuid.New().String(),
		ServiceID:     uuid.New().String(),
		BookingDate:   "2099-01-04",
		BookingTime:   "10:30",
		CustomerName:  "Hana Park",
		CustomerPhone: "010-1234-5678",
		PetName:       "Mongshil",
	}
}

func seedBooking(repo *fakeBookingRepo, status model.BookingStatus) *model.Booking {
	b := &model.Booking{
		BookingNumber: "VB-20990104-TEST01",
		ClinicID:      uuid.New(),
		ServiceID:     uuid.New(),
		BookingDate:   "2099-01-04",
		BookingTime:   "10:30",
		Status:        status,
	}
	b.ID = uuid.New()
	repo.bookings[b.ID] = b
	return b
}

func TestCreateBookingStartsPending(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeLookups{service: activeService()})

	booking, err := svc.CreateBooking(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, booking.Status)
	assert.Equal(t, model.BookingSourceDirect, booking.Source)
	assert.Regexp(t, regexp.MustCompile(`^VB-\d{8}-[0-9A-F]{6}$`), booking.BookingNumber)
}

func TestCreateBookingRejectsUnalignedTime(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeLookups{service: activeService()})

	req := validCreateRequest()
	req.BookingTime = "10:15"

	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrSlotNotAligned)
}

func TestCreateBookingRejectsPastDate(t *testing.T) {
	svc := newTestService(newFakeBookingRepo(), &fakeLookups{service: activeService()})

	req := validCreateRequest()
	req.BookingDate = "2020-01-01"

	_, err := svc.CreateBooking(context.Background(), req)
	assert.ErrorIs(t, err, ErrPastDate)
}

func TestCreateBookingRejectsInactiveService(t *testing.T) {
	inactive := activeService()
	inactive.IsActive = false
	svc := newTestService(newFakeBookingRepo(), &fakeLookups{service: inactive})

	_, err := svc.CreateBooking(context.Background(), validCreateRequest())
	assert.Error(t, err)
}

func TestCreateBookingKeepsExternalSource(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeLookups{service: activeService()})

	req := validCreateRequest()
	req.Source = "ai_pet_doctor"

	booking, err := svc.CreateBooking(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, model.BookingSourceAIPetDoctor, booking.Source)
}

func TestUpdateStatusApprovesViaConditionalConfirm(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeLookups{})
	b := seedBooking(repo, model.BookingStatusPending)

	updated, err := svc.UpdateStatus(context.Background(), b.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusConfirmed, updated.Status)
	assert.Equal(t, []uuid.UUID{b.ID}, repo.confirmed)
	// the plain update path must not be used for confirmation
	assert.Zero(t, repo.updateCalls)
}

func TestUpdateStatusConfirmLosesRace(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.confirmErr = repository.ErrSlotTaken
	svc := newTestService(repo, &fakeLookups{})
	b := seedBooking(repo, model.BookingStatusPending)

	_, err := svc.UpdateStatus(context.Background(), b.ID, model.BookingStatusConfirmed)
	assert.ErrorIs(t, err, repository.ErrSlotTaken)
	assert.Equal(t, model.BookingStatusPending, repo.bookings[b.ID].Status)
}

func TestUpdateStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    model.BookingStatus
		to      model.BookingStatus
		allowed bool
	}{
		{"approve pending", model.BookingStatusPending, model.BookingStatusConfirmed, true},
		{"reject pending", model.BookingStatusPending, model.BookingStatusCancelled, true},
		{"complete pending", model.BookingStatusPending, model.BookingStatusCompleted, false},
		{"no-show pending", model.BookingStatusPending, model.BookingStatusNoShow, false},
		{"complete confirmed", model.BookingStatusConfirmed, model.BookingStatusCompleted, true},
		{"no-show confirmed", model.BookingStatusConfirmed, model.BookingStatusNoShow, true},
		{"cancel confirmed", model.BookingStatusConfirmed, model.BookingStatusCancelled, true},
		{"revert confirmed", model.BookingStatusConfirmed, model.BookingStatusPending, true},
		{"mutate cancelled", model.BookingStatusCancelled, model.BookingStatusPending, false},
		{"mutate completed", model.BookingStatusCompleted, model.BookingStatusConfirmed, false},
		{"mutate no-show", model.BookingStatusNoShow, model.BookingStatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeBookingRepo()
			svc := newTestService(repo, &fakeLookups{})
			b := seedBooking(repo, tt.from)

			_, err := svc.UpdateStatus(context.Background(), b.ID, tt.to)
			if tt.allowed {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidTransition)
			}
		})
	}
}

func TestRescheduleConfirmedRevertsToPending(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeLookups{})
	b := seedBooking(repo, model.BookingStatusConfirmed)

	updated, err := svc.RescheduleBooking(context.Background(), b.ID, "2099-01-05", "14:00")
	require.NoError(t, err)

	assert.Equal(t, model.BookingStatusPending, updated.Status)
	assert.Equal(t, "2099-01-05", updated.BookingDate)
	assert.Equal(t, "14:00", updated.BookingTime)
}

func TestReschedulePendingStaysPending(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeLookups{})
	b := seedBooking(repo, model.BookingStatusPending)

	updated, err := svc.RescheduleBooking(context.Background(), b.ID, "2099-01-05", "09:00")
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusPending, updated.Status)
}

func TestRescheduleTerminalRejected(t *testing.T) {
	for _, status := range []model.BookingStatus{
		model.BookingStatusCancelled,
		model.BookingStatusCompleted,
		model.BookingStatusNoShow,
	} {
		repo := newFakeBookingRepo()
		svc := newTestService(repo, &fakeLookups{})
		b := seedBooking(repo, status)

		_, err := svc.RescheduleBooking(context.Background(), b.ID, "2099-01-05", "09:00")
		assert.ErrorIs(t, err, ErrInvalidTransition, "status %s", status)
	}
}

func TestRescheduleRejectsUnalignedTime(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeLookups{})
	b := seedBooking(repo, model.BookingStatusConfirmed)

	_, err := svc.RescheduleBooking(context.Background(), b.ID, "2099-01-05", "09:10")
	assert.ErrorIs(t, err, ErrSlotNotAligned)
}

func TestUpdateNotesAllowedInTerminalState(t *testing.T) {
	repo := newFakeBookingRepo()
	svc := newTestService(repo, &fakeLookups{})
	b := seedBooking(repo, model.BookingStatusCompleted)

	updated, err := svc.UpdateNotes(context.Background(), b.ID, "paid in cash")
	require.NoError(t, err)
	assert.Equal(t, "paid in cash", updated.AdminNotes)
	assert.Equal(t, model.BookingStatusCompleted, updated.Status)
}
