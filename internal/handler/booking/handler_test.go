package booking

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetdesk/booking-api/internal/handler"
	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	"github.com/vetdesk/booking-api/internal/service/booking"
	"github.com/vetdesk/booking-api/pkg/metrics"
)

// promauto registers on the default registry, so the bundle is shared
// across tests.
var testMetrics = metrics.NewMetrics("vetdesk_test")

type stubRepo struct {
	bookings   map[uuid.UUID]*model.Booking
	confirmErr error
}

func newStubRepo() *stubRepo {
	return &stubRepo{bookings: make(map[uuid.UUID]*model.Booking)}
}

func (s *stubRepo) Create(_ context.Context, b *model.Booking) error {
	s.bookings[b.ID] = b
	return nil
}

func (s *stubRepo) Get(_ context.Context, id uuid.UUID) (*model.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (s *stubRepo) GetByNumber(_ context.Context, number string) (*model.Booking, error) {
	for _, b := range s.bookings {
		if b.BookingNumber == number {
			return b, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (s *stubRepo) Update(_ context.Context, b *model.Booking) error {
	s.bookings[b.ID] = b
	return nil
}

func (s *stubRepo) List(_ context.Context, _ *model.BookingFilters) ([]*model.Booking, error) {
	out := make([]*model.Booking, 0, len(s.bookings))
	for _, b := range s.bookings {
		out = append(out, b)
	}
	return out, nil
}

func (s *stubRepo) ConfirmedVeterinarianIDs(context.Context, uuid.UUID, string, string) ([]uuid.UUID, error) {
	return nil, nil
}

func (s *stubRepo) Confirm(_ context.Context, id uuid.UUID) error {
	if s.confirmErr != nil {
		return s.confirmErr
	}
	s.bookings[id].Status = model.BookingStatusConfirmed
	return nil
}

type stubLookups struct{}

func (stubLookups) GetService(context.Context, uuid.UUID) (*model.Service, error) {
	return &model.Service{Name: "Checkup", DurationMinutes: 30, IsActive: true}, nil
}

func (stubLookups) GetVeterinarian(context.Context, uuid.UUID) (*model.Veterinarian, error) {
	return &model.Veterinarian{Name: "Dr. Kim", IsActive: true}, nil
}

func setupRouter(t *testing.T, repo *stubRepo) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handler.RegisterValidations())

	svc := booking.NewService(repo, stubLookups{}, nil, nil)
	h := NewHandler(svc, testMetrics)

	r := gin.New()
	api := r.Group("/api/v1")
	h.RegisterRoutes(api)
	h.RegisterAdminRoutes(api.Group("/admin"))
	return r
}

func createBody() map[string]interface{} {
	return map[string]interface{}{
		"clinic_id":      uuid.New().String(),
		"service_id":     uuid.New().String(),
		"booking_date":   "2099-01-04",
		"booking_time":   "10:30",
		"customer_name":  "Hana Park",
		"customer_phone": "010-1234-5678",
		"pet_name":       "Mongshil",
	}
}

func doJSON(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateBookingReturnsCreated(t *testing.T) {
	repo := newStubRepo()
	r := setupRouter(t, repo)

	w := doJSON(r, http.MethodPost, "/api/v1/bookings", createBody())
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Status string        `json:"status"`
		Data   model.Booking `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, model.BookingStatusPending, resp.Data.Status)
	assert.NotEmpty(t, resp.Data.BookingNumber)
}

func TestCreateBookingRejectsBadClockFormat(t *testing.T) {
	r := setupRouter(t, newStubRepo())

	body := createBody()
	body["booking_time"] = "25:99"

	w := doJSON(r, http.MethodPost, "/api/v1/bookings", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingRejectsUnalignedTime(t *testing.T) {
	r := setupRouter(t, newStubRepo())

	body := createBody()
	body["booking_time"] = "10:15"

	w := doJSON(r, http.MethodPost, "/api/v1/bookings", body)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetBookingByNumberNotFound(t *testing.T) {
	r := setupRouter(t, newStubRepo())

	w := doJSON(r, http.MethodGet, "/api/v1/bookings/VB-20990101-FFFFFF", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateStatusConfirmConflict(t *testing.T) {
	repo := newStubRepo()
	repo.confirmErr = repository.ErrSlotTaken

	b := &model.Booking{Status: model.BookingStatusPending}
	b.ID = uuid.New()
	repo.bookings[b.ID] = b

	r := setupRouter(t, repo)

	path := fmt.Sprintf("/api/v1/admin/bookings/%s/status", b.ID)
	w := doJSON(r, http.MethodPatch, path, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateStatusInvalidTransition(t *testing.T) {
	repo := newStubRepo()

	b := &model.Booking{Status: model.BookingStatusCancelled}
	b.ID = uuid.New()
	repo.bookings[b.ID] = b

	r := setupRouter(t, repo)

	path := fmt.Sprintf("/api/v1/admin/bookings/%s/status", b.ID)
	w := doJSON(r, http.MethodPatch, path, map[string]string{"status": "confirmed"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRescheduleTerminalRejected(t *testing.T) {
	repo := newStubRepo()

	b := &model.Booking{Status: model.BookingStatusCompleted}
	b.ID = uuid.New()
	repo.bookings[b.ID] = b

	r := setupRouter(t, repo)

	path := fmt.Sprintf("/api/v1/admin/bookings/%s/reschedule", b.ID)
	w := doJSON(r, http.MethodPatch, path, map[string]string{
		"booking_date": "2099-02-01",
		"booking_time": "11:00",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}
