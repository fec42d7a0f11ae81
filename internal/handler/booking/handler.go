package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	"github.com/vetdesk/booking-api/internal/service/booking"
	"github.com/vetdesk/booking-api/pkg/metrics"
)

type Handler struct {
	service *booking.Service
	metrics *metrics.Metrics
}

func NewHandler(service *booking.Service, metrics *metrics.Metrics) *Handler {
	return &Handler{service: service, metrics: metrics}
}

// RegisterRoutes mounts the public booking endpoints. Creation and lookup by
// booking number need no authentication; customers hold the number only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("/bookings", h.CreateBooking)
	r.GET("/bookings/:number", h.GetBookingByNumber)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.GET("/bookings", h.ListBookings)
	r.GET("/bookings/:id", h.GetBooking)
	r.PATCH("/bookings/:id/status", h.UpdateStatus)
	r.PATCH("/bookings/:id/reschedule", h.RescheduleBooking)
	r.PATCH("/bookings/:id/notes", h.UpdateNotes)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	b, err := h.service.CreateBooking(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, booking.ErrPastDate) || errors.Is(err, booking.ErrSlotNotAligned) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	h.metrics.BookingsCreated.WithLabelValues(string(b.Source)).Inc()
	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": b})
}

func (h *Handler) GetBookingByNumber(c *gin.Context) {
	number := c.Param("number")

	b, err := h.service.GetBookingByNumber(c.Request.Context(), number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	b, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Query("clinic_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clinic ID"})
		return
	}

	filters := &model.BookingFilters{ClinicID: clinicID}

	if id := c.Query("veterinarian_id"); id != "" {
		vetID, err := uuid.Parse(id)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid veterinarian ID"})
			return
		}
		filters.VeterinarianID = &vetID
	}
	if status := c.Query("status"); status != "" {
		filters.Status = model.BookingStatus(status)
	}
	filters.DateFrom = c.Query("date_from")
	filters.DateTo = c.Query("date_to")

	if err := c.ShouldBindQuery(&filters.Pagination); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), filters)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": bookings})
}

// UpdateStatus applies one lifecycle transition. A confirm that loses the
// race for the slot comes back 409 so the admin UI can refresh its view.
func (h *Handler) UpdateStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	var req model.UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "booking not found"})
		case errors.Is(err, repository.ErrSlotTaken):
			h.metrics.SlotConfirmRaceLost.Inc()
			c.JSON(http.StatusConflict, gin.H{"status": "error", "message": err.Error()})
		case errors.Is(err, booking.ErrInvalidTransition):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		}
		return
	}

	h.metrics.BookingTransitions.WithLabelValues(string(req.Status)).Inc()
	c.JSON(http.StatusOK, gin.H{"status": "success", "data": b})
}

func (h *Handler) RescheduleBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	var req model.RescheduleBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	b, err := h.service.RescheduleBooking(c.Request.Context(), id, req.BookingDate, req.BookingTime)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "booking not found"})
		case errors.Is(err, booking.ErrInvalidTransition),
			errors.Is(err, booking.ErrPastDate),
			errors.Is(err, booking.ErrSlotNotAligned):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": b})
}

func (h *Handler) UpdateNotes(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid booking ID"})
		return
	}

	var req model.UpdateBookingNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	b, err := h.service.UpdateNotes(c.Request.Context(), id, req.AdminNotes)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "booking not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": b})
}
