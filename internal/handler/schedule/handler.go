package schedule

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	schedulecore "github.com/vetdesk/booking-api/internal/schedule"
	"github.com/vetdesk/booking-api/internal/service/schedule"
)

type Handler struct {
	service *schedule.Service
}

func NewHandler(service *schedule.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the read-only schedule endpoints consumed by the
// public booking page.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/clinics/:id/hours", h.GetWeeklyHours)
	r.GET("/clinics/:id/slots", h.GetDaySlots)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.PUT("/clinics/:id/hours", h.SaveWeeklyHours)
	r.GET("/clinics/:id/closed-dates", h.ListClosedDates)
	r.POST("/clinics/:id/closed-dates", h.CreateClosedDate)
	r.DELETE("/closed-dates/:id", h.DeleteClosedDate)
}

func (h *Handler) GetWeeklyHours(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clinic ID"})
		return
	}

	vetID, ok := optionalVetID(c)
	if !ok {
		return
	}

	hours, err := h.service.GetWeeklyHours(c.Request.Context(), clinicID, vetID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": hours})
}

// GetDaySlots expands one date into its bookable 30-minute grid.
func (h *Handler) GetDaySlots(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clinic ID"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "date is required"})
		return
	}

	vetID, ok := optionalVetID(c)
	if !ok {
		return
	}

	slots, err := h.service.DaySlots(c.Request.Context(), clinicID, vetID, date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": slots})
}

// SaveWeeklyHours replaces the full week atomically. A rejected day comes
// back 422 naming the weekday and field so the form can highlight it.
func (h *Handler) SaveWeeklyHours(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clinic ID"})
		return
	}

	var req model.SaveWeeklyHoursRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	var vetID *uuid.UUID
	if req.VeterinarianID != nil {
		id, err := uuid.Parse(*req.VeterinarianID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid veterinarian ID"})
			return
		}
		vetID = &id
	}

	days := req.Days
	if req.ApplyAllFrom != nil {
		days, err = schedulecore.ApplyDayToWeek(days, *req.ApplyAllFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
			return
		}
	}

	if err := h.service.SaveWeeklyHours(c.Request.Context(), clinicID, vetID, days); err != nil {
		var verr *schedulecore.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"status":  "error",
				"message": verr.Error(),
				"data": gin.H{
					"day_of_week": verr.DayOfWeek,
					"field":       verr.Field,
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

func (h *Handler) ListClosedDates(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clinic ID"})
		return
	}

	dates, err := h.service.ListClosedDates(c.Request.Context(), clinicID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": dates})
}

func (h *Handler) CreateClosedDate(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clinic ID"})
		return
	}

	var req model.CreateClosedDateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	var vetID *uuid.UUID
	if req.VeterinarianID != nil {
		id, err := uuid.Parse(*req.VeterinarianID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid veterinarian ID"})
			return
		}
		vetID = &id
	}

	cd, err := h.service.CreateClosedDate(c.Request.Context(), clinicID, vetID, req.Date, req.Reason)
	if err != nil {
		if errors.Is(err, schedule.ErrPastDate) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"status": "error", "message": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": cd})
}

func (h *Handler) DeleteClosedDate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid closed date ID"})
		return
	}

	if err := h.service.DeleteClosedDate(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "closed date not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success"})
}

// optionalVetID reads the veterinarian_id query param; a second return of
// false means the response was already written.
func optionalVetID(c *gin.Context) (*uuid.UUID, bool) {
	raw := c.Query("veterinarian_id")
	if raw == "" {
		return nil, true
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid veterinarian ID"})
		return nil, false
	}
	return &id, true
}
