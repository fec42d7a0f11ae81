package availability

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/service/availability"
)

type Handler struct {
	service *availability.Service
}

func NewHandler(service *availability.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/clinics/:id/available-veterinarians", h.AvailableVeterinarians)
}

// AvailableVeterinarians lists the active veterinarians free at the given
// slot. An empty list is a real answer, never a masked lookup failure.
func (h *Handler) AvailableVeterinarians(c *gin.Context) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clinic ID"})
		return
	}

	date := c.Query("date")
	clock := c.Query("time")
	if date == "" || clock == "" {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "date and time are required"})
		return
	}

	vets, err := h.service.AvailableVeterinarians(c.Request.Context(), clinicID, date, clock)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": vets})
}
