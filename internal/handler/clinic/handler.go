package clinic

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	"github.com/vetdesk/booking-api/internal/service/clinic"
	apperrors "github.com/vetdesk/booking-api/pkg/errors"
)

// Handler for clinic profile reads and edits. Errors are attached to the
// context and rendered by the error middleware.
type Handler struct {
	service *clinic.Service
}

func NewHandler(service *clinic.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/clinics/:id", h.GetClinic)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.PATCH("/clinics/:id", h.UpdateClinic)
}

func (h *Handler) GetClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	cl, err := h.service.GetClinic(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Error(apperrors.NewNotFound("clinic", err))
			return
		}
		c.Error(apperrors.NewInternal(err))
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": cl})
}

func (h *Handler) UpdateClinic(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperrors.NewBadRequest("invalid clinic ID", err))
		return
	}

	var req model.UpdateClinicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewBadRequest(err.Error(), err))
		return
	}

	cl, err := h.service.UpdateClinic(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.Error(apperrors.NewNotFound("clinic", err))
			return
		}
		c.Error(apperrors.NewInternal(err))
		return
	}

	c.JSON(200, gin.H{"status": "success", "data": cl})
}
