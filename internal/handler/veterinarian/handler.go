package veterinarian

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	"github.com/vetdesk/booking-api/internal/service/veterinarian"
)

type Handler struct {
	service *veterinarian.Service
}

func NewHandler(service *veterinarian.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public listing; the booking page shows active
// veterinarians only.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/clinics/:id/veterinarians", h.ListActiveVeterinarians)
}

func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/veterinarians", h.CreateVeterinarian)
	r.GET("/veterinarians/:id", h.GetVeterinarian)
	r.PATCH("/veterinarians/:id", h.UpdateVeterinarian)
	r.GET("/clinics/:id/veterinarians", h.ListVeterinarians)
}

func (h *Handler) CreateVeterinarian(c *gin.Context) {
	var req model.CreateVeterinarianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	vet, err := h.service.CreateVeterinarian(c.Request.Context(), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": vet})
}

func (h *Handler) GetVeterinarian(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid veterinarian ID"})
		return
	}

	vet, err := h.service.GetVeterinarian(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "veterinarian not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": vet})
}

func (h *Handler) ListActiveVeterinarians(c *gin.Context) {
	h.list(c, true)
}

func (h *Handler) ListVeterinarians(c *gin.Context) {
	h.list(c, c.Query("active") == "true")
}

func (h *Handler) list(c *gin.Context, activeOnly bool) {
	clinicID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid clinic ID"})
		return
	}

	vets, err := h.service.ListVeterinarians(c.Request.Context(), clinicID, activeOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": vets})
}

func (h *Handler) UpdateVeterinarian(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": "invalid veterinarian ID"})
		return
	}

	var req model.UpdateVeterinarianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"status": "error", "message": err.Error()})
		return
	}

	vet, err := h.service.UpdateVeterinarian(c.Request.Context(), id, &req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"status": "error", "message": "veterinarian not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": vet})
}
