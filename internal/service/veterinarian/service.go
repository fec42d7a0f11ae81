package veterinarian

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	"github.com/vetdesk/booking-api/internal/service/event"
)

type Service struct {
	repo   repository.VeterinarianRepository
	events *event.Service
}

func NewService(repo repository.VeterinarianRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) CreateVeterinarian(ctx context.Context, req *model.CreateVeterinarianRequest) (*model.Veterinarian, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id: %w", err)
	}

	vet := &model.Veterinarian{
		ClinicID:       clinicID,
		Name:           req.Name,
		Email:          req.Email,
		Phone:          req.Phone,
		Specialization: req.Specialization,
		IsActive:       true,
	}
	if err := s.repo.Create(ctx, vet); err != nil {
		return nil, fmt.Errorf("failed to create veterinarian: %w", err)
	}

	s.record(ctx, "VETERINARIAN_CREATED", vet)
	return vet, nil
}

func (s *Service) GetVeterinarian(ctx context.Context, id uuid.UUID) (*model.Veterinarian, error) {
	vet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get veterinarian: %w", err)
	}
	return vet, nil
}

func (s *Service) ListVeterinarians(ctx context.Context, clinicID uuid.UUID, activeOnly bool) ([]*model.Veterinarian, error) {
	var (
		vets []*model.Veterinarian
		err  error
	)
	if activeOnly {
		vets, err = s.repo.ListActive(ctx, clinicID)
	} else {
		vets, err = s.repo.List(ctx, clinicID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list veterinarians: %w", err)
	}
	return vets, nil
}

// UpdateVeterinarian applies a partial update. Veterinarians are never
// deleted, only deactivated, so historical bookings keep their reference.
func (s *Service) UpdateVeterinarian(ctx context.Context, id uuid.UUID, req *model.UpdateVeterinarianRequest) (*model.Veterinarian, error) {
	vet, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get veterinarian: %w", err)
	}

	if req.Name != nil {
		vet.Name = *req.Name
	}
	if req.Email != nil {
		vet.Email = *req.Email
	}
	if req.Phone != nil {
		vet.Phone = *req.Phone
	}
	if req.Specialization != nil {
		vet.Specialization = *req.Specialization
	}
	if req.IsActive != nil {
		vet.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, vet); err != nil {
		return nil, fmt.Errorf("failed to update veterinarian: %w", err)
	}

	s.record(ctx, "VETERINARIAN_UPDATED", vet)
	return vet, nil
}

func (s *Service) record(ctx context.Context, eventType string, vet *model.Veterinarian) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, eventType, vet); err != nil {
		log.Warn().Err(err).Str("veterinarian", vet.Name).Msg("failed to record change-feed event")
	}
}
