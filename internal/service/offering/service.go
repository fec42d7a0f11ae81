package offering

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	"github.com/vetdesk/booking-api/internal/service/event"
)

// Service manages the clinic's offered services (consultations, vaccinations
// and so on). Bookings capture the service id at creation; deleting an
// offering never rewrites existing bookings.
type Service struct {
	repo   repository.ServiceRepository
	events *event.Service
}

func NewService(repo repository.ServiceRepository, events *event.Service) *Service {
	return &Service{repo: repo, events: events}
}

func (s *Service) CreateService(ctx context.Context, req *model.CreateServiceRequest) (*model.Service, error) {
	clinicID, err := uuid.Parse(req.ClinicID)
	if err != nil {
		return nil, fmt.Errorf("invalid clinic id: %w", err)
	}

	svc := &model.Service{
		ClinicID:        clinicID,
		Name:            req.Name,
		Description:     req.Description,
		DurationMinutes: req.DurationMinutes,
		Price:           req.Price,
		IsActive:        true,
	}
	if err := s.repo.Create(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to create service: %w", err)
	}

	s.record(ctx, "SERVICE_CREATED", svc)
	return svc, nil
}

func (s *Service) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return svc, nil
}

func (s *Service) ListServices(ctx context.Context, clinicID uuid.UUID, activeOnly bool) ([]*model.Service, error) {
	services, err := s.repo.List(ctx, clinicID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (s *Service) UpdateService(ctx context.Context, id uuid.UUID, req *model.UpdateServiceRequest) (*model.Service, error) {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}

	if req.Name != nil {
		svc.Name = *req.Name
	}
	if req.Description != nil {
		svc.Description = *req.Description
	}
	if req.DurationMinutes != nil {
		svc.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		svc.Price = *req.Price
	}
	if req.IsActive != nil {
		svc.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, svc); err != nil {
		return nil, fmt.Errorf("failed to update service: %w", err)
	}

	s.record(ctx, "SERVICE_UPDATED", svc)
	return svc, nil
}

func (s *Service) DeleteService(ctx context.Context, id uuid.UUID) error {
	svc, err := s.repo.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to get service: %w", err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete service: %w", err)
	}

	s.record(ctx, "SERVICE_DELETED", svc)
	return nil
}

func (s *Service) record(ctx context.Context, eventType string, svc *model.Service) {
	if s.events == nil {
		return
	}
	if err := s.events.Record(ctx, eventType, svc); err != nil {
		log.Warn().Err(err).Str("service", svc.Name).Msg("failed to record change-feed event")
	}
}
