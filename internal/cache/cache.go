package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

const (
	defaultTTL      = 5 * time.Minute
	cleanupInterval = 10 * time.Minute
)

// Store is a read-through cache over the veterinarian and service
// repositories, keyed by entity id. Availability queries are never cached;
// only the slow-changing lookup entities are.
type Store struct {
	cache    *gocache.Cache
	vets     repository.VeterinarianRepository
	services repository.ServiceRepository
}

func NewStore(vets repository.VeterinarianRepository, services repository.ServiceRepository) *Store {
	return &Store{
		cache:    gocache.New(defaultTTL, cleanupInterval),
		vets:     vets,
		services: services,
	}
}

func (s *Store) GetVeterinarian(ctx context.Context, id uuid.UUID) (*model.Veterinarian, error) {
	key := "vet:" + id.String()
	if v, ok := s.cache.Get(key); ok {
		return v.(*model.Veterinarian), nil
	}

	vet, err := s.vets.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, vet)
	return vet, nil
}

func (s *Store) ActiveVeterinarians(ctx context.Context, clinicID uuid.UUID) ([]*model.Veterinarian, error) {
	key := "vets:active:" + clinicID.String()
	if v, ok := s.cache.Get(key); ok {
		return v.([]*model.Veterinarian), nil
	}

	vets, err := s.vets.ListActive(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, vets)
	return vets, nil
}

func (s *Store) GetService(ctx context.Context, id uuid.UUID) (*model.Service, error) {
	key := "service:" + id.String()
	if v, ok := s.cache.Get(key); ok {
		return v.(*model.Service), nil
	}

	svc, err := s.services.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.SetDefault(key, svc)
	return svc, nil
}

// InvalidateVeterinarian drops a veterinarian and its clinic's active list.
func (s *Store) InvalidateVeterinarian(id, clinicID uuid.UUID) {
	s.cache.Delete("vet:" + id.String())
	s.cache.Delete("vets:active:" + clinicID.String())
}

func (s *Store) InvalidateService(id uuid.UUID) {
	s.cache.Delete("service:" + id.String())
}

// HandleFeedEvent invalidates entries from a change-feed message. Unknown
// event types are ignored.
func (s *Store) HandleFeedEvent(eventType string, payload map[string]interface{}) error {
	id, clinicID, err := extractIDs(payload)
	if err != nil {
		return err
	}

	switch eventType {
	case "VETERINARIAN_CREATED", "VETERINARIAN_UPDATED":
		s.InvalidateVeterinarian(id, clinicID)
	case "SERVICE_CREATED", "SERVICE_UPDATED", "SERVICE_DELETED":
		s.InvalidateService(id)
	}
	return nil
}

func extractIDs(payload map[string]interface{}) (uuid.UUID, uuid.UUID, error) {
	idStr, _ := payload["id"].(string)
	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid id in feed payload: %w", err)
	}

	clinicStr, _ := payload["clinic_id"].(string)
	clinicID, err := uuid.Parse(clinicStr)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid clinic_id in feed payload: %w", err)
	}
	return id, clinicID, nil
}
