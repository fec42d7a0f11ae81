package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

// VeterinarianSource is the lookup side of the availability query; in
// production it is the read-through cache.
type VeterinarianSource interface {
	ActiveVeterinarians(ctx context.Context, clinicID uuid.UUID) ([]*model.Veterinarian, error)
}

type Service struct {
	bookings repository.BookingRepository
	vets     VeterinarianSource
}

func NewService(bookings repository.BookingRepository, vets VeterinarianSource) *Service {
	return &Service{bookings: bookings, vets: vets}
}

// AvailableVeterinarians returns the active veterinarians free at the exact
// slot. Only confirmed bookings block; pending requests are provisional so
// the clinic can choose among competing requests before confirming one.
// Errors propagate: an empty result always means the query succeeded with
// zero matches.
func (s *Service) AvailableVeterinarians(ctx context.Context, clinicID uuid.UUID, date, clock string) ([]*model.Veterinarian, error) {
	confirmedIDs, err := s.bookings.ConfirmedVeterinarianIDs(ctx, clinicID, date, clock)
	if err != nil {
		return nil, fmt.Errorf("failed to get confirmed bookings: %w", err)
	}

	excluded := make(map[uuid.UUID]struct{}, len(confirmedIDs))
	for _, id := range confirmedIDs {
		excluded[id] = struct{}{}
	}

	vets, err := s.vets.ActiveVeterinarians(ctx, clinicID)
	if err != nil {
		return nil, fmt.Errorf("failed to list veterinarians: %w", err)
	}

	available := make([]*model.Veterinarian, 0, len(vets))
	for _, vet := range vets {
		if _, taken := excluded[vet.ID]; !taken {
			available = append(available, vet)
		}
	}
	return available, nil
}
