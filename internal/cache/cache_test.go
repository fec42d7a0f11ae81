package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

type countingVetRepo struct {
	vets     map[uuid.UUID]*model.Veterinarian
	getCalls int
	listBy   map[uuid.UUID][]*model.Veterinarian
	lists    int
}

func (r *countingVetRepo) Create(context.Context, *model.Veterinarian) error { return nil }
func (r *countingVetRepo) Update(context.Context, *model.Veterinarian) error { return nil }
func (r *countingVetRepo) List(context.Context, uuid.UUID) ([]*model.Veterinarian, error) {
	return nil, nil
}

func (r *countingVetRepo) Get(_ context.Context, id uuid.UUID) (*model.Veterinarian, error) {
	r.getCalls++
	v, ok := r.vets[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return v, nil
}

func (r *countingVetRepo) ListActive(_ context.Context, clinicID uuid.UUID) ([]*model.Veterinarian, error) {
	r.lists++
	return r.listBy[clinicID], nil
}

type noopServiceRepo struct{}

func (noopServiceRepo) Create(context.Context, *model.Service) error { return nil }
func (noopServiceRepo) Update(context.Context, *model.Service) error { return nil }
func (noopServiceRepo) Delete(context.Context, uuid.UUID) error      { return nil }
func (noopServiceRepo) Get(context.Context, uuid.UUID) (*model.Service, error) {
	return nil, repository.ErrNotFound
}
func (noopServiceRepo) List(context.Context, uuid.UUID, bool) ([]*model.Service, error) {
	return nil, nil
}

func seedVet(clinicID uuid.UUID) *model.Veterinarian {
	v := &model.Veterinarian{ClinicID: clinicID, Name: "Dr. Kim", IsActive: true}
	v.ID = uuid.New()
	return v
}

func TestGetVeterinarianReadsThroughOnce(t *testing.T) {
	clinicID := uuid.New()
	vet := seedVet(clinicID)
	repo := &countingVetRepo{vets: map[uuid.UUID]*model.Veterinarian{vet.ID: vet}}
	store := NewStore(repo, noopServiceRepo{})

	for i := 0; i < 3; i++ {
		got, err := store.GetVeterinarian(context.Background(), vet.ID)
		require.NoError(t, err)
		assert.Equal(t, vet.Name, got.Name)
	}
	assert.Equal(t, 1, repo.getCalls)
}

func TestGetVeterinarianMissesAreNotCached(t *testing.T) {
	repo := &countingVetRepo{vets: map[uuid.UUID]*model.Veterinarian{}}
	store := NewStore(repo, noopServiceRepo{})

	id := uuid.New()
	_, err := store.GetVeterinarian(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = store.GetVeterinarian(context.Background(), id)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Equal(t, 2, repo.getCalls)
}

func TestFeedEventInvalidatesVeterinarian(t *testing.T) {
	clinicID := uuid.New()
	vet := seedVet(clinicID)
	repo := &countingVetRepo{
		vets:   map[uuid.UUID]*model.Veterinarian{vet.ID: vet},
		listBy: map[uuid.UUID][]*model.Veterinarian{clinicID: {vet}},
	}
	store := NewStore(repo, noopServiceRepo{})

	_, err := store.GetVeterinarian(context.Background(), vet.ID)
	require.NoError(t, err)
	_, err = store.ActiveVeterinarians(context.Background(), clinicID)
	require.NoError(t, err)

	err = store.HandleFeedEvent("VETERINARIAN_UPDATED", map[string]interface{}{
		"id":        vet.ID.String(),
		"clinic_id": clinicID.String(),
	})
	require.NoError(t, err)

	_, err = store.GetVeterinarian(context.Background(), vet.ID)
	require.NoError(t, err)
	_, err = store.ActiveVeterinarians(context.Background(), clinicID)
	require.NoError(t, err)

	assert.Equal(t, 2, repo.getCalls)
	assert.Equal(t, 2, repo.lists)
}

func TestFeedEventIgnoresUnknownTypes(t *testing.T) {
	store := NewStore(&countingVetRepo{}, noopServiceRepo{})

	err := store.HandleFeedEvent("BOOKING_CREATED", map[string]interface{}{
		"id":        uuid.New().String(),
		"clinic_id": uuid.New().String(),
	})
	assert.NoError(t, err)
}
