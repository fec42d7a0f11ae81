package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

type veterinarianRepository struct {
	BaseRepository
}

func NewVeterinarianRepository(db *sqlx.DB) repository.VeterinarianRepository {
	return &veterinarianRepository{NewBaseRepository(db)}
}

const veterinarianColumns = `
	id, clinic_id, name, email, phone, specialization, is_active, created_at, updated_at
`

func (r *veterinarianRepository) Create(ctx context.Context, vet *model.Veterinarian) error {
	query := `
		INSERT INTO veterinarians (` + veterinarianColumns + `)
		VALUES (:id, :clinic_id, :name, :email, :phone, :specialization, :is_active, :created_at, :updated_at)
	`
	vet.ID = uuid.New()
	vet.CreatedAt = time.Now()
	vet.UpdatedAt = time.Now()

	if _, err := r.db.NamedExecContext(ctx, query, vet); err != nil {
		return fmt.Errorf("failed to create veterinarian: %w", err)
	}
	return nil
}

func (r *veterinarianRepository) Get(ctx context.Context, id uuid.UUID) (*model.Veterinarian, error) {
	query := `SELECT ` + veterinarianColumns + ` FROM veterinarians WHERE id = $1`

	var vet model.Veterinarian
	err := r.db.GetContext(ctx, &vet, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get veterinarian: %w", err)
	}
	return &vet, nil
}

func (r *veterinarianRepository) Update(ctx context.Context, vet *model.Veterinarian) error {
	query := `
		UPDATE veterinarians
		SET name = :name, email = :email, phone = :phone,
			specialization = :specialization, is_active = :is_active,
			updated_at = :updated_at
		WHERE id = :id
	`
	vet.UpdatedAt = time.Now()

	result, err := r.db.NamedExecContext(ctx, query, vet)
	if err != nil {
		return fmt.Errorf("failed to update veterinarian: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *veterinarianRepository) ListActive(ctx context.Context, clinicID uuid.UUID) ([]*model.Veterinarian, error) {
	query := `
		SELECT ` + veterinarianColumns + `
		FROM veterinarians
		WHERE clinic_id = $1 AND is_active = true
		ORDER BY name ASC
	`
	var vets []*model.Veterinarian
	if err := r.db.SelectContext(ctx, &vets, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list active veterinarians: %w", err)
	}
	return vets, nil
}

func (r *veterinarianRepository) List(ctx context.Context, clinicID uuid.UUID) ([]*model.Veterinarian, error) {
	query := `SELECT ` + veterinarianColumns + ` FROM veterinarians WHERE clinic_id = $1 ORDER BY name ASC`

	var vets []*model.Veterinarian
	if err := r.db.SelectContext(ctx, &vets, query, clinicID); err != nil {
		return nil, fmt.Errorf("failed to list veterinarians: %w", err)
	}
	return vets, nil
}
