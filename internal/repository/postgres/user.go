package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

type adminUserRepository struct {
	BaseRepository
}

func NewAdminUserRepository(db *sqlx.DB) repository.AdminUserRepository {
	return &adminUserRepository{NewBaseRepository(db)}
}

func (r *adminUserRepository) GetByEmail(ctx context.Context, email string) (*model.AdminUser, error) {
	query := `
		SELECT id, clinic_id, email, password_hash, name, is_active, created_at, updated_at
		FROM admin_users
		WHERE email = $1 AND is_active = true
	`
	var user model.AdminUser
	err := r.db.GetContext(ctx, &user, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get admin user: %w", err)
	}
	return &user, nil
}
