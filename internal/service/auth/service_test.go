package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
)

type stubUserRepo struct {
	users map[string]*model.AdminUser
}

func (s *stubUserRepo) GetByEmail(_ context.Context, email string) (*model.AdminUser, error) {
	user, ok := s.users[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

type stubJWT struct{}

func (stubJWT) GenerateToken(user *model.AdminUser) (string, time.Time, error) {
	return "token-" + user.Email, time.Now().Add(time.Hour), nil
}

func (stubJWT) ValidateToken(string) (*model.TokenClaims, error) {
	return nil, nil
}

// stubHasher treats the stored hash as the plaintext password.
type stubHasher struct{}

func (stubHasher) Hash(password string) (string, error) { return password, nil }

func (stubHasher) Compare(hashedPassword, password string) error {
	if hashedPassword != password {
		return ErrInvalidCredentials
	}
	return nil
}

func newTestService(users ...*model.AdminUser) *Service {
	repo := &stubUserRepo{users: make(map[string]*model.AdminUser)}
	for _, u := range users {
		repo.users[u.Email] = u
	}
	return NewService(repo, stubJWT{}, stubHasher{})
}

func adminUser(email string, active bool) *model.AdminUser {
	return &model.AdminUser{
		Base:         model.Base{ID: uuid.New()},
		ClinicID:     uuid.New(),
		Email:        email,
		PasswordHash: "s3cret-pass",
		Name:         "Admin",
		IsActive:     active,
	}
}

func TestLoginOK(t *testing.T) {
	svc := newTestService(adminUser("vet@clinic.kr", true))

	resp, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "vet@clinic.kr",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "vet@clinic.kr", resp.User.Email)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "nobody@clinic.kr",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := newTestService(adminUser("vet@clinic.kr", true))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "vet@clinic.kr",
		Password: "wrong-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveAccount(t *testing.T) {
	svc := newTestService(adminUser("former@clinic.kr", false))

	_, err := svc.Login(context.Background(), &model.LoginRequest{
		Email:    "former@clinic.kr",
		Password: "s3cret-pass",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
