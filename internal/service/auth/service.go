package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/vetdesk/booking-api/internal/model"
	"github.com/vetdesk/booking-api/internal/repository"
	"github.com/vetdesk/booking-api/pkg/auth"
	"github.com/vetdesk/booking-api/pkg/security"
)

// ErrInvalidCredentials hides whether the email or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid email or password")

type Service struct {
	users  repository.AdminUserRepository
	jwt    auth.JWTService
	hasher security.PasswordHasher
}

func NewService(users repository.AdminUserRepository, jwt auth.JWTService, hasher security.PasswordHasher) *Service {
	return &Service{users: users, jwt: jwt, hasher: hasher}
}

func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, req.Password); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwt.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &model.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt.Unix(),
		User:      user,
	}, nil
}

func (s *Service) ValidateToken(token string) (*model.TokenClaims, error) {
	return s.jwt.ValidateToken(token)
}
