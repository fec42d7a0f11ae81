package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/vetdesk/booking-api/internal/model"
)

type JWTService interface {
	GenerateToken(user *model.AdminUser) (string, time.Time, error)
	ValidateToken(token string) (*model.TokenClaims, error)
}

type jwtService struct {
	secret []byte
	expiry time.Duration
}

func NewJWTService(secret string, expiry time.Duration) JWTService {
	return &jwtService{secret: []byte(secret), expiry: expiry}
}

func (s *jwtService) GenerateToken(user *model.AdminUser) (string, time.Time, error) {
	expiresAt := time.Now().Add(s.expiry)

	claims := jwt.MapClaims{
		"sub":       user.ID.String(),
		"clinic_id": user.ClinicID.String(),
		"email":     user.Email,
		"exp":       expiresAt.Unix(),
		"iat":       time.Now().Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return token, expiresAt, nil
}

func (s *jwtService) ValidateToken(tokenStr string) (*model.TokenClaims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}

	userID, err := uuid.Parse(asString(claims["sub"]))
	if err != nil {
		return nil, fmt.Errorf("invalid subject claim: %w", err)
	}
	clinicID, err := uuid.Parse(asString(claims["clinic_id"]))
	if err != nil {
		return nil, fmt.Errorf("invalid clinic claim: %w", err)
	}

	return &model.TokenClaims{
		UserID:   userID,
		ClinicID: clinicID,
		Email:    asString(claims["email"]),
	}, nil
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}
