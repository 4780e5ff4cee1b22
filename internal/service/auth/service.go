// Package auth wraps the external identity collaborator: it turns an opaque
// bearer credential into a user id and nothing more. User accounts, sign-up
// and password handling live outside this system.
package auth

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"threadbox/internal/config"
	"threadbox/internal/domain"
)

type Service interface {
	VerifyCredential(token string) (uuid.UUID, error)
}

type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	jwt.RegisteredClaims
}

type service struct {
	cfg *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{cfg: cfg}
}

func (s *service) VerifyCredential(tokenString string) (uuid.UUID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil {
		return uuid.Nil, domain.Unauthorized("invalid or expired token")
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.UserID == uuid.Nil {
		return uuid.Nil, domain.Unauthorized("invalid or expired token")
	}

	return claims.UserID, nil
}
