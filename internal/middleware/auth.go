package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"threadbox/internal/domain"
	"threadbox/internal/service/auth"
)

const UserIDContextKey = "user_id"

func AuthRequired(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		userID, err := authService.VerifyCredential(token)
		if err != nil {
			return err
		}

		c.Locals(UserIDContextKey, userID)
		return c.Next()
	}
}

// OptionalAuth resolves the viewer identity when a credential is present
// but lets anonymous requests through. An invalid credential is still
// rejected rather than downgraded to anonymous.
func OptionalAuth(authService auth.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Get("Authorization") == "" {
			return c.Next()
		}

		token, err := bearerToken(c)
		if err != nil {
			return err
		}

		userID, err := authService.VerifyCredential(token)
		if err != nil {
			return err
		}

		c.Locals(UserIDContextKey, userID)
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx) (string, error) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", domain.Unauthorized("missing authorization header")
	}

	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", domain.Unauthorized("invalid authorization header format")
	}

	return parts[1], nil
}

func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, domain.Unauthorized("not authenticated")
	}
	return userID, nil
}

// ViewerID returns the authenticated user id or nil for anonymous viewers.
func ViewerID(c *fiber.Ctx) *uuid.UUID {
	userID, ok := c.Locals(UserIDContextKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return nil
	}
	return &userID
}
