package middleware_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"threadbox/internal/config"
	"threadbox/internal/middleware"
	"threadbox/internal/service/auth"
)

const testSecret = "test-secret"

func signToken(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	claims := auth.Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	assert.NoError(t, err)
	return token
}

func authTestApp() *fiber.App {
	authService := auth.NewService(&config.Config{JWTSecret: testSecret})
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})

	app.Get("/protected", middleware.AuthRequired(authService), func(c *fiber.Ctx) error {
		userID, err := middleware.GetUserID(c)
		if err != nil {
			return err
		}
		return c.JSON(fiber.Map{"user_id": userID})
	})

	app.Get("/open", middleware.OptionalAuth(authService), func(c *fiber.Ctx) error {
		viewer := middleware.ViewerID(c)
		return c.JSON(fiber.Map{"anonymous": viewer == nil})
	})

	return app
}

func TestAuthRequired(t *testing.T) {
	app := authTestApp()

	t.Run("missing header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/protected", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}

func TestOptionalAuth(t *testing.T) {
	app := authTestApp()

	t.Run("anonymous passes through", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/open", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("valid credential resolves viewer", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/open", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, uuid.New()))
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})

	t.Run("invalid credential is rejected, not downgraded", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/open", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})
}
