package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"threadbox/internal/config"
	"threadbox/internal/domain"
	"threadbox/internal/handler"
	"threadbox/internal/middleware"
	"threadbox/internal/mocks"
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

func commentTestApp(svc *mocks.CommentService) *fiber.App {
	authService := auth.NewService(&config.Config{JWTSecret: testSecret})
	h := handler.NewCommentHandler(svc)

	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	comments := app.Group("/api/v1/comments")
	comments.Get("/", middleware.OptionalAuth(authService), h.List)
	comments.Post("/", middleware.AuthRequired(authService), h.Create)
	comments.Patch("/:commentId", middleware.AuthRequired(authService), h.Update)
	comments.Delete("/:commentId", middleware.AuthRequired(authService), h.Delete)
	comments.Patch("/:commentId/restore", middleware.AuthRequired(authService), h.Restore)
	return app
}

func TestCreateComment(t *testing.T) {
	userID := uuid.New()

	t.Run("authenticated create", func(t *testing.T) {
		svc := new(mocks.CommentService)
		app := commentTestApp(svc)

		created := &domain.Comment{ID: uuid.New(), AuthorID: userID, Content: "hello"}
		svc.On("Create", mock.Anything, userID, domain.CreateCommentInput{Content: "hello"}).
			Return(created, nil).Once()

		body, _ := json.Marshal(fiber.Map{"content": "hello"})
		req := httptest.NewRequest("POST", "/api/v1/comments/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("unauthenticated create is rejected", func(t *testing.T) {
		svc := new(mocks.CommentService)
		app := commentTestApp(svc)

		body, _ := json.Marshal(fiber.Map{"content": "hello"})
		req := httptest.NewRequest("POST", "/api/v1/comments/", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListComments(t *testing.T) {
	t.Run("anonymous viewer", func(t *testing.T) {
		svc := new(mocks.CommentService)
		app := commentTestApp(svc)

		svc.On("ListTree", mock.Anything, (*uuid.UUID)(nil)).Return([]domain.Comment{}, nil).Once()

		resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/comments/", nil))
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("authenticated viewer is passed through", func(t *testing.T) {
		svc := new(mocks.CommentService)
		app := commentTestApp(svc)
		userID := uuid.New()

		svc.On("ListTree", mock.Anything, mock.MatchedBy(func(viewer *uuid.UUID) bool {
			return viewer != nil && *viewer == userID
		})).Return([]domain.Comment{}, nil).Once()

		req := httptest.NewRequest("GET", "/api/v1/comments/", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})
}

func TestUpdateComment(t *testing.T) {
	userID := uuid.New()
	commentID := uuid.New()

	t.Run("window expiry surfaces as 403 with reason", func(t *testing.T) {
		svc := new(mocks.CommentService)
		app := commentTestApp(svc)

		svc.On("Edit", mock.Anything, userID, commentID, domain.UpdateCommentInput{Content: "late edit"}).
			Return(nil, domain.Forbidden("edit window expired")).Once()

		body, _ := json.Marshal(fiber.Map{"content": "late edit"})
		req := httptest.NewRequest("PATCH", "/api/v1/comments/"+commentID.String(), bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

		var errBody middleware.ErrorResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&errBody))
		assert.Equal(t, "edit window expired", errBody.Message)
	})

	t.Run("invalid comment id", func(t *testing.T) {
		svc := new(mocks.CommentService)
		app := commentTestApp(svc)

		body, _ := json.Marshal(fiber.Map{"content": "edit"})
		req := httptest.NewRequest("PATCH", "/api/v1/comments/not-a-uuid", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestDeleteAndRestoreComment(t *testing.T) {
	userID := uuid.New()
	commentID := uuid.New()

	t.Run("delete", func(t *testing.T) {
		svc := new(mocks.CommentService)
		app := commentTestApp(svc)

		svc.On("Delete", mock.Anything, userID, commentID).Return(nil).Once()

		req := httptest.NewRequest("DELETE", "/api/v1/comments/"+commentID.String(), nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
		svc.AssertExpectations(t)
	})

	t.Run("restore", func(t *testing.T) {
		svc := new(mocks.CommentService)
		app := commentTestApp(svc)

		restored := &domain.Comment{ID: commentID, AuthorID: userID, Content: "back"}
		svc.On("Restore", mock.Anything, userID, commentID).Return(restored, nil).Once()

		req := httptest.NewRequest("PATCH", "/api/v1/comments/"+commentID.String()+"/restore", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, userID))

		resp, err := app.Test(req)
		assert.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})
}
