package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"threadbox/internal/domain"
	"threadbox/internal/middleware"
	"threadbox/internal/service/comment"
)

type CommentHandler struct {
	commentService comment.Service
}

func NewCommentHandler(commentService comment.Service) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	var input domain.CreateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return domain.InvalidInput("invalid request body")
	}

	created, err := h.commentService.Create(c.Context(), userID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	tree, err := h.commentService.ListTree(c.Context(), middleware.ViewerID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(tree)
}

func (h *CommentHandler) ListOwn(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	own, err := h.commentService.ListOwn(c.Context(), userID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(own)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return domain.InvalidInput("invalid comment id")
	}

	var input domain.UpdateCommentInput
	if err := c.BodyParser(&input); err != nil {
		return domain.InvalidInput("invalid request body")
	}

	updated, err := h.commentService.Edit(c.Context(), userID, commentID, input)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return domain.InvalidInput("invalid comment id")
	}

	if err := h.commentService.Delete(c.Context(), userID, commentID); err != nil {
		return err
	}

	return c.Status(fiber.StatusNoContent).SendString("")
}

func (h *CommentHandler) Restore(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return err
	}

	commentID, err := uuid.Parse(c.Params("commentId"))
	if err != nil {
		return domain.InvalidInput("invalid comment id")
	}

	restored, err := h.commentService.Restore(c.Context(), userID, commentID)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(restored)
}
