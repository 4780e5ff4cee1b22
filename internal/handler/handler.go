package handler

import (
	"github.com/gofiber/fiber/v2"

	"threadbox/internal/domain"
	"threadbox/internal/service"
	"threadbox/internal/ws"
)

type Handlers struct {
	Comment      *CommentHandler
	Notification *NotificationHandler
	WS           *WSHandler
}

func NewHandlers(services *service.Services, hub *ws.Hub) *Handlers {
	return &Handlers{
		Comment:      NewCommentHandler(services.Comment),
		Notification: NewNotificationHandler(services.Notification),
		WS:           NewWSHandler(hub, services.Auth),
	}
}

func getPaginationParams(c *fiber.Ctx) domain.PaginationParams {
	params := domain.DefaultPagination()
	if err := c.QueryParser(&params); err != nil {
		return domain.DefaultPagination()
	}
	params.Validate()
	return params
}
