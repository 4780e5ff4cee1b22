package service

import (
	"github.com/redis/go-redis/v9"

	"threadbox/internal/config"
	"threadbox/internal/repository"
	"threadbox/internal/service/auth"
	"threadbox/internal/service/comment"
	"threadbox/internal/service/notification"
	"threadbox/internal/ws"
)

type Services struct {
	Auth         auth.Service
	Comment      comment.Service
	Notification notification.Service
}

func NewServices(repos *repository.Repositories, redisClient *redis.Client, hub *ws.Hub, cfg *config.Config) *Services {
	authService := auth.NewService(cfg)
	notificationService := notification.NewService(repos.Notification, hub)
	commentService := comment.NewService(repos.Comment, redisClient, cfg)
	commentService.SetNotificationService(notificationService)

	return &Services{
		Auth:         authService,
		Comment:      commentService,
		Notification: notificationService,
	}
}
