package service

import (
	"studiosite/internal/config"
	"studiosite/internal/mailer"
	"studiosite/internal/repository"
	"studiosite/internal/storage"
	"studiosite/internal/token"
)

type Service struct {
	User         UserService
	Post         PostService
	Tag          TagService
	Review       ReviewService
	Auth         AuthService
	Notification NotificationService
	Tables       TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, tokens *token.Manager, storage storage.Storage, sender mailer.Sender) *Service {
	return &Service{
		User:         NewUserService(rep.User, storage),
		Post:         NewPostService(rep.Post, rep.Comment),
		Tag:          NewTagService(rep.Tag),
		Review:       NewReviewService(rep.Review),
		Auth:         NewAuthService(rep.User, tokens, cfg),
		Notification: NewNotificationService(sender, cfg.Mail),
		Tables:       NewTablesService(rep.Tables),
	}
}
