package app

import (
	"fmt"
	"log"

	"studiosite/internal/config"
	"studiosite/internal/database"
	handlers "studiosite/internal/handler"
	"studiosite/internal/mailer"
	"studiosite/internal/middleware"
	"studiosite/internal/repository"
	"studiosite/internal/service"
	"studiosite/internal/storage"
	"studiosite/internal/token"
)

type Application struct {
	Cfg      *config.Config
	DB       *database.DB
	Tokens   *token.Manager
	Handlers *handlers.Handlers
	Limiter  *middleware.RateLimiter
}

func App(cfg *config.Config) (*Application, error) {
	tokens, err := token.NewManager(cfg.JWTSecretKey, cfg.AccessTokenDuration)
	if err != nil {
		return nil, fmt.Errorf("JWT_SECRET_KEY: %w", err)
	}

	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}

	// connection MinIO, avatars are disabled without it
	var avatars storage.Storage
	if cfg.MinIO.Enabled {
		minioClient, err := storage.NewMinIOClient(cfg)
		if err != nil {
			db.CloseDB()
			return nil, fmt.Errorf("failed to initialize MinIO: %w", err)
		}
		avatars = minioClient
	} else {
		log.Println("Warning: MinIO is disabled, avatar uploads will return 503")
	}

	brevo := mailer.NewBrevoClient(cfg.Mail)
	if !brevo.Configured() {
		log.Println("Warning: BREVO_API_KEY is not set, lead and contact emails will fail")
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)
	services := service.NewService(repo, cfg, tokens, avatars, brevo)

	return &Application{
		Cfg:      cfg,
		DB:       db,
		Tokens:   tokens,
		Handlers: handlers.NewHandlers(services, cfg),
		Limiter:  middleware.NewRateLimiter(cfg.RateLimit),
	}, nil
}
