package handlers

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"studiosite/internal/config"
	"studiosite/internal/service"
)

type Handlers struct {
	UserService         service.UserService
	AuthService         service.AuthService
	PostService         service.PostService
	TagService          service.TagService
	ReviewService       service.ReviewService
	NotificationService service.NotificationService
	TablesService       service.TablesService
	Cfg                 *config.Config
	Validate            *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		UserService:         service.User,
		AuthService:         service.Auth,
		PostService:         service.Post,
		TagService:          service.Tag,
		ReviewService:       service.Review,
		NotificationService: service.Notification,
		TablesService:       service.Tables,
		Cfg:                 config,
		Validate:            NewValidator(),
	}
}

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	validate := validator.New(validator.WithRequiredStructEnabled())
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return validate
}
