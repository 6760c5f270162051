package adaptor

import (
	"trackjobs/internal/usecase"
	"trackjobs/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth  *AuthHandler
	OAuth *OAuthHandler
	User  *UserHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:  NewAuthHandler(service.Auth, log),
		OAuth: NewOAuthHandler(service.Auth, config.Session.CookieSecure, log),
		User:  NewUserHandler(service.User, log),
	}
}
