package wire

import (
	"trackjobs/internal/adaptor"
	"trackjobs/internal/usecase"
	"trackjobs/pkg/middleware"
	"trackjobs/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func wireUser(
	r chi.Router,
	userHandler *adaptor.UserHandler,
	service *usecase.Service,
	config *utils.Config,
	log *zap.Logger,
) {
	auth := middleware.AuthSession(service.Session, config.Session.CookieName, log)

	r.With(auth).Get("/api/me", userHandler.Me)
}
