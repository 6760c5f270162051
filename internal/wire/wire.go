package wire

import (
	"net/http"

	"trackjobs/internal/adaptor"
	"trackjobs/internal/data/repository"
	"trackjobs/internal/mailer"
	"trackjobs/internal/usecase"
	"trackjobs/pkg/middleware"
	"trackjobs/pkg/oauth"
	"trackjobs/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// App holds the wired dependencies
type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	sender := newSender(config, logger)
	provider := oauth.NewGoogleProvider(config.OAuth)

	service := usecase.NewService(repo, config, sender, provider, logger)
	handler := adaptor.NewHandler(service, config, logger)

	router := setupRouter(handler, service, config, logger)

	return &App{
		Router: router,
	}
}

// newSender picks SMTP when a host is configured, otherwise the codes only
// show up in the log.
func newSender(config *utils.Config, logger *zap.Logger) mailer.Sender {
	if config.Email.Host != "" {
		return mailer.NewSMTPSender(config.Email)
	}

	logger.Warn("No SMTP host configured, emails will only be logged")
	return mailer.NewLogSender(logger)
}

// setupRouter configures the Chi router
func setupRouter(
	handler *adaptor.Handler,
	service *usecase.Service,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.CORS())

	// Apply routes
	wireAuth(r, handler, service, config, logger)
	wireUser(r, handler.User, service, config, logger)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
