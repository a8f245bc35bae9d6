package wire

import (
	"net/http"

	"ratings-catalog/internal/adaptor"
	"ratings-catalog/internal/data/repository"
	"ratings-catalog/internal/usecase"
	"ratings-catalog/pkg/middleware"
	"ratings-catalog/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type App struct {
	Router *chi.Mux
}

// Wiring initializes all dependencies
func Wiring(repo *repository.Repository, config *utils.Config, logger *zap.Logger) *App {
	service := usecase.NewService(repo, config, logger)
	handler := adaptor.NewHandler(service, logger)

	router := setupRouter(handler, repo, config, logger)

	return &App{
		Router: router,
	}
}

func setupRouter(
	handler *adaptor.Handler,
	repo *repository.Repository,
	config *utils.Config,
	logger *zap.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Apply global middleware
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recover(logger))

	// Mutations require an authenticated requester; safe reads stay public.
	// Role checks live in the access policy, not in routing.
	auth := middleware.Authenticate(repo.User, config.JWT, logger)

	wireAuth(r, handler)
	wireUser(r, handler, auth)
	wireTitle(r, handler, auth)
	wireClassification(r, handler, auth)
	wireReview(r, handler, auth)
	wireComment(r, handler, auth)

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
