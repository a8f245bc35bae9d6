package wire

import (
	"net/http"

	"ratings-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

// wireClassification covers categories and genres, which share a shape
func wireClassification(r chi.Router, handler *adaptor.Handler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/categories", handler.ListCategories)
	r.Get("/api/genres", handler.ListGenres)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/categories", handler.CreateCategory)
	r.With(auth).Delete("/api/categories/{slug}", handler.DeleteCategory)

	r.With(auth).Post("/api/genres", handler.CreateGenre)
	r.With(auth).Delete("/api/genres/{slug}", handler.DeleteGenre)
}
