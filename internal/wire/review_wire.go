package wire

import (
	"net/http"

	"ratings-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireReview(r chi.Router, handler *adaptor.Handler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/titles/{titleID}/reviews", handler.ListReviews)
	r.Get("/api/titles/{titleID}/reviews/{reviewID}", handler.GetReview)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/titles/{titleID}/reviews", handler.CreateReview)
	r.With(auth).Patch("/api/titles/{titleID}/reviews/{reviewID}", handler.UpdateReview)
	r.With(auth).Delete("/api/titles/{titleID}/reviews/{reviewID}", handler.DeleteReview)
}
