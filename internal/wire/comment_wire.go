package wire

import (
	"net/http"

	"ratings-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireComment(r chi.Router, handler *adaptor.Handler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/titles/{titleID}/reviews/{reviewID}/comments", handler.ListComments)
	r.Get("/api/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", handler.GetComment)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/titles/{titleID}/reviews/{reviewID}/comments", handler.CreateComment)
	r.With(auth).Patch("/api/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", handler.UpdateComment)
	r.With(auth).Delete("/api/titles/{titleID}/reviews/{reviewID}/comments/{commentID}", handler.DeleteComment)
}
