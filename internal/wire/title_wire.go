package wire

import (
	"net/http"

	"ratings-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireTitle(r chi.Router, handler *adaptor.Handler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/titles", handler.ListTitles)
	r.Get("/api/titles/{titleID}", handler.GetTitle)

	// ==================== PROTECTED ROUTES ====================
	r.With(auth).Post("/api/titles", handler.CreateTitle)
	r.With(auth).Patch("/api/titles/{titleID}", handler.UpdateTitle)
	r.With(auth).Delete("/api/titles/{titleID}", handler.DeleteTitle)
}
