package wire

import (
	"ratings-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireAuth(r chi.Router, handler *adaptor.Handler) {
	// ==================== PUBLIC ROUTES ====================
	// Self-service signup and token exchange need no credentials
	r.Post("/api/auth/register", handler.Register)
	r.Post("/api/auth/token", handler.IssueToken)
}
