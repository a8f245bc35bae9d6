package wire

import (
	"net/http"

	"ratings-catalog/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUser(r chi.Router, handler *adaptor.Handler, auth func(http.Handler) http.Handler) {
	// ==================== PUBLIC ROUTES ====================
	r.Get("/api/users", handler.ListUsers)

	// ==================== PROTECTED ROUTES ====================
	// /api/users/me must be wired before /{username} so chi does not treat
	// "me" as a username
	r.With(auth).Get("/api/users/me", handler.GetProfile)
	r.With(auth).Patch("/api/users/me", handler.UpdateProfile)

	r.Get("/api/users/{username}", handler.GetUser)

	r.With(auth).Post("/api/users", handler.CreateUser)
	r.With(auth).Patch("/api/users/{username}", handler.UpdateUser)
	r.With(auth).Delete("/api/users/{username}", handler.DeleteUser)
}
