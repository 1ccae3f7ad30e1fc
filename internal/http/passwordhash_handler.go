package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trinhdvt/storefront/internal/apperr"
	"github.com/trinhdvt/storefront/internal/service"
)

// PasswordHashHandler hashes a query-string password. It exists for parity
// with the original API and for local tooling only; it takes a secret in a
// URL and must not be mounted in a hardened deployment.
type PasswordHashHandler struct {
	responder
}

func NewPasswordHashHandler(logger *slog.Logger) *PasswordHashHandler {
	return &PasswordHashHandler{responder: responder{logger: logger}}
}

func (h *PasswordHashHandler) Register(r chi.Router) {
	r.Get("/passwordhash", h.passwordHash)
}

func (h *PasswordHashHandler) passwordHash(w http.ResponseWriter, r *http.Request) {
	password := r.URL.Query().Get("password")
	if password == "" {
		h.Error(w, r, apperr.ErrRequestPayloadNotValid.WrapParent(fmt.Errorf("missing password query parameter")))
		return
	}

	hash, err := service.HashPassword(password)
	if err != nil {
		h.Error(w, r, fmt.Errorf("hash password: %w", err))
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, hash)
}
