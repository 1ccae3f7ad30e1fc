package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/trinhdvt/storefront/internal/storage/db"
)

// HealthHandler reports whether the store behind the service is reachable.
type HealthHandler struct {
	responder
	name    string
	checker db.HealthChecker
}

func NewHealthHandler(logger *slog.Logger, name string, checker db.HealthChecker) *HealthHandler {
	return &HealthHandler{
		responder: responder{logger: logger},
		name:      name,
		checker:   checker,
	}
}

func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.health)
}

func (h *HealthHandler) health(w http.ResponseWriter, r *http.Request) {
	if _, err := h.checker.IsHealthy(r.Context()); err != nil {
		h.logger.ErrorContext(r.Context(), "health check failed", slog.Any("error", err))
		http.Error(w, "store unreachable", http.StatusServiceUnavailable)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s is up and running!", h.name)
}
