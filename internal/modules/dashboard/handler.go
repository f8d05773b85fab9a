package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler exposes the dashboard HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/dashboard", func(r chi.Router) {
		r.Get("/", h.stats)
		r.Get("/analytics", h.analytics)
	})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	stats, err := h.service.Stats(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, stats)
}

func (h *Handler) analytics(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	analytics, err := h.service.Analytics(r.Context(), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, analytics)
}

func respondError(w http.ResponseWriter, err error) {
	if errors.Is(err, ErrInvalidDate) {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	respond(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
