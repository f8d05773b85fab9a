package customer

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juliettemtl/boutique-backend/internal/platform/validate"
)

// Handler exposes customer HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/customers", func(r chi.Router) {
		r.Get("/", h.list)          // GET    /api/v1/customers?search=
		r.Post("/", h.create)       // POST   /api/v1/customers
		r.Put("/{id}", h.update)    // PUT    /api/v1/customers/{id}
		r.Delete("/{id}", h.delete) // DELETE /api/v1/customers/{id}
	})
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.List(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, customers)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req UpsertCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c, err := h.service.Create(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, c)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req UpsertCustomerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	c, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, c)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	if errors.Is(err, ErrCustomerNotFound) {
		code = http.StatusNotFound
	} else {
		msg = "internal error"
	}
	respond(w, code, map[string]string{"error": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
