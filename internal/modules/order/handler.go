package order

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juliettemtl/boutique-backend/internal/platform/validate"
)

// Handler exposes order HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Get("/", h.listOrders)                // GET    /api/v1/orders
		r.Post("/", h.createOrder)              // POST   /api/v1/orders
		r.Get("/{id}", h.getOrder)              // GET    /api/v1/orders/{id}
		r.Put("/{id}", h.updateOrder)           // PUT    /api/v1/orders/{id}
		r.Delete("/{id}", h.deleteOrder)        // DELETE /api/v1/orders/{id}
		r.Post("/{id}/confirm", h.confirmOrder) // POST   /api/v1/orders/{id}/confirm
	})
}

func (h *Handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.service.ListOrders(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, orders)
}

func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	o, err := h.service.CreateOrder(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, o)
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.GetOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) updateOrder(w http.ResponseWriter, r *http.Request) {
	var req UpdateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	o, err := h.service.UpdateOrder(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func (h *Handler) deleteOrder(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteOrder(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) confirmOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.service.ConfirmOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, o)
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, ErrOrderNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrAlreadyConfirmed), errors.Is(err, ErrNotDraft):
		code = http.StatusConflict
	case errors.Is(err, ErrInsufficientStock):
		code = http.StatusUnprocessableEntity
	case errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidVariantID):
		code = http.StatusBadRequest
	default:
		msg = "internal error"
	}
	respond(w, code, map[string]string{"error": msg})
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
