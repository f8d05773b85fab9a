package giftcard

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juliettemtl/boutique-backend/internal/platform/validate"
)

// Handler exposes gift card HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/gift-cards", func(r chi.Router) {
		r.Get("/", h.listGiftCards)
		r.Post("/", h.createGiftCard)
		r.Post("/validate", h.validateGiftCard)
		r.Post("/generate-code", h.generateCode)
		r.Get("/{id}", h.getGiftCard)
		r.Put("/{id}", h.updateGiftCard)
		r.Patch("/{id}", h.patchGiftCard)
		r.Delete("/{id}", h.deleteGiftCard)
	})
}

func (h *Handler) listGiftCards(w http.ResponseWriter, r *http.Request) {
	cards, err := h.service.ListGiftCards(r.Context(),
		r.URL.Query().Get("status"), r.URL.Query().Get("search"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, cards)
}

func (h *Handler) createGiftCard(w http.ResponseWriter, r *http.Request) {
	var req CreateGiftCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	card, err := h.service.CreateGiftCard(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, card)
}

func (h *Handler) getGiftCard(w http.ResponseWriter, r *http.Request) {
	card, err := h.service.GetGiftCard(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, card)
}

func (h *Handler) updateGiftCard(w http.ResponseWriter, r *http.Request) {
	var req UpdateGiftCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	card, err := h.service.UpdateGiftCard(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, card)
}

func (h *Handler) patchGiftCard(w http.ResponseWriter, r *http.Request) {
	var req PatchGiftCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	card, err := h.service.PatchGiftCard(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, card)
}

func (h *Handler) deleteGiftCard(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGiftCard(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) validateGiftCard(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	result, err := h.service.Validate(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func (h *Handler) generateCode(w http.ResponseWriter, r *http.Request) {
	code, err := h.service.GenerateCode(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]string{"code": code})
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, ErrGiftCardNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrDuplicateCode), errors.Is(err, ErrCardRedeemed):
		code = http.StatusConflict
	case errors.Is(err, ErrInvalidAmount), errors.Is(err, ErrNegativeOrder),
		errors.Is(err, ErrInvalidCustomerID), errors.Is(err, ErrInvalidDate):
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
