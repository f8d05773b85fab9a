package expense

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juliettemtl/boutique-backend/internal/platform/validate"
)

// maxImportSize caps uploaded spreadsheets at 10 MiB.
const maxImportSize = 10 << 20

// Handler exposes expense HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/expenses", func(r chi.Router) {
		r.Get("/", h.listExpenses)
		r.Post("/", h.createExpense)
		r.Post("/import", h.importSpreadsheet)
		r.Get("/{id}", h.getExpense)
		r.Put("/{id}", h.updateExpense)
		r.Delete("/{id}", h.deleteExpense)
	})
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	expenses, err := h.service.ListExpenses(r.Context(),
		q.Get("startDate"), q.Get("endDate"), q.Get("category"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, expenses)
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	e, err := h.service.CreateExpense(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, e)
}

func (h *Handler) getExpense(w http.ResponseWriter, r *http.Request) {
	e, err := h.service.GetExpense(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, e)
}

func (h *Handler) updateExpense(w http.ResponseWriter, r *http.Request) {
	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	e, err := h.service.UpdateExpense(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, e)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteExpense(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) importSpreadsheet(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "expected multipart form with a file field"})
		return
	}
	file, _, err := r.FormFile("file")
	if err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": "missing file field"})
		return
	}
	defer file.Close()

	result, err := h.service.ImportSpreadsheet(r.Context(), file)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, result)
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, ErrExpenseNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrNegativeAmount), errors.Is(err, ErrInvalidDate),
		errors.Is(err, ErrInvalidFile), errors.Is(err, ErrNoRows):
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
