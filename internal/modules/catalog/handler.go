package catalog

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/juliettemtl/boutique-backend/internal/platform/validate"
)

// Handler exposes product and variant HTTP endpoints.
type Handler struct{ service Service }

func NewHandler(service Service) *Handler { return &Handler{service: service} }

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.listProducts)         // GET    /api/v1/products
		r.Post("/", h.createProduct)       // POST   /api/v1/products
		r.Get("/search", h.searchProducts) // GET    /api/v1/products/search?q=
		r.Get("/{id}", h.getProduct)       // GET    /api/v1/products/{id}
		r.Put("/{id}", h.updateProduct)    // PUT    /api/v1/products/{id}
		r.Delete("/{id}", h.deleteProduct) // DELETE /api/v1/products/{id}
		r.Get("/{id}/orders", h.productOrders)
	})
	r.Route("/api/v1/variants", func(r chi.Router) {
		r.Post("/", h.createVariant)       // POST   /api/v1/variants
		r.Put("/{id}", h.updateVariant)    // PUT    /api/v1/variants/{id}
		r.Delete("/{id}", h.deleteVariant) // DELETE /api/v1/variants/{id}
	})
}

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListProducts(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, products)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.service.CreateProduct(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, p)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.service.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	var req CreateProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	p, err := h.service.UpdateProduct(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, p)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Handler) searchProducts(w http.ResponseWriter, r *http.Request) {
	results, err := h.service.SearchProducts(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, results)
}

func (h *Handler) productOrders(w http.ResponseWriter, r *http.Request) {
	history, err := h.service.ProductOrders(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, history)
}

func (h *Handler) createVariant(w http.ResponseWriter, r *http.Request) {
	var req CreateVariantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	v, err := h.service.CreateVariant(r.Context(), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusCreated, v)
}

func (h *Handler) updateVariant(w http.ResponseWriter, r *http.Request) {
	var req VariantInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := validate.First(req); err != nil {
		respond(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	v, err := h.service.UpdateVariant(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, v)
}

func (h *Handler) deleteVariant(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteVariant(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, map[string]bool{"success": true})
}

func respondError(w http.ResponseWriter, err error) {
	code := http.StatusInternalServerError
	msg := err.Error()
	switch {
	case errors.Is(err, ErrProductNotFound), errors.Is(err, ErrVariantNotFound):
		code = http.StatusNotFound
	case errors.Is(err, ErrDuplicateSKU), errors.Is(err, ErrDuplicateSize):
		code = http.StatusConflict
	case errors.Is(err, ErrNegativePrice), errors.Is(err, ErrEmptyQuery):
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
