package export

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler exposes the database export endpoint.
type Handler struct {
	service Service
	log     *zap.Logger
}

func NewHandler(service Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/v1/export/database", h.exportDatabase)
}

func (h *Handler) exportDatabase(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.Dump(r.Context())
	if err != nil {
		h.log.Error("export database", zap.Error(err))
		respond(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	stamp := data.ExportedAt.Format("2006-01-02")
	switch r.URL.Query().Get("format") {
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", attachment("export-"+stamp+".xlsx"))
		if err := WriteXLSX(w, data); err != nil {
			h.log.Error("write xlsx export", zap.Error(err))
		}
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment("commandes-"+stamp+".csv"))
		if err := WriteOrdersCSV(w, data.Orders); err != nil {
			h.log.Error("write csv export", zap.Error(err))
		}
	case "", "json":
		respond(w, http.StatusOK, data)
	default:
		respond(w, http.StatusBadRequest, map[string]string{"error": "format must be json, xlsx or csv"})
	}
}

func attachment(filename string) string {
	return fmt.Sprintf("attachment; filename=%q", filename)
}

func respond(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
