package api

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mvogel/voliere/internal/export"
	"github.com/mvogel/voliere/internal/store"
)

// StatsHandler handles the statistics and export endpoints.
type StatsHandler struct {
	DB *sql.DB
}

// Get handles GET /api/stats.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	stats, err := store.GetStatistics(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to compute statistics", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to compute statistics")
		return
	}

	jsonResponse(w, http.StatusOK, stats)
}

// Export handles GET /api/export?format=json|text. The default format is json.
func (h *StatsHandler) Export(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	format := r.URL.Query().Get("format")
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "text" {
		jsonError(w, http.StatusBadRequest, "format must be json or text")
		return
	}

	snap, err := export.BuildSnapshot(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to build export", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to build export")
		return
	}

	filename := fmt.Sprintf("voliere-export-%s", time.Now().UTC().Format("2006-01-02"))

	switch format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.txt"`)
		w.Write([]byte(snap.Text()))
	default:
		data, err := snap.JSON()
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to encode export")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`.json"`)
		w.Write(data)
	}
}
