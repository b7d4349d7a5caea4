package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mvogel/voliere/internal/model"
	"github.com/mvogel/voliere/internal/store"
)

// EggsHandler handles egg endpoints.
type EggsHandler struct {
	DB *sql.DB
}

type eggRequest struct {
	NestID    string `json:"nest_id"`
	LayDate   string `json:"lay_date"`
	Status    string `json:"status"`
	HatchDate string `json:"hatch_date"`
	BirdID    string `json:"bird_id"`
	Notes     string `json:"notes"`
}

func (req *eggRequest) toEgg() (*model.Egg, string) {
	if req.NestID == "" {
		return nil, "nest_id required"
	}
	if req.Status == "" {
		req.Status = model.EggStatusLaid
	}
	if !model.ValidEggStatus(req.Status) {
		return nil, "invalid status"
	}

	layDate, err := parseDate(req.LayDate)
	if err != nil {
		return nil, err.Error()
	}
	hatchDate, err := parseOptionalDate(req.HatchDate)
	if err != nil {
		return nil, err.Error()
	}

	return &model.Egg{
		NestID:    req.NestID,
		LayDate:   layDate,
		Status:    req.Status,
		HatchDate: hatchDate,
		BirdID:    req.BirdID,
		Notes:     req.Notes,
	}, ""
}

// List handles GET /api/eggs.
func (h *EggsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	eggs, err := store.ListEggs(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list eggs", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list eggs")
		return
	}
	if eggs == nil {
		eggs = []model.Egg{}
	}
	jsonResponse(w, http.StatusOK, eggs)
}

// Create handles POST /api/eggs.
func (h *EggsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req eggRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	egg, msg := req.toEgg()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := store.CreateEgg(r.Context(), h.DB, claims.UserID, egg)
	if err != nil {
		slog.Error("failed to create egg", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create egg")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/eggs/{id}.
func (h *EggsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	egg, err := store.GetEgg(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get egg")
		return
	}
	if egg == nil {
		jsonError(w, http.StatusNotFound, "egg not found")
		return
	}

	jsonResponse(w, http.StatusOK, egg)
}

// Update handles PUT /api/eggs/{id}.
func (h *EggsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	existing, err := store.GetEgg(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get egg")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "egg not found")
		return
	}

	var req eggRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	egg, msg := req.toEgg()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	egg.ID = id

	if err := store.UpdateEgg(r.Context(), h.DB, claims.UserID, egg); err != nil {
		slog.Error("failed to update egg", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update egg")
		return
	}

	updated, _ := store.GetEgg(r.Context(), h.DB, claims.UserID, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/eggs/{id}.
func (h *EggsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteEgg(r.Context(), h.DB, claims.UserID, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete egg")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "egg deleted"})
}
