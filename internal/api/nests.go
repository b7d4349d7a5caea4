package api

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/mvogel/voliere/internal/model"
	"github.com/mvogel/voliere/internal/store"
)

// NestsHandler handles nest endpoints, including the hatch transition.
type NestsHandler struct {
	DB *sql.DB
}

type nestRequest struct {
	CoupleID          string `json:"couple_id"`
	StartDate         string `json:"start_date"`
	AviaryID          string `json:"aviary_id"`
	Active            *bool  `json:"active"`
	EggCount          int    `json:"egg_count"`
	ExpectedHatchDate string `json:"expected_hatch_date"`
	Notes             string `json:"notes"`
}

func (req *nestRequest) toNest() (*model.Nest, string) {
	if req.CoupleID == "" {
		return nil, "couple_id required"
	}
	if req.EggCount < 0 {
		return nil, "egg_count cannot be negative"
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, err.Error()
	}
	expected, err := parseOptionalDate(req.ExpectedHatchDate)
	if err != nil {
		return nil, err.Error()
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &model.Nest{
		CoupleID:          req.CoupleID,
		StartDate:         startDate,
		AviaryID:          req.AviaryID,
		Active:            active,
		EggCount:          req.EggCount,
		ExpectedHatchDate: expected,
		Notes:             req.Notes,
	}, ""
}

// List handles GET /api/nests.
func (h *NestsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	nests, err := store.ListNests(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list nests", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list nests")
		return
	}
	if nests == nil {
		nests = []model.Nest{}
	}
	jsonResponse(w, http.StatusOK, nests)
}

// Create handles POST /api/nests.
func (h *NestsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req nestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nest, msg := req.toNest()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := store.CreateNest(r.Context(), h.DB, claims.UserID, nest)
	if err != nil {
		slog.Error("failed to create nest", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create nest")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/nests/{id}.
func (h *NestsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	nest, err := store.GetNest(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get nest")
		return
	}
	if nest == nil {
		jsonError(w, http.StatusNotFound, "nest not found")
		return
	}

	jsonResponse(w, http.StatusOK, nest)
}

// Update handles PUT /api/nests/{id}.
func (h *NestsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	existing, err := store.GetNest(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get nest")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "nest not found")
		return
	}

	var req nestRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	nest, msg := req.toNest()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	nest.ID = id

	// Hatch bookkeeping is owned by the hatch transition, not by updates.
	nest.ActualHatchDate = existing.ActualHatchDate
	nest.HatchedCount = existing.HatchedCount

	if err := store.UpdateNest(r.Context(), h.DB, claims.UserID, nest); err != nil {
		slog.Error("failed to update nest", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update nest")
		return
	}

	updated, _ := store.GetNest(r.Context(), h.DB, claims.UserID, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/nests/{id}. Eggs of the nest stay as breeding
// history.
func (h *NestsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteNest(r.Context(), h.DB, claims.UserID, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete nest")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "nest deleted"})
}

// GetEggs handles GET /api/nests/{id}/eggs.
func (h *NestsHandler) GetEggs(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	eggs, err := store.GetEggsByNest(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get eggs")
		return
	}
	if eggs == nil {
		eggs = []model.Egg{}
	}
	jsonResponse(w, http.StatusOK, eggs)
}

type hatchRequest struct {
	Count     int    `json:"count"`
	HatchDate string `json:"hatch_date"`
}

// Hatch handles POST /api/nests/{id}/hatch.
func (h *NestsHandler) Hatch(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	nest, err := store.GetNest(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get nest")
		return
	}
	if nest == nil {
		jsonError(w, http.StatusNotFound, "nest not found")
		return
	}

	var req hatchRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	hatchDate := time.Now().UTC().Truncate(24 * time.Hour)
	if req.HatchDate != "" {
		hatchDate, err = parseDate(req.HatchDate)
		if err != nil {
			jsonError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	result, err := store.HatchNest(r.Context(), h.DB, claims.UserID, id, req.Count, hatchDate)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	slog.Info("nest hatched", "nest", id, "count", req.Count)
	jsonResponse(w, http.StatusOK, result)
}
