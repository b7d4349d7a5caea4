package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mvogel/voliere/internal/model"
	"github.com/mvogel/voliere/internal/store"
)

// AviariesHandler handles aviary endpoints.
type AviariesHandler struct {
	DB *sql.DB
}

type aviaryRequest struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

func (req *aviaryRequest) toAviary() (*model.Aviary, string) {
	if req.Name == "" {
		return nil, "name required"
	}
	if req.Capacity < 1 {
		return nil, "capacity must be at least 1"
	}

	return &model.Aviary{
		Name:        req.Name,
		Location:    req.Location,
		Capacity:    req.Capacity,
		Description: req.Description,
		Notes:       req.Notes,
	}, ""
}

// List handles GET /api/aviaries.
func (h *AviariesHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	aviaries, err := store.ListAviaries(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list aviaries", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list aviaries")
		return
	}
	if aviaries == nil {
		aviaries = []model.Aviary{}
	}
	jsonResponse(w, http.StatusOK, aviaries)
}

// Create handles POST /api/aviaries.
func (h *AviariesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req aviaryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	aviary, msg := req.toAviary()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := store.CreateAviary(r.Context(), h.DB, claims.UserID, aviary)
	if err != nil {
		slog.Error("failed to create aviary", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create aviary")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/aviaries/{id}.
func (h *AviariesHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	aviary, err := store.GetAviary(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get aviary")
		return
	}
	if aviary == nil {
		jsonError(w, http.StatusNotFound, "aviary not found")
		return
	}

	jsonResponse(w, http.StatusOK, aviary)
}

// Update handles PUT /api/aviaries/{id}.
func (h *AviariesHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	existing, err := store.GetAviary(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get aviary")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "aviary not found")
		return
	}

	var req aviaryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	aviary, msg := req.toAviary()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	aviary.ID = id

	if err := store.UpdateAviary(r.Context(), h.DB, claims.UserID, aviary); err != nil {
		slog.Error("failed to update aviary", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update aviary")
		return
	}

	updated, _ := store.GetAviary(r.Context(), h.DB, claims.UserID, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/aviaries/{id}. Birds assigned to the aviary keep
// their assignment; it dangles afterwards.
func (h *AviariesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteAviary(r.Context(), h.DB, claims.UserID, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete aviary")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "aviary deleted"})
}

// GetBirds handles GET /api/aviaries/{id}/birds.
func (h *AviariesHandler) GetBirds(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	birds, err := store.GetBirdsByAviary(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get birds")
		return
	}
	if birds == nil {
		birds = []model.Bird{}
	}
	jsonResponse(w, http.StatusOK, birds)
}
