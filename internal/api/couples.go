package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mvogel/voliere/internal/model"
	"github.com/mvogel/voliere/internal/store"
)

// CouplesHandler handles breeding couple endpoints.
type CouplesHandler struct {
	DB *sql.DB
}

type coupleRequest struct {
	MaleID   string `json:"male_id"`
	FemaleID string `json:"female_id"`
	Season   string `json:"season"`
	Active   *bool  `json:"active"`
	Notes    string `json:"notes"`
}

func (req *coupleRequest) toCouple() (*model.Couple, string) {
	if req.MaleID == "" {
		return nil, "male_id required"
	}
	if req.FemaleID == "" {
		return nil, "female_id required"
	}
	if req.Season == "" {
		return nil, "season required"
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &model.Couple{
		MaleID:   req.MaleID,
		FemaleID: req.FemaleID,
		Season:   req.Season,
		Active:   active,
		Notes:    req.Notes,
	}, ""
}

// List handles GET /api/couples.
func (h *CouplesHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	couples, err := store.ListCouples(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list couples", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list couples")
		return
	}
	if couples == nil {
		couples = []model.Couple{}
	}
	jsonResponse(w, http.StatusOK, couples)
}

// Create handles POST /api/couples.
func (h *CouplesHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req coupleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	couple, msg := req.toCouple()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := store.CreateCouple(r.Context(), h.DB, claims.UserID, couple)
	if err != nil {
		slog.Error("failed to create couple", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create couple")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/couples/{id}.
func (h *CouplesHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	couple, err := store.GetCouple(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get couple")
		return
	}
	if couple == nil {
		jsonError(w, http.StatusNotFound, "couple not found")
		return
	}

	jsonResponse(w, http.StatusOK, couple)
}

// Update handles PUT /api/couples/{id}.
func (h *CouplesHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	existing, err := store.GetCouple(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get couple")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "couple not found")
		return
	}

	var req coupleRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	couple, msg := req.toCouple()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	couple.ID = id

	if err := store.UpdateCouple(r.Context(), h.DB, claims.UserID, couple); err != nil {
		slog.Error("failed to update couple", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update couple")
		return
	}

	updated, _ := store.GetCouple(r.Context(), h.DB, claims.UserID, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/couples/{id}. Nests of the couple stay as
// breeding history.
func (h *CouplesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteCouple(r.Context(), h.DB, claims.UserID, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete couple")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "couple deleted"})
}

// GetNests handles GET /api/couples/{id}/nests.
func (h *CouplesHandler) GetNests(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	nests, err := store.GetNestsByCouple(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get nests")
		return
	}
	if nests == nil {
		nests = []model.Nest{}
	}
	jsonResponse(w, http.StatusOK, nests)
}

// GetOffspring handles GET /api/couples/{id}/offspring.
func (h *CouplesHandler) GetOffspring(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	birds, err := store.GetOffspring(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get offspring")
		return
	}
	if birds == nil {
		birds = []model.Bird{}
	}
	jsonResponse(w, http.StatusOK, birds)
}
