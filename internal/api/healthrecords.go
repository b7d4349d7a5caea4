package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mvogel/voliere/internal/model"
	"github.com/mvogel/voliere/internal/store"
)

// HealthRecordsHandler handles health record endpoints.
type HealthRecordsHandler struct {
	DB *sql.DB
}

type healthRecordRequest struct {
	BirdID      string `json:"bird_id"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Notes       string `json:"notes"`
}

func (req *healthRecordRequest) toRecord() (*model.HealthRecord, string) {
	if req.BirdID == "" {
		return nil, "bird_id required"
	}
	if !model.ValidHealthRecordType(req.Type) {
		return nil, "invalid type"
	}
	if req.Description == "" {
		return nil, "description required"
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err.Error()
	}

	return &model.HealthRecord{
		BirdID:      req.BirdID,
		Date:        date,
		Type:        req.Type,
		Description: req.Description,
		Notes:       req.Notes,
	}, ""
}

// List handles GET /api/health-records.
func (h *HealthRecordsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	records, err := store.ListHealthRecords(r.Context(), h.DB, claims.UserID)
	if err != nil {
		slog.Error("failed to list health records", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list health records")
		return
	}
	if records == nil {
		records = []model.HealthRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// Create handles POST /api/health-records.
func (h *HealthRecordsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req healthRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, msg := req.toRecord()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := store.CreateHealthRecord(r.Context(), h.DB, claims.UserID, record)
	if err != nil {
		slog.Error("failed to create health record", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create health record")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/health-records/{id}.
func (h *HealthRecordsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	record, err := store.GetHealthRecord(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get health record")
		return
	}
	if record == nil {
		jsonError(w, http.StatusNotFound, "health record not found")
		return
	}

	jsonResponse(w, http.StatusOK, record)
}

// Update handles PUT /api/health-records/{id}.
func (h *HealthRecordsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	existing, err := store.GetHealthRecord(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get health record")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "health record not found")
		return
	}

	var req healthRecordRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	record, msg := req.toRecord()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	record.ID = id

	if err := store.UpdateHealthRecord(r.Context(), h.DB, claims.UserID, record); err != nil {
		slog.Error("failed to update health record", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update health record")
		return
	}

	updated, _ := store.GetHealthRecord(r.Context(), h.DB, claims.UserID, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/health-records/{id}.
func (h *HealthRecordsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteHealthRecord(r.Context(), h.DB, claims.UserID, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete health record")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "health record deleted"})
}
