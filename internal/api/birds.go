package api

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/mvogel/voliere/internal/imaging"
	"github.com/mvogel/voliere/internal/model"
	"github.com/mvogel/voliere/internal/store"
)

// BirdsHandler handles bird CRUD and relationship endpoints.
type BirdsHandler struct {
	DB *sql.DB
}

type birdRequest struct {
	RingNumber    string `json:"ring_number"`
	Name          string `json:"name"`
	Species       string `json:"species"`
	Subspecies    string `json:"subspecies"`
	Gender        string `json:"gender"`
	ColorMutation string `json:"color_mutation"`
	BirthDate     string `json:"birth_date"`
	Origin        string `json:"origin"`
	Status        string `json:"status"`
	AviaryID      string `json:"aviary_id"`
	FatherID      string `json:"father_id"`
	MotherID      string `json:"mother_id"`
	Notes         string `json:"notes"`
}

// toBird validates the request and converts it to a model.Bird.
func (req *birdRequest) toBird() (*model.Bird, string) {
	if req.RingNumber == "" {
		return nil, "ring_number required"
	}
	if req.Species == "" {
		return nil, "species required"
	}
	if req.Gender == "" {
		req.Gender = model.GenderUnknown
	}
	if !model.ValidGender(req.Gender) {
		return nil, "invalid gender"
	}
	if req.Origin == "" {
		req.Origin = model.OriginPurchased
	}
	if !model.ValidOrigin(req.Origin) {
		return nil, "invalid origin"
	}
	if req.Status == "" {
		req.Status = model.BirdStatusActive
	}
	if !model.ValidBirdStatus(req.Status) {
		return nil, "invalid status"
	}

	birthDate, err := parseDate(req.BirthDate)
	if err != nil {
		return nil, err.Error()
	}

	return &model.Bird{
		RingNumber:    req.RingNumber,
		Name:          req.Name,
		Species:       req.Species,
		Subspecies:    req.Subspecies,
		Gender:        req.Gender,
		ColorMutation: req.ColorMutation,
		BirthDate:     birthDate,
		Origin:        req.Origin,
		Status:        req.Status,
		AviaryID:      req.AviaryID,
		FatherID:      req.FatherID,
		MotherID:      req.MotherID,
		Notes:         req.Notes,
	}, ""
}

// List handles GET /api/birds.
func (h *BirdsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	status := r.URL.Query().Get("status")
	if status != "" && !model.ValidBirdStatus(status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	birds, err := store.ListBirds(r.Context(), h.DB, claims.UserID, status)
	if err != nil {
		slog.Error("failed to list birds", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to list birds")
		return
	}
	if birds == nil {
		birds = []model.Bird{}
	}
	jsonResponse(w, http.StatusOK, birds)
}

// Create handles POST /api/birds.
func (h *BirdsHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	var req birdRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bird, msg := req.toBird()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := store.CreateBird(r.Context(), h.DB, claims.UserID, bird)
	if err != nil {
		slog.Error("failed to create bird", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to create bird")
		return
	}

	jsonResponse(w, http.StatusCreated, created)
}

// Get handles GET /api/birds/{id}.
func (h *BirdsHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	bird, err := store.GetBird(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get bird")
		return
	}
	if bird == nil {
		jsonError(w, http.StatusNotFound, "bird not found")
		return
	}

	jsonResponse(w, http.StatusOK, bird)
}

// Update handles PUT /api/birds/{id}.
func (h *BirdsHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	existing, err := store.GetBird(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get bird")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "bird not found")
		return
	}

	var req birdRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bird, msg := req.toBird()
	if msg != "" {
		jsonError(w, http.StatusBadRequest, msg)
		return
	}
	bird.ID = id

	if err := store.UpdateBird(r.Context(), h.DB, claims.UserID, bird); err != nil {
		slog.Error("failed to update bird", "error", err)
		jsonError(w, http.StatusInternalServerError, "failed to update bird")
		return
	}

	updated, _ := store.GetBird(r.Context(), h.DB, claims.UserID, id)
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/birds/{id}. Couples and eggs referencing the
// bird keep their references; they dangle afterwards.
func (h *BirdsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	if err := store.DeleteBird(r.Context(), h.DB, claims.UserID, r.PathValue("id")); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete bird")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "bird deleted"})
}

// GetParents handles GET /api/birds/{id}/parents. Unknown or dangling parent
// references come back as null, not as errors.
func (h *BirdsHandler) GetParents(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	parents, err := store.GetParents(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get parents")
		return
	}
	if parents == nil {
		jsonError(w, http.StatusNotFound, "bird not found")
		return
	}

	jsonResponse(w, http.StatusOK, parents)
}

// GetHealth handles GET /api/birds/{id}/health.
func (h *BirdsHandler) GetHealth(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	records, err := store.GetHealthRecordsByBird(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get health records")
		return
	}
	if records == nil {
		records = []model.HealthRecord{}
	}
	jsonResponse(w, http.StatusOK, records)
}

// UploadImage handles PUT /api/birds/{id}/image.
func (h *BirdsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	id := r.PathValue("id")

	bird, err := store.GetBird(r.Context(), h.DB, claims.UserID, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get bird")
		return
	}
	if bird == nil {
		jsonError(w, http.StatusNotFound, "bird not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetBirdImage(r.Context(), h.DB, claims.UserID, id, result.Data, result.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/birds/{id}/image.
func (h *BirdsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())

	data, mime, err := store.GetBirdImage(r.Context(), h.DB, claims.UserID, r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.Write(data)
}
