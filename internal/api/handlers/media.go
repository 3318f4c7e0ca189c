package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

// MediaHandler lists and creates catalog items
type MediaHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(db *models.Database, logger *logrus.Logger) *MediaHandler {
	return &MediaHandler{db: db, logger: logger}
}

// MediaResponse represents a media item in API responses
type MediaResponse struct {
	ID              uint64           `json:"id"`
	Path            string           `json:"path"`
	Kind            models.MediaKind `json:"kind"`
	DurationSeconds int              `json:"duration_seconds,omitempty"`
	Album           string           `json:"album,omitempty"`
	Favorite        bool             `json:"favorite"`
	TakenAt         time.Time        `json:"taken_at"`
}

func mediaResponse(item *models.MediaItem) MediaResponse {
	return MediaResponse{
		ID:              item.ID,
		Path:            item.Path,
		Kind:            item.Kind,
		DurationSeconds: item.DurationSeconds,
		Album:           item.Album,
		Favorite:        item.Favorite,
		TakenAt:         item.TakenAt,
	}
}

// CreateMediaRequest represents a catalog insert
type CreateMediaRequest struct {
	Path            string           `json:"path"`
	Kind            models.MediaKind `json:"kind"`
	DurationSeconds int              `json:"duration_seconds"`
	Album           string           `json:"album"`
	Favorite        bool             `json:"favorite"`
	TakenAt         time.Time        `json:"taken_at"`
}

// ServeHTTP handles the media collection endpoint
func (h *MediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.list(w)
	case http.MethodPost:
		h.create(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MediaHandler) list(w http.ResponseWriter) {
	items, err := h.db.GetAllMedia()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := make([]MediaResponse, 0, len(items))
	for _, item := range items {
		response = append(response, mediaResponse(item))
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *MediaHandler) create(w http.ResponseWriter, r *http.Request) {
	var req CreateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Path == "" {
		writeError(w, http.StatusUnprocessableEntity, "path is required")
		return
	}
	if req.Kind != models.MediaKindPhoto && req.Kind != models.MediaKindVideo {
		writeError(w, http.StatusUnprocessableEntity, "kind must be photo or video")
		return
	}
	if req.DurationSeconds < 0 {
		writeError(w, http.StatusUnprocessableEntity, "duration must not be negative")
		return
	}

	if _, err := h.db.GetMediaByPath(req.Path); err == nil {
		writeError(w, http.StatusConflict, "media with this path already exists")
		return
	}

	item := &models.MediaItem{
		Path:            req.Path,
		Kind:            req.Kind,
		DurationSeconds: req.DurationSeconds,
		Album:           req.Album,
		Favorite:        req.Favorite,
		TakenAt:         req.TakenAt,
	}

	if err := h.db.CreateMedia(item); err != nil {
		h.logger.WithError(err).Error("Failed to create media item")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"media_id": item.ID,
		"path":     item.Path,
		"kind":     item.Kind,
	}).Info("Media item created")

	writeJSON(w, http.StatusCreated, mediaResponse(item))
}

// MediaItemHandler updates and deletes single catalog items
type MediaItemHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewMediaItemHandler creates a new media item handler
func NewMediaItemHandler(db *models.Database, logger *logrus.Logger) *MediaItemHandler {
	return &MediaItemHandler{db: db, logger: logger}
}

// UpdateMediaRequest represents a partial media update. Pointer fields
// distinguish "not provided" from zero values.
type UpdateMediaRequest struct {
	DurationSeconds *int       `json:"duration_seconds"`
	Album           *string    `json:"album"`
	Favorite        *bool      `json:"favorite"`
	TakenAt         *time.Time `json:"taken_at"`
}

// ServeHTTP handles the single media item endpoint
func (h *MediaItemHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("mediaID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid media id")
		return
	}

	switch r.Method {
	case http.MethodPatch:
		h.update(w, r, id)
	case http.MethodDelete:
		h.delete(w, id)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *MediaItemHandler) update(w http.ResponseWriter, r *http.Request, id uint64) {
	item, err := h.db.GetMediaByID(id)
	if err == bolthold.ErrNotFound {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get media item")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	var req UpdateMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.DurationSeconds != nil {
		if *req.DurationSeconds < 0 {
			writeError(w, http.StatusUnprocessableEntity, "duration must not be negative")
			return
		}
		item.DurationSeconds = *req.DurationSeconds
	}
	if req.Album != nil {
		item.Album = *req.Album
	}
	if req.Favorite != nil {
		item.Favorite = *req.Favorite
	}
	if req.TakenAt != nil {
		item.TakenAt = *req.TakenAt
	}

	if err := h.db.UpdateMedia(item); err != nil {
		h.logger.WithError(err).Error("Failed to update media item")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, mediaResponse(item))
}

func (h *MediaItemHandler) delete(w http.ResponseWriter, id uint64) {
	if _, err := h.db.GetMediaByID(id); err == bolthold.ErrNotFound {
		writeError(w, http.StatusNotFound, "media not found")
		return
	}

	if err := h.db.DeleteMedia(id); err != nil {
		h.logger.WithError(err).Error("Failed to delete media item")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.WithField("media_id", id).Info("Media item deleted")
	w.WriteHeader(http.StatusNoContent)
}
