package handlers

import (
	"net/http"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/sirupsen/logrus"
)

// StatusHandler handles status requests
type StatusHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewStatusHandler creates a new status handler
func NewStatusHandler(db *models.Database, logger *logrus.Logger) *StatusHandler {
	return &StatusHandler{
		db:     db,
		logger: logger,
	}
}

// StatusResponse represents the status response
type StatusResponse struct {
	TotalMedia    int            `json:"total_media"`
	Photos        int            `json:"photos"`
	Videos        int            `json:"videos"`
	Favorites     int            `json:"favorites"`
	MediaByAlbum  map[string]int `json:"media_by_album"`
	TotalDevices  int            `json:"total_devices"`
	ActiveEpochs  int            `json:"active_epochs"`
}

// ServeHTTP handles the status endpoint
func (h *StatusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	items, err := h.db.GetAllMedia()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get media")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	devices, err := h.db.GetAllDevices()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get devices")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := StatusResponse{
		TotalMedia:   len(items),
		MediaByAlbum: make(map[string]int),
		TotalDevices: len(devices),
	}

	for _, item := range items {
		switch item.Kind {
		case models.MediaKindPhoto:
			response.Photos++
		case models.MediaKindVideo:
			response.Videos++
		}

		if item.Favorite {
			response.Favorites++
		}

		if item.Album != "" {
			response.MediaByAlbum[item.Album]++
		}
	}

	for _, device := range devices {
		if _, err := h.db.GetEpoch(device.ID); err == nil {
			response.ActiveEpochs++
		}
	}

	writeJSON(w, http.StatusOK, response)
}
