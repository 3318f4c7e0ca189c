package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/controllers"
	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/joelmeaders/LibraFoto-sub006/internal/slideshow"
	"github.com/sirupsen/logrus"
)

// CurrentHandler answers device polls for the current playback window
type CurrentHandler struct {
	slideshowCtrl *controllers.SlideshowController
	logger        *logrus.Logger
}

// NewCurrentHandler creates a new current-window handler
func NewCurrentHandler(slideshowCtrl *controllers.SlideshowController, logger *logrus.Logger) *CurrentHandler {
	return &CurrentHandler{
		slideshowCtrl: slideshowCtrl,
		logger:        logger,
	}
}

// PlaybackWindowResponse is the wire shape of a playback window. All
// instants are absolute timestamps so client clock skew cannot
// accumulate across polls.
type PlaybackWindowResponse struct {
	MediaID           uint64           `json:"media_id"`
	Path              string           `json:"path"`
	Kind              models.MediaKind `json:"kind"`
	StartsAt          time.Time        `json:"starts_at"`
	EndsAt            time.Time        `json:"ends_at"`
	NextPollAt        time.Time        `json:"next_poll_at"`
	PassLengthSeconds float64          `json:"pass_length_seconds"`
}

// ServeHTTP handles the device poll endpoint
func (h *CurrentHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	deviceID := r.PathValue("deviceID")
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "device id is required")
		return
	}

	window, err := h.slideshowCtrl.GetCurrent(deviceID, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, slideshow.ErrEmptyCatalog):
			writeError(w, http.StatusNotFound, "no media to display")
		case errors.Is(err, slideshow.ErrInvalidConfiguration):
			writeError(w, http.StatusUnprocessableEntity, err.Error())
		default:
			h.logger.WithError(err).WithField("device_id", deviceID).Error("Failed to resolve playback window")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, PlaybackWindowResponse{
		MediaID:           window.Item.ID,
		Path:              window.Item.Path,
		Kind:              window.Item.Kind,
		StartsAt:          window.Start,
		EndsAt:            window.End,
		NextPollAt:        window.NextPoll,
		PassLengthSeconds: window.PassLength.Seconds(),
	})
}
