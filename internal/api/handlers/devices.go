package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/timshannon/bolthold"
)

// DeviceListHandler lists registered devices
type DeviceListHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewDeviceListHandler creates a new device list handler
func NewDeviceListHandler(db *models.Database, logger *logrus.Logger) *DeviceListHandler {
	return &DeviceListHandler{db: db, logger: logger}
}

// DeviceResponse represents a device in API responses
type DeviceResponse struct {
	ID         string                 `json:"id"`
	Name       string                 `json:"name"`
	Slideshow  models.SlideshowConfig `json:"slideshow"`
	LastSeenAt time.Time              `json:"last_seen_at"`
}

// ServeHTTP handles the device list endpoint
func (h *DeviceListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	devices, err := h.db.GetAllDevices()
	if err != nil {
		h.logger.WithError(err).Error("Failed to get devices")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	response := make([]DeviceResponse, 0, len(devices))
	for _, device := range devices {
		response = append(response, DeviceResponse{
			ID:         device.ID,
			Name:       device.Name,
			Slideshow:  device.Slideshow,
			LastSeenAt: device.LastSeenAt,
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// DeviceSettingsHandler reads and writes per-device slideshow settings
type DeviceSettingsHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewDeviceSettingsHandler creates a new device settings handler
func NewDeviceSettingsHandler(db *models.Database, logger *logrus.Logger) *DeviceSettingsHandler {
	return &DeviceSettingsHandler{db: db, logger: logger}
}

// SettingsRequest represents a settings update
type SettingsRequest struct {
	Name      string                 `json:"name"`
	Slideshow models.SlideshowConfig `json:"slideshow"`
}

// ServeHTTP handles the device settings endpoint
func (h *DeviceSettingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	deviceID := r.PathValue("deviceID")
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "device id is required")
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.getSettings(w, deviceID)
	case http.MethodPut:
		h.putSettings(w, r, deviceID)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *DeviceSettingsHandler) getSettings(w http.ResponseWriter, deviceID string) {
	device, err := h.db.GetDevice(deviceID)
	if err == bolthold.ErrNotFound {
		writeError(w, http.StatusNotFound, "device not found")
		return
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get device")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, DeviceResponse{
		ID:         device.ID,
		Name:       device.Name,
		Slideshow:  device.Slideshow,
		LastSeenAt: device.LastSeenAt,
	})
}

func (h *DeviceSettingsHandler) putSettings(w http.ResponseWriter, r *http.Request, deviceID string) {
	var req SettingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Slideshow.Ordering == "" {
		req.Slideshow.Ordering = models.OrderingSequential
	}
	if !req.Slideshow.Ordering.Valid() {
		writeError(w, http.StatusUnprocessableEntity, "unknown ordering mode")
		return
	}
	if req.Slideshow.PhotoDurationSeconds < 0 {
		writeError(w, http.StatusUnprocessableEntity, "photo duration must not be negative")
		return
	}

	device, err := h.db.GetDevice(deviceID)
	if err == bolthold.ErrNotFound {
		device = &models.Device{ID: deviceID}
	} else if err != nil {
		h.logger.WithError(err).Error("Failed to get device")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	device.Name = req.Name
	device.Slideshow = req.Slideshow

	if err := h.db.SaveDevice(device); err != nil {
		h.logger.WithError(err).Error("Failed to save device")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.WithFields(logrus.Fields{
		"device_id": deviceID,
		"ordering":  device.Slideshow.Ordering,
	}).Info("Device settings saved")

	writeJSON(w, http.StatusOK, DeviceResponse{
		ID:         device.ID,
		Name:       device.Name,
		Slideshow:  device.Slideshow,
		LastSeenAt: device.LastSeenAt,
	})
}

// DeviceHandler deletes devices
type DeviceHandler struct {
	db     *models.Database
	logger *logrus.Logger
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(db *models.Database, logger *logrus.Logger) *DeviceHandler {
	return &DeviceHandler{db: db, logger: logger}
}

// ServeHTTP handles the device delete endpoint
func (h *DeviceHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	deviceID := r.PathValue("deviceID")
	if deviceID == "" {
		writeError(w, http.StatusBadRequest, "device id is required")
		return
	}

	if _, err := h.db.GetDevice(deviceID); err == bolthold.ErrNotFound {
		writeError(w, http.StatusNotFound, "device not found")
		return
	}

	if err := h.db.DeleteDevice(deviceID); err != nil {
		h.logger.WithError(err).Error("Failed to delete device")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.WithField("device_id", deviceID).Info("Device deleted")
	w.WriteHeader(http.StatusNoContent)
}
