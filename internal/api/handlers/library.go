package handlers

import (
	"net/http"

	"github.com/joelmeaders/LibraFoto-sub006/internal/controllers"
	"github.com/sirupsen/logrus"
)

// ScanHandler triggers a manual library rescan
type ScanHandler struct {
	libraryCtrl *controllers.LibraryController
	logger      *logrus.Logger
}

// NewScanHandler creates a new scan handler
func NewScanHandler(libraryCtrl *controllers.LibraryController, logger *logrus.Logger) *ScanHandler {
	return &ScanHandler{
		libraryCtrl: libraryCtrl,
		logger:      logger,
	}
}

// ServeHTTP handles the manual scan endpoint
func (h *ScanHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.libraryCtrl == nil {
		writeError(w, http.StatusConflict, "no media directory configured")
		return
	}

	if err := h.libraryCtrl.ScanLibrary(r.Context()); err != nil {
		h.logger.WithError(err).Error("Manual library scan failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
