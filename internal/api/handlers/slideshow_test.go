package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/joelmeaders/LibraFoto-sub006/internal/controllers"
	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func testDB(t *testing.T) *models.Database {
	t.Helper()
	db, err := models.NewDatabase(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func currentServer(t *testing.T, db *models.Database) *httptest.Server {
	t.Helper()
	ctrl := controllers.NewSlideshowController(db, 10*time.Second, 0, testLogger())
	handler := NewCurrentHandler(ctrl, testLogger())

	mux := http.NewServeMux()
	mux.HandleFunc("/api/devices/{deviceID}/current", handler.ServeHTTP)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCurrentEndpoint(t *testing.T) {
	db := testDB(t)
	if err := db.CreateMedia(&models.MediaItem{Path: "a.jpg", Kind: models.MediaKindPhoto}); err != nil {
		t.Fatalf("failed to create media: %v", err)
	}
	srv := currentServer(t, db)

	resp, err := http.Get(srv.URL + "/api/devices/frame-1/current")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var window PlaybackWindowResponse
	if err := json.NewDecoder(resp.Body).Decode(&window); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if window.Path != "a.jpg" || window.Kind != models.MediaKindPhoto {
		t.Errorf("unexpected window %+v", window)
	}
	if !window.NextPollAt.Equal(window.EndsAt) {
		t.Errorf("next poll %v should equal window end %v", window.NextPollAt, window.EndsAt)
	}
	if !window.EndsAt.After(window.StartsAt) {
		t.Errorf("window must have positive length: [%v, %v)", window.StartsAt, window.EndsAt)
	}
}

func TestCurrentEndpointEmptyCatalog(t *testing.T) {
	srv := currentServer(t, testDB(t))

	resp, err := http.Get(srv.URL + "/api/devices/frame-1/current")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for empty catalog, got %d", resp.StatusCode)
	}
}

func TestCurrentEndpointInvalidConfiguration(t *testing.T) {
	db := testDB(t)
	if err := db.CreateMedia(&models.MediaItem{Path: "a.jpg", Kind: models.MediaKindPhoto}); err != nil {
		t.Fatalf("failed to create media: %v", err)
	}
	device := &models.Device{
		ID: "frame-1",
		Slideshow: models.SlideshowConfig{
			Ordering:             models.OrderingSequential,
			PhotoDurationSeconds: -1,
		},
	}
	if err := db.SaveDevice(device); err != nil {
		t.Fatalf("failed to save device: %v", err)
	}
	srv := currentServer(t, db)

	resp, err := http.Get(srv.URL + "/api/devices/frame-1/current")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Errorf("expected 422 for invalid configuration, got %d", resp.StatusCode)
	}
}

func TestCurrentEndpointRejectsPost(t *testing.T) {
	srv := currentServer(t, testDB(t))

	resp, err := http.Post(srv.URL+"/api/devices/frame-1/current", "application/json", nil)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", resp.StatusCode)
	}
}
