package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/joelmeaders/LibraFoto-sub006/internal/models"
)

func mediaServer(t *testing.T, db *models.Database) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/api/media", NewMediaHandler(db, testLogger()).ServeHTTP)
	mux.HandleFunc("/api/media/{mediaID}", NewMediaItemHandler(db, testLogger()).ServeHTTP)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCreateAndListMedia(t *testing.T) {
	srv := mediaServer(t, testDB(t))

	body, _ := json.Marshal(CreateMediaRequest{
		Path:  "vacation/beach.jpg",
		Kind:  models.MediaKindPhoto,
		Album: "vacation",
	})
	resp, err := http.Post(srv.URL+"/api/media", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}

	// Duplicate path is rejected
	resp, err = http.Post(srv.URL+"/api/media", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate path, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/media")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var items []MediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(items) != 1 || items[0].Path != "vacation/beach.jpg" {
		t.Errorf("unexpected listing %+v", items)
	}
}

func TestPatchVideoDuration(t *testing.T) {
	db := testDB(t)
	item := &models.MediaItem{Path: "clip.mp4", Kind: models.MediaKindVideo}
	if err := db.CreateMedia(item); err != nil {
		t.Fatalf("failed to create media: %v", err)
	}
	srv := mediaServer(t, db)

	req, _ := http.NewRequest(http.MethodPatch,
		fmt.Sprintf("%s/api/media/%d", srv.URL, item.ID),
		bytes.NewReader([]byte(`{"duration_seconds": 95}`)))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	updated, err := db.GetMediaByID(item.ID)
	if err != nil {
		t.Fatalf("failed to reload media: %v", err)
	}
	if updated.DurationSeconds != 95 {
		t.Errorf("expected duration 95, got %d", updated.DurationSeconds)
	}
}

func TestDeleteMedia(t *testing.T) {
	db := testDB(t)
	item := &models.MediaItem{Path: "gone.jpg", Kind: models.MediaKindPhoto}
	if err := db.CreateMedia(item); err != nil {
		t.Fatalf("failed to create media: %v", err)
	}
	srv := mediaServer(t, db)

	req, _ := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/media/%d", srv.URL, item.ID), nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", resp.StatusCode)
	}
	if _, err := db.GetMediaByID(item.ID); err == nil {
		t.Error("deleted media should be gone")
	}
}
