package submit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/ytget/clip-downloader/internal/download"
	"github.com/ytget/clip-downloader/internal/medal"
	"github.com/ytget/clip-downloader/internal/model"
	"github.com/ytget/clip-downloader/internal/platform"
)

// newPipeline wires the real resolver, fetcher and saver against a fake
// Medal API serving one clip
func newPipeline(t *testing.T, apiStatus, mediaStatus int) (*Controller, string, *atomic.Int32) {
	t.Helper()
	var mediaCalls atomic.Int32

	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	mux.HandleFunc("/api/content/abc123", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(apiStatus)
		_, _ = w.Write([]byte(`{"contentUrl1080p": "` + srv.URL + `/media/abc123.mp4"}`))
	})
	mux.HandleFunc("/media/abc123.mp4", func(w http.ResponseWriter, r *http.Request) {
		mediaCalls.Add(1)
		w.Header().Set("Content-Type", "video/mp4")
		w.WriteHeader(mediaStatus)
		_, _ = w.Write([]byte("mp4-bytes"))
	})

	dir := t.TempDir()
	resolver := medal.NewResolver(srv.Client(), srv.URL)
	fetcher := download.NewService(srv.Client(), platform.NewFileSaver(dir))
	return NewController(resolver, fetcher), dir, &mediaCalls
}

func TestPipeline_SavesClip(t *testing.T) {
	c, dir, _ := newPipeline(t, http.StatusOK, http.StatusOK)

	task, err := c.Submit(context.Background(), validClipURL)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if task.Outcome != model.OutcomeSuccess {
		t.Fatalf("Expected success, got %s (%s)", task.Outcome, task.LastError)
	}

	if task.OutputPath != filepath.Join(dir, "clip") {
		t.Errorf("Expected file named 'clip', got %s", task.OutputPath)
	}
	data, err := os.ReadFile(task.OutputPath)
	if err != nil {
		t.Fatalf("Failed to read saved clip: %v", err)
	}
	if string(data) != "mp4-bytes" {
		t.Errorf("Unexpected saved content %q", data)
	}
}

func TestPipeline_ResolveNon2xxSkipsFetch(t *testing.T) {
	c, dir, mediaCalls := newPipeline(t, http.StatusNotFound, http.StatusOK)

	task, _ := c.Submit(context.Background(), validClipURL)

	if task.Outcome != model.OutcomeResolutionFailed {
		t.Errorf("Expected resolution_failed, got %s", task.Outcome)
	}
	if mediaCalls.Load() != 0 {
		t.Errorf("Expected no media fetch, got %d", mediaCalls.Load())
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("Expected nothing saved, found %d entries", len(entries))
	}
}

func TestPipeline_FetchNon2xxReturnsToIdle(t *testing.T) {
	c, _, mediaCalls := newPipeline(t, http.StatusOK, http.StatusBadGateway)

	task, err := c.Submit(context.Background(), validClipURL)
	if err != nil {
		t.Fatalf("Fetch failure must not escape Submit, got %v", err)
	}
	if task.Outcome != model.OutcomeFetchFailed {
		t.Errorf("Expected fetch_failed, got %s", task.Outcome)
	}
	if mediaCalls.Load() != 1 {
		t.Errorf("Expected one media fetch, got %d", mediaCalls.Load())
	}
	if c.State() != StateIdle {
		t.Errorf("Expected Idle, got %s", c.State())
	}
}
