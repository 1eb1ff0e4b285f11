package ui

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"

	"github.com/ytget/clip-downloader/internal/config"
	"github.com/ytget/clip-downloader/internal/download"
	"github.com/ytget/clip-downloader/internal/medal"
	"github.com/ytget/clip-downloader/internal/model"
	"github.com/ytget/clip-downloader/internal/submit"
)

const testClipURL = "https://medal.tv/games/valorant/clips/abc123"

type stubResolver struct {
	block chan struct{}
	calls atomic.Int32
}

func (s *stubResolver) Lookup(ctx context.Context, clipURL string) (*medal.Content, error) {
	s.calls.Add(1)
	if s.block != nil {
		select {
		case <-s.block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return &medal.Content{ContentID: "abc123", ContentURL1080p: "https://cdn.example/video.mp4"}, nil
}

type stubDownloader struct {
	err           error
	fileName      string
	keepExtension bool
	saver         download.Saver
	calls         atomic.Int32
}

func (s *stubDownloader) Fetch(ctx context.Context, source string, onProgress func(done, total int64)) (string, error) {
	s.calls.Add(1)
	if s.err != nil {
		return "", s.err
	}
	return "/downloads/" + s.fileName, nil
}

func (s *stubDownloader) SetFileName(name string) { s.fileName = name }
func (s *stubDownloader) SetKeepExtension(keep bool) { s.keepExtension = keep }
func (s *stubDownloader) SetSaver(saver download.Saver) { s.saver = saver }

func newTestUI(t *testing.T, resolver *stubResolver, dl *stubDownloader) (*RootUI, fyne.Window) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	config.NewSettings(app).SetDownloadDirectory(t.TempDir())

	w := app.NewWindow("test")
	controller := submit.NewController(resolver, dl)
	return NewRootUI(w, app, controller, dl), w
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func isIdle(ui *RootUI) func() bool {
	return func() bool {
		return !ui.controller.IsProcessing() && !ui.downloadBtn.Disabled() && ui.downloadBtn.Text == "Download"
	}
}

func TestNewRootUI_InitialState(t *testing.T) {
	dl := &stubDownloader{}
	ui, _ := newTestUI(t, &stubResolver{}, dl)

	if ui.downloadBtn.Text != "Download" {
		t.Errorf("Expected button label 'Download', got %q", ui.downloadBtn.Text)
	}
	if ui.downloadBtn.Disabled() {
		t.Error("Expected download button to be enabled")
	}
	if ui.cancelBtn.Visible() {
		t.Error("Expected cancel button to be hidden while idle")
	}
	if dl.fileName != config.DefaultFileName {
		t.Errorf("Expected file name %q applied, got %q", config.DefaultFileName, dl.fileName)
	}
	if dl.saver == nil {
		t.Error("Expected a saver to be applied")
	}
	if ui.controller.Timeout() != 0 {
		t.Errorf("Expected no timeout by default, got %v", ui.controller.Timeout())
	}
}

func TestDownloadClick_WhileProcessingShowsAlert(t *testing.T) {
	resolver := &stubResolver{}
	dl := &stubDownloader{}
	ui, w := newTestUI(t, resolver, dl)

	// Another submission holds the controller
	if !ui.controller.Begin() {
		t.Fatal("Expected Begin to succeed")
	}
	ui.urlEntry.SetText(testClipURL)

	ui.onDownloadClick()

	if w.Canvas().Overlays().Top() == nil {
		t.Error("Expected the busy alert dialog to be shown")
	}
	if !ui.controller.IsProcessing() {
		t.Error("Expected state to stay Processing")
	}
	if resolver.calls.Load() != 0 || dl.calls.Load() != 0 {
		t.Error("Expected no network calls while busy")
	}

	ui.controller.End()
}

func TestDownloadClick_ProcessingThenIdle(t *testing.T) {
	resolver := &stubResolver{block: make(chan struct{})}
	dl := &stubDownloader{}
	ui, _ := newTestUI(t, resolver, dl)

	ui.urlEntry.SetText(testClipURL)
	test.Tap(ui.downloadBtn)

	if !ui.downloadBtn.Disabled() {
		t.Error("Expected download button to be disabled while processing")
	}
	if ui.downloadBtn.Text != "Processing..." {
		t.Errorf("Expected busy label, got %q", ui.downloadBtn.Text)
	}
	if !ui.cancelBtn.Visible() {
		t.Error("Expected cancel button while processing")
	}

	close(resolver.block)
	waitFor(t, "idle UI", isIdle(ui))

	if len(ui.history) != 1 || ui.history[0].Outcome != model.OutcomeSuccess {
		t.Fatalf("Expected one successful history entry, got %v", ui.history)
	}
	if !strings.HasPrefix(ui.notificationLabel.Text, "Saved to") {
		t.Errorf("Expected saved notification, got %q", ui.notificationLabel.Text)
	}
	if ui.urlEntry.Text != "" {
		t.Errorf("Expected URL entry to be cleared after success, got %q", ui.urlEntry.Text)
	}
}

func TestDownloadClick_InvalidURL(t *testing.T) {
	resolver := &stubResolver{}
	dl := &stubDownloader{}
	ui, _ := newTestUI(t, resolver, dl)

	ui.urlEntry.SetText("https://example.com/clips/abc123")
	test.Tap(ui.downloadBtn)
	waitFor(t, "idle UI", isIdle(ui))

	if resolver.calls.Load() != 0 {
		t.Error("Expected no lookup for invalid input")
	}
	if ui.notificationLabel.Text != ui.localization.GetText(KeyInvalidURL) {
		t.Errorf("Expected invalid URL notification, got %q", ui.notificationLabel.Text)
	}
	if ui.urlEntry.Text == "" {
		t.Error("Expected URL entry to keep the invalid text")
	}
}

func TestDownloadClick_SubmitsTextAsTyped(t *testing.T) {
	resolver := &stubResolver{}
	ui, _ := newTestUI(t, resolver, &stubDownloader{})

	ui.urlEntry.SetText(" " + testClipURL + " ")
	test.Tap(ui.downloadBtn)
	waitFor(t, "idle UI", isIdle(ui))

	if resolver.calls.Load() != 0 {
		t.Error("Expected no lookup for a link with surrounding spaces")
	}
	if len(ui.history) != 1 || ui.history[0].Outcome != model.OutcomeInvalidInput {
		t.Errorf("Expected invalid_input history entry, got %v", ui.history)
	}
}

func TestDownloadClick_FetchFailureReturnsToIdle(t *testing.T) {
	dl := &stubDownloader{err: errors.Join(download.ErrFetchFailed, errors.New("unexpected status code: 404"))}
	ui, _ := newTestUI(t, &stubResolver{}, dl)

	ui.urlEntry.SetText(testClipURL)
	test.Tap(ui.downloadBtn)
	waitFor(t, "idle UI", isIdle(ui))

	if ui.notificationLabel.Text != ui.localization.GetText(KeyFetchFailed) {
		t.Errorf("Expected fetch failure notification, got %q", ui.notificationLabel.Text)
	}
	if len(ui.history) != 1 || ui.history[0].Outcome != model.OutcomeFetchFailed {
		t.Errorf("Expected fetch_failed history entry, got %v", ui.history)
	}
}

func TestCancelClick(t *testing.T) {
	resolver := &stubResolver{block: make(chan struct{})}
	defer close(resolver.block)
	ui, _ := newTestUI(t, resolver, &stubDownloader{})

	ui.urlEntry.SetText(testClipURL)
	test.Tap(ui.downloadBtn)
	waitFor(t, "lookup to start", func() bool { return resolver.calls.Load() == 1 })

	test.Tap(ui.cancelBtn)
	waitFor(t, "idle UI", isIdle(ui))

	if ui.notificationLabel.Text != ui.localization.GetText(KeyCancelled) {
		t.Errorf("Expected cancelled notification, got %q", ui.notificationLabel.Text)
	}
}

func TestValidateURL(t *testing.T) {
	ui, _ := newTestUI(t, &stubResolver{}, &stubDownloader{})

	if err := ui.validateURL(""); err != nil {
		t.Errorf("Empty input should be allowed, got %v", err)
	}
	if err := ui.validateURL(testClipURL); err != nil {
		t.Errorf("Valid clip link rejected: %v", err)
	}
	if err := ui.validateURL(" " + testClipURL); err == nil {
		t.Error("Expected error for a link with surrounding spaces")
	}
	if err := ui.validateURL("https://youtube.com/watch?v=1"); err == nil {
		t.Error("Expected error for non-Medal link")
	}
}

func TestAddToHistory_KeepsNewestFirst(t *testing.T) {
	ui, _ := newTestUI(t, &stubResolver{}, &stubDownloader{})

	for i := 0; i < MaxHistoryItems+5; i++ {
		task := model.NewClipTask(testClipURL)
		task.ContentID = strings.Repeat("x", i+1)
		ui.addToHistory(task)
	}

	if len(ui.history) != MaxHistoryItems {
		t.Fatalf("Expected %d history items, got %d", MaxHistoryItems, len(ui.history))
	}
	if got := len(ui.history[0].ContentID); got != MaxHistoryItems+5 {
		t.Errorf("Expected newest entry first, got content ID length %d", got)
	}
}

func TestHistoryText(t *testing.T) {
	l := NewLocalization()

	ok := &model.ClipTask{Title: "Ace", Outcome: model.OutcomeSuccess, Status: model.TaskStatusCompleted, BytesDone: 2048}
	if got := historyText(l, ok); got != IconDone+" Ace · Completed · 2.0 KB" {
		t.Errorf("Unexpected history text: %q", got)
	}

	failed := &model.ClipTask{ContentID: "abc", Outcome: model.OutcomeFetchFailed, Status: model.TaskStatusFailed}
	if got := historyText(l, failed); got != IconError+" abc · Failed" {
		t.Errorf("Unexpected history text: %q", got)
	}

	l.SetLanguage("ru")
	cancelled := &model.ClipTask{ContentID: "abc", Outcome: model.OutcomeCancelled, Status: model.TaskStatusCancelled}
	if got := historyText(l, cancelled); got != IconCancel+" abc · Отменено" {
		t.Errorf("Expected localized status, got %q", got)
	}
	if got := historyText(l, failed); got != IconError+" abc · Ошибка" {
		t.Errorf("Expected localized status, got %q", got)
	}
}

func TestOutcomeMessage(t *testing.T) {
	ui, _ := newTestUI(t, &stubResolver{}, &stubDownloader{})

	tests := []struct {
		outcome  model.Outcome
		expected string
	}{
		{model.OutcomeInvalidInput, ui.localization.GetText(KeyInvalidURL)},
		{model.OutcomeResolutionFailed, ui.localization.GetText(KeyResolveFailed)},
		{model.OutcomeFetchFailed, ui.localization.GetText(KeyFetchFailed)},
		{model.OutcomeUnexpectedError, ui.localization.GetText(KeyUnexpectedError)},
		{model.OutcomeTimedOut, ui.localization.GetText(KeyTimedOut)},
		{model.OutcomeCancelled, ui.localization.GetText(KeyCancelled)},
	}

	for _, tt := range tests {
		if got := ui.outcomeMessage(&model.ClipTask{Outcome: tt.outcome}); got != tt.expected {
			t.Errorf("outcomeMessage(%s) = %q, expected %q", tt.outcome, got, tt.expected)
		}
	}
}
