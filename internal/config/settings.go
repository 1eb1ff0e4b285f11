package config

import (
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/clip-downloader/internal/download"
	"github.com/ytget/clip-downloader/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir        = "download_directory"
	KeyFileName           = "file_name"
	KeyKeepExtension      = "keep_extension"
	KeyRequestTimeout     = "request_timeout_seconds"
	KeyLanguage           = "app_language"
	KeyAutoRevealComplete = "auto_reveal_on_complete"
)

// Default values
const (
	DefaultFileName           = download.DefaultFileName
	DefaultKeepExtension      = false
	DefaultRequestTimeout     = 0 // no limit
	MaxRequestTimeout         = 3600
	DefaultLanguage           = "system"
	DefaultAutoRevealComplete = false
	FallbackDownloadDir       = "/tmp/downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = FallbackDownloadDir
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, dir)
}

// GetFileName returns the suggested file name for saved clips
func (s *Settings) GetFileName() string {
	return s.app.Preferences().StringWithFallback(KeyFileName, DefaultFileName)
}

// SetFileName sets the suggested file name; empty restores the default
func (s *Settings) SetFileName(name string) {
	if name == "" {
		name = DefaultFileName
	}
	s.app.Preferences().SetString(KeyFileName, name)
}

// GetKeepExtension returns whether a media extension is appended to the file name
func (s *Settings) GetKeepExtension() bool {
	return s.app.Preferences().BoolWithFallback(KeyKeepExtension, DefaultKeepExtension)
}

// SetKeepExtension sets whether a media extension is appended to the file name
func (s *Settings) SetKeepExtension(keep bool) {
	s.app.Preferences().SetBool(KeyKeepExtension, keep)
}

// GetRequestTimeoutSeconds returns the per-submission timeout, 0 meaning none
func (s *Settings) GetRequestTimeoutSeconds() int {
	return s.app.Preferences().IntWithFallback(KeyRequestTimeout, DefaultRequestTimeout)
}

// SetRequestTimeoutSeconds sets the per-submission timeout in seconds
func (s *Settings) SetRequestTimeoutSeconds(seconds int) {
	if seconds < 0 {
		seconds = 0
	}
	if seconds > MaxRequestTimeout {
		seconds = MaxRequestTimeout
	}
	s.app.Preferences().SetInt(KeyRequestTimeout, seconds)
}

// GetRequestTimeout returns the per-submission timeout as a duration
func (s *Settings) GetRequestTimeout() time.Duration {
	return time.Duration(s.GetRequestTimeoutSeconds()) * time.Second
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetAutoRevealOnComplete returns whether to reveal saved clips in the file manager
func (s *Settings) GetAutoRevealOnComplete() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoRevealComplete, DefaultAutoRevealComplete)
}

// SetAutoRevealOnComplete sets whether to reveal saved clips in the file manager
func (s *Settings) SetAutoRevealOnComplete(autoReveal bool) {
	s.app.Preferences().SetBool(KeyAutoRevealComplete, autoReveal)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}
