package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconFile     = "📄"
	IconError    = "❌"
	IconDone     = "✔"
	IconCancel   = "⏹"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%d%%"
)

// Layout sizing
const (
	ActionButtonWidth float32 = 72
	HistoryRowMinH    float32 = 36
	SettingsWidth     float32 = 500
	SettingsHeight    float32 = 420
)

// History
const (
	MaxHistoryItems = 20
)

// Debounce durations
const (
	ProgressUpdateDebounce = 100 * time.Millisecond
)
