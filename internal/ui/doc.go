package ui

// Package ui contains the Fyne-based user interface for the application.
// It wires the clip link entry and the download button to the submission
// controller and renders progress, outcomes, recent clips and settings. All UI
// strings are localized via Localization.
