package model

// Package model defines domain data structures used across the app: clip
// download tasks, their status enum and the explicit submission outcome.
// Structures are designed for direct display in the UI and explicit state
// transitions.
