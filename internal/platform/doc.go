package platform

// Package platform contains OS/platform integration: the filesystem saver for
// downloaded clips, download directory discovery and OS open/reveal.
