package download

// Package download fetches the media bytes behind a resolved clip address and
// hands them to a Saver under the suggested file name, reporting progress
// through a callback.
