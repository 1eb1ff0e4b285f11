package download

import (
	"context"
	"io"
)

// Fetcher retrieves media bytes and stores them locally.
type Fetcher interface {
	// Fetch downloads source and returns the path it was saved to.
	// onProgress may be nil; total is -1 when the size is unknown.
	Fetch(ctx context.Context, source string, onProgress func(done, total int64)) (string, error)
}

// Saver requests a local save of the bytes read from r under the suggested
// name. Implementations pick the final location and return it.
type Saver interface {
	Save(ctx context.Context, name string, r io.Reader) (string, error)
}

// Downloader is a Fetcher whose naming and destination can be reconfigured
// from user settings.
type Downloader interface {
	Fetcher
	SetFileName(name string)
	SetKeepExtension(keep bool)
	SetSaver(saver Saver)
}
