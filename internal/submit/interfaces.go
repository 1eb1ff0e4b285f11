package submit

import (
	"context"

	"github.com/ytget/clip-downloader/internal/medal"
	"github.com/ytget/clip-downloader/internal/model"
)

// Resolver looks up clip metadata, including the direct media address.
type Resolver interface {
	Lookup(ctx context.Context, clipURL string) (*medal.Content, error)
}

// Recorder receives submission telemetry. Implemented by metrics.Metrics.
type Recorder interface {
	SetProcessing(on bool)
	ObserveTask(task *model.ClipTask)
}
