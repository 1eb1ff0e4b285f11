package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskIDPrefix prefixes every generated task ID
const TaskIDPrefix = "clip-"

// ClipTask represents a single clip submission, from the pasted link to the
// saved file
type ClipTask struct {
	ID         string
	URL        string // clip link as entered
	ContentID  string // identifier extracted from the clip link
	SourceURL  string // direct media address returned by the content API
	Title      string // clip title, if the content API returned one
	Status     TaskStatus
	Outcome    Outcome
	Progress   float64 // 0.0 to 1.0
	Percent    int     // 0 to 100
	BytesDone  int64
	BytesTotal int64  // -1 if unknown
	OutputPath string // path to the saved file
	LastError  string // last error message if any
	StartedAt  time.Time
	FinishedAt time.Time
}

// NewClipTask creates a pending task for the given link
func NewClipTask(url string) *ClipTask {
	return &ClipTask{
		ID:         NewTaskID(),
		URL:        url,
		Status:     TaskStatusPending,
		BytesTotal: -1,
		StartedAt:  time.Now(),
	}
}

// NewTaskID generates a unique task ID
func NewTaskID() string {
	return TaskIDPrefix + uuid.NewString()
}

// SetProgress records transferred bytes and recomputes the percentage when
// the total is known
func (ct *ClipTask) SetProgress(done, total int64) {
	ct.BytesDone = done
	ct.BytesTotal = total
	if total > 0 {
		ct.Progress = float64(done) / float64(total)
		if ct.Progress > 1 {
			ct.Progress = 1
		}
		ct.Percent = int(ct.Progress * 100)
	}
}

// Finish stamps the final outcome
func (ct *ClipTask) Finish(outcome Outcome, err error) {
	ct.Outcome = outcome
	ct.Status = outcome.Status()
	if err != nil {
		ct.LastError = err.Error()
	}
	if outcome == OutcomeSuccess {
		ct.Progress = 1.0
		ct.Percent = 100
	}
	ct.FinishedAt = time.Now()
}

// Duration returns how long the task ran, or zero while it is running
func (ct *ClipTask) Duration() time.Duration {
	if ct.FinishedAt.IsZero() {
		return 0
	}
	return ct.FinishedAt.Sub(ct.StartedAt)
}

// GetSizeString returns the transferred size in a human readable form, or "—"
// if nothing was transferred
func (ct *ClipTask) GetSizeString() string {
	if ct.BytesDone <= 0 {
		return "—"
	}
	const unit = 1024
	if ct.BytesDone < unit {
		return fmt.Sprintf("%d B", ct.BytesDone)
	}
	div, exp := int64(unit), 0
	for n := ct.BytesDone / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(ct.BytesDone)/float64(div), "KMGTPE"[exp])
}

// GetDisplayTitle returns title, filename, content ID, or URL in order of preference
func (ct *ClipTask) GetDisplayTitle() string {
	if t := strings.TrimSpace(ct.Title); t != "" {
		return t
	}

	if ct.OutputPath != "" {
		return filepath.Base(ct.OutputPath)
	}

	if ct.ContentID != "" {
		return ct.ContentID
	}

	return ct.URL
}
