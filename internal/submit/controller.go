package submit

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ytget/clip-downloader/internal/download"
	"github.com/ytget/clip-downloader/internal/medal"
	"github.com/ytget/clip-downloader/internal/model"
)

// State is the submission state
type State int32

const (
	StateIdle State = iota
	StateProcessing
)

// String returns the string representation of State
func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateProcessing:
		return "Processing"
	default:
		return "Unknown"
	}
}

// ErrBusy is returned by Submit while another submission is in flight
var ErrBusy = errors.New("submission already in progress")

// Controller runs clip submissions one at a time
type Controller struct {
	state    atomic.Int32
	resolver Resolver
	fetcher  download.Fetcher

	mu       sync.Mutex
	timeout  time.Duration
	cancel   context.CancelFunc
	recorder Recorder
	onState  func(State)
	onUpdate func(*model.ClipTask)
}

// NewController creates an idle controller
func NewController(resolver Resolver, fetcher download.Fetcher) *Controller {
	return &Controller{
		resolver: resolver,
		fetcher:  fetcher,
	}
}

// SetTimeout bounds each submission; zero means no limit
func (c *Controller) SetTimeout(d time.Duration) {
	if d < 0 {
		d = 0
	}
	c.mu.Lock()
	c.timeout = d
	c.mu.Unlock()
}

// Timeout returns the per-submission limit
func (c *Controller) Timeout() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timeout
}

// SetRecorder attaches a telemetry recorder
func (c *Controller) SetRecorder(r Recorder) {
	c.mu.Lock()
	c.recorder = r
	c.mu.Unlock()
}

// SetStateCallback sets the function called after every state transition
func (c *Controller) SetStateCallback(callback func(State)) {
	c.mu.Lock()
	c.onState = callback
	c.mu.Unlock()
}

// SetUpdateCallback sets the function receiving task snapshots while a
// submission runs and once it finishes
func (c *Controller) SetUpdateCallback(callback func(*model.ClipTask)) {
	c.mu.Lock()
	c.onUpdate = callback
	c.mu.Unlock()
}

// State returns the current state
func (c *Controller) State() State {
	return State(c.state.Load())
}

// IsProcessing reports whether a submission is in flight
func (c *Controller) IsProcessing() bool {
	return c.State() == StateProcessing
}

// Begin moves Idle to Processing. It returns false, changing nothing, when a
// submission is already in flight.
func (c *Controller) Begin() bool {
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateProcessing)) {
		return false
	}
	c.stateChanged(StateProcessing)
	return true
}

// End moves Processing back to Idle
func (c *Controller) End() {
	if c.state.CompareAndSwap(int32(StateProcessing), int32(StateIdle)) {
		c.stateChanged(StateIdle)
	}
}

// Submit runs one submission for rawURL between Begin and End. It returns
// ErrBusy without any network activity if another one is in flight.
func (c *Controller) Submit(ctx context.Context, rawURL string) (*model.ClipTask, error) {
	if !c.Begin() {
		return nil, ErrBusy
	}
	defer c.End()

	return c.Run(ctx, rawURL), nil
}

// Cancel aborts the in-flight submission, if any
func (c *Controller) Cancel() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel == nil {
		return false
	}
	c.cancel()
	return true
}

// Run executes validate, resolve, fetch and save in order. Callers hold the
// Processing state (see Begin). Every failure is absorbed into the returned
// task's Outcome; Run never panics outward.
func (c *Controller) Run(ctx context.Context, rawURL string) (task *model.ClipTask) {
	task = model.NewClipTask(rawURL)

	ctx, cancel := c.runContext(ctx)
	defer func() {
		c.mu.Lock()
		c.cancel = nil
		c.mu.Unlock()
		cancel()
	}()

	defer func() {
		if r := recover(); r != nil {
			log.Printf("error during processing: %v", r)
			task.Finish(model.OutcomeUnexpectedError, fmt.Errorf("panic: %v", r))
		}
		c.notifyUpdate(task)
		if rec := c.getRecorder(); rec != nil {
			rec.ObserveTask(task)
		}
	}()

	outcome, err := c.process(ctx, task)
	task.Finish(outcome, err)

	log.Printf("Submission %s finished: outcome=%s output=%s", task.ID, task.Outcome, task.OutputPath)
	return task
}

// process performs the pipeline steps for task
func (c *Controller) process(ctx context.Context, task *model.ClipTask) (model.Outcome, error) {
	if !medal.IsValidURL(task.URL) {
		return model.OutcomeInvalidInput, medal.ErrInvalidURL
	}
	contentID, err := medal.ExtractContentID(task.URL)
	if err != nil {
		return model.OutcomeInvalidInput, err
	}
	task.ContentID = contentID

	task.Status = model.TaskStatusResolving
	c.notifyUpdate(task)

	content, err := c.resolver.Lookup(ctx, task.URL)
	if err != nil {
		if outcome, stopped := contextOutcome(ctx); stopped {
			return outcome, ctx.Err()
		}
		log.Printf("Failed to resolve content %s: %v", contentID, err)
		return model.OutcomeResolutionFailed, err
	}
	if content == nil || content.ContentURL1080p == "" {
		return model.OutcomeResolutionFailed, medal.ErrResolutionFailed
	}
	task.SourceURL = content.ContentURL1080p
	task.Title = content.ContentTitle

	task.Status = model.TaskStatusDownloading
	c.notifyUpdate(task)

	outputPath, err := c.fetcher.Fetch(ctx, task.SourceURL, func(done, total int64) {
		task.SetProgress(done, total)
		c.notifyUpdate(task)
	})
	if err != nil {
		if outcome, stopped := contextOutcome(ctx); stopped {
			return outcome, ctx.Err()
		}
		if errors.Is(err, download.ErrFetchFailed) {
			return model.OutcomeFetchFailed, err
		}
		log.Printf("error during processing: %v", err)
		return model.OutcomeUnexpectedError, err
	}
	task.OutputPath = outputPath

	return model.OutcomeSuccess, nil
}

// contextOutcome classifies a stage error caused by the run context ending,
// whichever stage was running
func contextOutcome(ctx context.Context) (model.Outcome, bool) {
	switch err := ctx.Err(); {
	case errors.Is(err, context.Canceled):
		return model.OutcomeCancelled, true
	case errors.Is(err, context.DeadlineExceeded):
		log.Printf("submission timed out: %v", err)
		return model.OutcomeTimedOut, true
	}
	return model.OutcomeNone, false
}

// runContext derives the cancellable, optionally time-limited context of one run
func (c *Controller) runContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	var (
		ctx    context.Context
		cancel context.CancelFunc
	)
	if c.timeout > 0 {
		ctx, cancel = context.WithTimeout(parent, c.timeout)
	} else {
		ctx, cancel = context.WithCancel(parent)
	}
	c.cancel = cancel
	return ctx, cancel
}

// stateChanged notifies the recorder and the state callback
func (c *Controller) stateChanged(s State) {
	c.mu.Lock()
	rec, callback := c.recorder, c.onState
	c.mu.Unlock()

	if rec != nil {
		rec.SetProcessing(s == StateProcessing)
	}
	if callback != nil {
		callback(s)
	}
}

// notifyUpdate hands a snapshot of task to the update callback, if set
func (c *Controller) notifyUpdate(task *model.ClipTask) {
	c.mu.Lock()
	callback := c.onUpdate
	c.mu.Unlock()

	if callback != nil {
		snapshot := *task
		callback(&snapshot)
	}
}

func (c *Controller) getRecorder() Recorder {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.recorder
}
