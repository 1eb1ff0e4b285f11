package model

// TaskStatus represents the status of a clip download task
type TaskStatus string

const (
	// TaskStatusPending means the task was created but no request was issued yet
	TaskStatusPending TaskStatus = "Pending"

	// TaskStatusResolving means the content API lookup is in progress
	TaskStatusResolving TaskStatus = "Resolving"

	// TaskStatusDownloading means the media bytes are being fetched and saved
	TaskStatusDownloading TaskStatus = "Downloading"

	// TaskStatusCompleted means the clip was saved locally
	TaskStatusCompleted TaskStatus = "Completed"

	// TaskStatusCancelled means the user cancelled the submission
	TaskStatusCancelled TaskStatus = "Cancelled"

	// TaskStatusFailed means the task finished without saving anything
	TaskStatusFailed TaskStatus = "Failed"
)

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsActive returns true if the task is in an active state
func (ts TaskStatus) IsActive() bool {
	return ts == TaskStatusResolving || ts == TaskStatusDownloading
}

// IsFinished returns true if the task is in a finished state (completed, cancelled, or failed)
func (ts TaskStatus) IsFinished() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusCancelled || ts == TaskStatusFailed
}

// Outcome is the explicit result of one submission.
type Outcome string

const (
	OutcomeNone             Outcome = ""
	OutcomeSuccess          Outcome = "success"
	OutcomeInvalidInput     Outcome = "invalid_input"
	OutcomeResolutionFailed Outcome = "resolution_failed"
	OutcomeFetchFailed      Outcome = "fetch_failed"
	OutcomeUnexpectedError  Outcome = "unexpected_error"
	OutcomeTimedOut         Outcome = "timed_out"
	OutcomeCancelled        Outcome = "cancelled"
)

// String returns the string representation of Outcome
func (o Outcome) String() string {
	return string(o)
}

// IsFailure reports whether the outcome means nothing was saved because
// something went wrong. Cancellation is not a failure.
func (o Outcome) IsFailure() bool {
	switch o {
	case OutcomeInvalidInput, OutcomeResolutionFailed, OutcomeFetchFailed, OutcomeUnexpectedError, OutcomeTimedOut:
		return true
	}
	return false
}

// Status maps a final outcome to the task status shown in the UI.
func (o Outcome) Status() TaskStatus {
	switch o {
	case OutcomeSuccess:
		return TaskStatusCompleted
	case OutcomeCancelled:
		return TaskStatusCancelled
	case OutcomeNone:
		return TaskStatusPending
	default:
		return TaskStatusFailed
	}
}

// AllOutcomes lists every final outcome, in display order.
func AllOutcomes() []Outcome {
	return []Outcome{
		OutcomeSuccess,
		OutcomeInvalidInput,
		OutcomeResolutionFailed,
		OutcomeFetchFailed,
		OutcomeUnexpectedError,
		OutcomeTimedOut,
		OutcomeCancelled,
	}
}
