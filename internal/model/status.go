package model

// TaskStatus represents the lifecycle state of a download task
type TaskStatus string

const (
	// TaskStatusQueued means the task is created but its worker has not started
	TaskStatusQueued TaskStatus = "queued"

	// TaskStatusProcessing means the download is in progress
	TaskStatusProcessing TaskStatus = "processing"

	// TaskStatusCompleted means the task finished and its artifact is ready
	TaskStatusCompleted TaskStatus = "completed"

	// TaskStatusError means the task failed with an error
	TaskStatusError TaskStatus = "error"
)

// statusRank orders statuses along the only legal transition path:
// queued -> processing -> {completed, error}.
var statusRank = map[TaskStatus]int{
	TaskStatusQueued:     0,
	TaskStatusProcessing: 1,
	TaskStatusCompleted:  2,
	TaskStatusError:      2,
}

// String returns the string representation of TaskStatus
func (ts TaskStatus) String() string {
	return string(ts)
}

// IsTerminal returns true if the task can no longer change state
func (ts TaskStatus) IsTerminal() bool {
	return ts == TaskStatusCompleted || ts == TaskStatusError
}

// CanTransition returns true if moving from ts to next follows the forward-only
// transition path. Terminal states accept no further transitions.
func (ts TaskStatus) CanTransition(next TaskStatus) bool {
	if ts.IsTerminal() {
		return false
	}
	from, ok := statusRank[ts]
	if !ok {
		return false
	}
	to, ok := statusRank[next]
	if !ok {
		return false
	}
	return to > from
}
