package model

import "time"

// Task represents a single tracked download job. A task is created by the
// dispatcher, mutated exclusively by its worker through the registry, and
// read by polling clients as a copy.
type Task struct {
	ID           string
	Status       TaskStatus
	Progress     float64 // 0 to 100, non-decreasing while processing
	Request      DownloadRequest
	ArtifactPath string // set only when Status == TaskStatusCompleted
	ErrorDetail  string // set only when Status == TaskStatusError
	CreatedAt    time.Time
	FinishedAt   time.Time
}

// Clone returns a copy of the task safe to hand to readers while the owning
// worker keeps mutating the original.
func (t *Task) Clone() *Task {
	c := *t
	return &c
}
