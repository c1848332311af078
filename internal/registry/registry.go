package registry

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/yt-clipper/internal/model"
)

// entry pairs a task with its own lock. The registry map lock only guards the
// map structure; all task mutation happens under the entry lock.
type entry struct {
	mu   sync.Mutex
	task model.Task
}

// Registry tracks every in-flight and finished task for the process lifetime.
// State is deliberately ephemeral: nothing survives a restart.
type Registry struct {
	mu    sync.RWMutex
	tasks map[string]*entry
}

// New creates an empty registry
func New() *Registry {
	return &Registry{
		tasks: make(map[string]*entry),
	}
}

// Create records a new task in the queued state and returns its id.
func (r *Registry) Create(req model.DownloadRequest) string {
	id := newTaskID()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.tasks[id] = &entry{
		task: model.Task{
			ID:        id,
			Status:    model.TaskStatusQueued,
			Progress:  0,
			Request:   req,
			CreatedAt: time.Now(),
		},
	}
	return id
}

// Get returns a copy of the task. Readers never observe a task mid-mutation.
func (r *Registry) Get(id string) (*model.Task, error) {
	e, err := r.lookup(id)
	if err != nil {
		return nil, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	return e.task.Clone(), nil
}

// Update moves a task forward and/or raises its progress. Backward status
// transitions and progress decreases are ignored, so a late callback from a
// finished download cannot corrupt terminal state.
func (r *Registry) Update(id string, status model.TaskStatus, progress float64) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.task.Status != status && e.task.Status.CanTransition(status) {
		e.task.Status = status
	}
	if !e.task.Status.IsTerminal() && progress > e.task.Progress {
		e.task.Progress = clampProgress(progress)
	}
	return nil
}

// SetArtifact records the artifact path and marks the task completed.
func (r *Registry) SetArtifact(id, path string) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.task.Status.IsTerminal() {
		return fmt.Errorf("task %s already finished as %s", id, e.task.Status)
	}
	e.task.Status = model.TaskStatusCompleted
	e.task.Progress = 100
	e.task.ArtifactPath = path
	e.task.FinishedAt = time.Now()
	return nil
}

// SetError records a human-readable failure cause and marks the task failed.
func (r *Registry) SetError(id, detail string) error {
	e, err := r.lookup(id)
	if err != nil {
		return err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.task.Status.IsTerminal() {
		return fmt.Errorf("task %s already finished as %s", id, e.task.Status)
	}
	e.task.Status = model.TaskStatusError
	e.task.ErrorDetail = detail
	e.task.ArtifactPath = ""
	e.task.FinishedAt = time.Now()
	return nil
}

// Delete removes the task entry. Subsequent lookups return ErrTaskNotFound.
func (r *Registry) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tasks[id]; !exists {
		return fmt.Errorf("%w: %s", model.ErrTaskNotFound, id)
	}
	delete(r.tasks, id)
	return nil
}

// Len returns the number of tracked tasks
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.tasks)
}

func (r *Registry) lookup(id string) (*entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.tasks[id]
	if !exists {
		return nil, fmt.Errorf("%w: %s", model.ErrTaskNotFound, id)
	}
	return e, nil
}

func clampProgress(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// newTaskID generates a unique task ID using UUID v7 for better uniqueness and time ordering
func newTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to timestamp if UUID generation fails
		return fmt.Sprintf("task-%d", time.Now().UnixNano())
	}
	return id.String()
}
