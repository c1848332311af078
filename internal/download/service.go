package download

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/ytget/yt-clipper/internal/clip"
	"github.com/ytget/yt-clipper/internal/extract"
	"github.com/ytget/yt-clipper/internal/model"
	"github.com/ytget/yt-clipper/internal/registry"
	"github.com/ytget/yt-clipper/internal/storage"
)

// ProgressLogInterval caps how often one worker logs its task's progress.
// Registry updates are not paced; every tool event reaches the registry.
const ProgressLogInterval = time.Second

// Request is a raw submission as received from the client, before
// validation. Clip times are the user-supplied "[[HH:]MM:]SS" strings.
type Request struct {
	URL       string
	Title     string
	FormatID  string
	AudioOnly bool
	ClipStart string
	ClipEnd   string
}

// Service accepts download requests and runs one worker goroutine per task.
// The registry is the only state shared between workers.
type Service struct {
	registry   *registry.Registry
	downloader extract.Downloader
	store      *storage.Store
}

// NewService creates the task engine
func NewService(reg *registry.Registry, dl extract.Downloader, store *storage.Store) *Service {
	return &Service{
		registry:   reg,
		downloader: dl,
		store:      store,
	}
}

// Submit validates a request, creates a queued task, and schedules its worker.
// It returns the task id immediately and never waits on tool or network I/O;
// validation failures are reported synchronously and create no task.
func (s *Service) Submit(req Request) (string, error) {
	if strings.TrimSpace(req.URL) == "" {
		return "", fmt.Errorf("%w: missing URL", model.ErrInvalidRequest)
	}

	selection, err := clip.ParseRange(req.ClipStart, req.ClipEnd)
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrInvalidRequest, err)
	}

	dreq := model.DownloadRequest{
		URL:       req.URL,
		Title:     req.Title,
		FormatID:  req.FormatID,
		AudioOnly: req.AudioOnly,
		Selection: selection,
	}

	id := s.registry.Create(dreq)
	go s.run(id, dreq)

	log.Printf("Task %s queued for %s", id, dreq.URL)
	return id, nil
}

// run drives one task to a terminal state. Any failure, including a panic in
// the adapter, is contained to this task's registry entry.
func (s *Service) run(id string, req model.DownloadRequest) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Task %s worker panicked: %v", id, r)
			if err := s.registry.SetError(id, fmt.Sprintf("internal worker failure: %v", r)); err != nil {
				log.Printf("Task %s: record panic: %v", id, err)
			}
		}
	}()

	if err := s.registry.Update(id, model.TaskStatusProcessing, 0); err != nil {
		log.Printf("Task %s: enter processing: %v", id, err)
		return
	}

	logLimiter := rate.NewLimiter(rate.Every(ProgressLogInterval), 1)
	onProgress := func(fraction float64) {
		progress := fraction * 100
		if err := s.registry.Update(id, model.TaskStatusProcessing, progress); err != nil {
			return
		}
		if logLimiter.Allow() {
			log.Printf("Task %s progress %.1f%%", id, progress)
		}
	}

	path, err := s.downloader.Download(context.Background(), id, req, onProgress)
	if err != nil {
		log.Printf("Task %s failed: %v", id, err)
		s.fail(id, err.Error())
		return
	}

	artifact, err := s.store.Adopt(id, path)
	if err != nil {
		log.Printf("Task %s artifact adoption failed: %v", id, err)
		os.Remove(path)
		s.fail(id, err.Error())
		return
	}

	if err := s.registry.SetArtifact(id, artifact); err != nil {
		log.Printf("Task %s: record artifact: %v", id, err)
		s.store.Remove(artifact)
		return
	}
	log.Printf("Task %s completed: %s", id, artifact)
}

func (s *Service) fail(id, detail string) {
	if err := s.registry.SetError(id, detail); err != nil {
		log.Printf("Task %s: record error: %v", id, err)
	}
}
