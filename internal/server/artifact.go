package server

import (
	"fmt"
	"io"
	"log"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/ytget/yt-clipper/internal/model"
)

// DefaultContentType is used when the artifact extension maps to nothing.
const DefaultContentType = "application/octet-stream"

// contentTypes covers the containers the tool actually produces; the host
// MIME database is only a fallback.
var contentTypes = map[string]string{
	".mp4":  "video/mp4",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".mp3":  "audio/mpeg",
	".m4a":  "audio/mp4",
	".opus": "audio/opus",
}

func contentTypeFor(ext string) string {
	if ct, ok := contentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return DefaultContentType
}

// handleFetch streams a completed artifact exactly once. Whatever the
// transfer outcome, the artifact file and the registry entry are gone
// afterwards; a repeat fetch sees 404.
func (s *Server) handleFetch(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("task_id")

	task, err := s.registry.Get(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "task not found")
		return
	}
	if task.Status != model.TaskStatusCompleted {
		writeDetail(w, http.StatusConflict, fmt.Sprintf("task is %s, artifact not ready", task.Status))
		return
	}

	// Deleting the entry claims the artifact; a concurrent fetch of the same
	// id loses the race and sees 404.
	if err := s.registry.Delete(id); err != nil {
		writeDetail(w, http.StatusNotFound, "task not found")
		return
	}
	defer func() {
		if err := s.store.Remove(task.ArtifactPath); err != nil {
			log.Printf("Task %s: remove artifact: %v", id, err)
		}
	}()

	file, err := os.Open(task.ArtifactPath)
	if err != nil {
		log.Printf("Task %s: open artifact: %v", id, err)
		writeDetail(w, http.StatusInternalServerError, "artifact unavailable")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		log.Printf("Task %s: stat artifact: %v", id, err)
		writeDetail(w, http.StatusInternalServerError, "artifact unavailable")
		return
	}

	ext := filepath.Ext(task.ArtifactPath)
	filename := SanitizeFilename(task.Request.Title, id) + ext

	w.Header().Set("Content-Type", contentTypeFor(ext))
	w.Header().Set("Content-Length", strconv.FormatInt(info.Size(), 10))
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	if _, err := io.Copy(w, file); err != nil {
		// Cleanup still runs; the client may retry with a fresh submission.
		log.Printf("Task %s: transfer aborted: %v", id, err)
	}
}
