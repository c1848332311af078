package server

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/ytget/yt-clipper/internal/download"
	"github.com/ytget/yt-clipper/internal/extract"
	"github.com/ytget/yt-clipper/internal/model"
	"github.com/ytget/yt-clipper/internal/registry"
	"github.com/ytget/yt-clipper/internal/storage"
)

// Server wires the HTTP contract to the task engine.
type Server struct {
	httpServer *http.Server
	svc        *download.Service
	registry   *registry.Registry
	resolver   extract.Resolver
	store      *storage.Store
}

// New creates the server listening on addr.
func New(addr string, svc *download.Service, reg *registry.Registry, resolver extract.Resolver, store *storage.Store) *Server {
	s := &Server{
		svc:      svc,
		registry: reg,
		resolver: resolver,
		store:    store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /info", s.handleInfo)
	mux.HandleFunc("POST /download", s.handleSubmit)
	mux.HandleFunc("GET /status/{task_id}", s.handleStatus)
	mux.HandleFunc("GET /download/{task_id}", s.handleFetch)

	s.httpServer = &http.Server{Addr: addr, Handler: mux}
	return s
}

// Handler returns the route handler, primarily for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start serves until Shutdown is called.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.httpServer.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting connections and drains in-flight requests.
// Running download workers are unaffected; their state is ephemeral anyway.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type infoRequest struct {
	URL    string `json:"url"`
	Offset int    `json:"offset"`
}

// handleInfo resolves metadata for a video or one page of a collection.
func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	var req infoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.URL == "" {
		writeDetail(w, http.StatusBadRequest, "missing url")
		return
	}

	if extract.IsCollectionURL(req.URL) {
		info, err := s.resolver.ResolveCollection(r.Context(), req.URL, req.Offset)
		if err != nil {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, info)
		return
	}

	info, err := s.resolver.Resolve(r.Context(), req.URL)
	if err != nil {
		writeDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, info)
}

type submitRequest struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	FormatID  string `json:"format_id"`
	AudioOnly bool   `json:"audio_only"`
	Clip      *struct {
		Start string `json:"start"`
		End   string `json:"end"`
	} `json:"clip"`
}

type submitResponse struct {
	TaskID string `json:"task_id"`
}

// handleSubmit validates and dispatches a download, replying with the task id
// before any tool invocation happens.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	dreq := download.Request{
		URL:       req.URL,
		Title:     req.Title,
		FormatID:  req.FormatID,
		AudioOnly: req.AudioOnly,
	}
	if req.Clip != nil {
		dreq.ClipStart = req.Clip.Start
		dreq.ClipEnd = req.Clip.End
	}

	id, err := s.svc.Submit(dreq)
	if err != nil {
		if errors.Is(err, model.ErrInvalidRequest) {
			writeDetail(w, http.StatusBadRequest, err.Error())
			return
		}
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, submitResponse{TaskID: id})
}

type statusResponse struct {
	Status   model.TaskStatus `json:"status"`
	Progress float64          `json:"progress"`
	Error    string           `json:"error,omitempty"`
}

// handleStatus reports the polled task state.
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("task_id")

	task, err := s.registry.Get(id)
	if err != nil {
		writeDetail(w, http.StatusNotFound, "task not found")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:   task.Status,
		Progress: task.Progress,
		Error:    task.ErrorDetail,
	})
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Encode response: %v", err)
	}
}

func writeDetail(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]string{"detail": detail})
}
