package model

import "errors"

// Error taxonomy surfaced to clients. Request-shaped failures are returned
// synchronously before a task exists; tool failures end up as task error
// detail; lookup failures map to not-found responses.
var (
	// ErrInvalidRequest rejects a malformed submission (missing URL, bad clip
	// times) before any task is created.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrTaskNotFound is returned for any lookup against an unknown or
	// already-consumed task id.
	ErrTaskNotFound = errors.New("task not found")

	// ErrNotReady is returned when an artifact is requested for a task that
	// has not completed.
	ErrNotReady = errors.New("artifact not ready")

	// ErrUnsupportedURL means the external tool does not recognize the source.
	ErrUnsupportedURL = errors.New("unsupported URL")

	// ErrFormatUnavailable means the requested format selector matched nothing.
	ErrFormatUnavailable = errors.New("requested format unavailable")

	// ErrExtractionFailed covers network and tool failures during resolve or
	// download.
	ErrExtractionFailed = errors.New("extraction failed")

	// ErrArtifactIO covers filesystem failures while placing or serving an
	// artifact (disk full, permissions).
	ErrArtifactIO = errors.New("artifact I/O failure")
)
