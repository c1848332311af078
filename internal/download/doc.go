package download

// Package download implements the asynchronous task engine: request
// validation and dispatch, and the per-task worker that drives the extraction
// adapter and reports progress into the registry.
