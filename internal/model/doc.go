package model

// Package model defines domain data structures shared across the engine:
// download tasks, request snapshots, resolved media metadata, status enums,
// and the error taxonomy surfaced to clients.
