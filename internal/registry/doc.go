package registry

// Package registry is the single source of truth for task state. It is safe
// under concurrent worker mutation and client polling; each task id carries
// its own lock so distinct tasks never contend.
