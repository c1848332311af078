package server

// Package server exposes the polling HTTP contract: metadata resolution,
// download submission, status polling, and one-shot artifact retrieval with
// scoped cleanup.
