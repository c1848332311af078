package storage

// Package storage owns the temporary artifact area. Finished downloads are
// adopted into it under their task id, served exactly once, and removed; a
// periodic sweep reclaims artifacts that were never fetched.
