package server

import "strings"

// illegalFilenameChars are rejected by at least one common filesystem.
const illegalFilenameChars = `/\:*?"<>|`

// SanitizeFilename strips characters illegal in common filesystems from a
// display title. Falls back when nothing survives.
func SanitizeFilename(title, fallback string) string {
	var b strings.Builder
	for _, r := range title {
		if r < 0x20 || strings.ContainsRune(illegalFilenameChars, r) {
			continue
		}
		b.WriteRune(r)
	}

	// Leading/trailing dots and spaces are unsafe on Windows shares
	cleaned := strings.Trim(b.String(), " .")
	if cleaned == "" {
		return fallback
	}
	return cleaned
}
