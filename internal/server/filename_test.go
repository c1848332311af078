package server

import "testing"

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		title    string
		fallback string
		expected string
	}{
		{"My Clip", "id", "My Clip"},
		{`What/Is\This:Name*?`, "id", "WhatIsThisName"},
		{`"quoted" <title> |pipe|`, "id", "quoted title pipe"},
		{"...", "task-42", "task-42"},
		{"", "task-42", "task-42"},
		{"  spaced out  ", "id", "spaced out"},
		{"line\x00break\x1f", "id", "linebreak"},
		{"trailing dot.", "id", "trailing dot"},
	}

	for _, test := range tests {
		if got := SanitizeFilename(test.title, test.fallback); got != test.expected {
			t.Errorf("SanitizeFilename(%q) = %q, expected %q", test.title, got, test.expected)
		}
	}
}
