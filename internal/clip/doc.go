package clip

// Package clip parses user-supplied "[[HH:]MM:]SS" time strings and classifies
// a (start, end) pair into an explicit full-media or clip-range selection.
