package extract

import (
	"testing"
)

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		line     string
		expected float64
		ok       bool
	}{
		{"[download]   3.4% of   64.00MiB at    1.23MiB/s ETA 00:50", 0.034, true},
		{"[download]  45.2% of ~  85.49MiB at    2.48MiB/s ETA 00:27 (frag 4/17)", 0.452, true},
		{"[download] 100% of   64.00MiB in 00:01", 1.0, true},
		{"[download] Destination: clip [abc].webm", 0, false},
		{"[youtube] Extracting URL: https://...", 0, false},
		{"[Merger] Merging formats into \"file.mp4\"", 0, false},
		{"", 0, false},
	}

	for _, test := range tests {
		fraction, ok := parseProgressLine(test.line)
		if ok != test.ok {
			t.Errorf("parseProgressLine(%q) ok = %v, expected %v", test.line, ok, test.ok)
			continue
		}
		if ok && fraction != test.expected {
			t.Errorf("parseProgressLine(%q) = %v, expected %v", test.line, fraction, test.expected)
		}
	}
}

func TestProgressTracker_Monotonic(t *testing.T) {
	var reported []float64
	tracker := newProgressTracker(func(f float64) { reported = append(reported, f) })

	lines := []string{
		"[download]  10.0% of 10.00MiB at 1.00MiB/s ETA 00:09",
		"[download]  50.0% of 10.00MiB at 1.00MiB/s ETA 00:05",
		// Second stream restarts the percentage; must be ignored
		"[download]   5.0% of  2.00MiB at 1.00MiB/s ETA 00:02",
		"[download]  80.0% of 10.00MiB at 1.00MiB/s ETA 00:02",
		"[download] 100% of 10.00MiB in 00:10",
	}
	for _, line := range lines {
		tracker.Observe(line)
	}

	expected := []float64{0.1, 0.5, 0.8, 1.0}
	if len(reported) != len(expected) {
		t.Fatalf("reported %v, expected %v", reported, expected)
	}
	for i := range expected {
		if reported[i] != expected[i] {
			t.Errorf("report %d = %v, expected %v", i, reported[i], expected[i])
		}
	}
}

func TestProgressTracker_Finish(t *testing.T) {
	var reported []float64
	tracker := newProgressTracker(func(f float64) { reported = append(reported, f) })

	tracker.Observe("[download]  40.0% of 10.00MiB at 1.00MiB/s ETA 00:06")
	tracker.Finish()

	if len(reported) != 2 || reported[1] != 1.0 {
		t.Errorf("expected terminal 100%% report, got %v", reported)
	}

	// Finish after a natural 100% adds nothing
	reported = nil
	tracker = newProgressTracker(func(f float64) { reported = append(reported, f) })
	tracker.Observe("[download] 100% of 10.00MiB in 00:01")
	tracker.Finish()
	if len(reported) != 1 {
		t.Errorf("expected a single terminal report, got %v", reported)
	}
}

func TestProgressTracker_NilCallback(t *testing.T) {
	tracker := newProgressTracker(nil)
	tracker.Observe("[download]  40.0% of 10.00MiB at 1.00MiB/s ETA 00:06")
	tracker.Finish()
}
