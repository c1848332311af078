package clip

import (
	"errors"
	"testing"

	"github.com/ytget/yt-clipper/internal/model"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
		wantErr  bool
	}{
		{"01:02:03", 3723, false},
		{"00:00", 0, false},
		{"0", 0, false},
		{"45", 45, false},
		{"90", 90, false},
		{"02:30", 150, false},
		{"10:00:00", 36000, false},
		{"1:90", 0, true},
		{"1:02:60", 0, true},
		{"", 0, true},
		{"abc", 0, true},
		{"1:2:3:4", 0, true},
		{"-5", 0, true},
		{"00:-1", 0, true},
		{"1.5", 0, true},
	}

	for _, test := range tests {
		result, err := ParseTime(test.input)
		if test.wantErr {
			if err == nil {
				t.Errorf("ParseTime(%q) expected error, got %v", test.input, result)
			} else if !errors.Is(err, ErrInvalidTimeFormat) {
				t.Errorf("ParseTime(%q) error = %v, expected ErrInvalidTimeFormat", test.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTime(%q) unexpected error: %v", test.input, err)
			continue
		}
		if result != test.expected {
			t.Errorf("ParseTime(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestParseRange_FullMedia(t *testing.T) {
	tests := []struct {
		start string
		end   string
	}{
		{"00:00", ""},
		{"", ""},
		{"0", ""},
		{"00:00:00", ""},
	}

	for _, test := range tests {
		sel, err := ParseRange(test.start, test.end)
		if err != nil {
			t.Fatalf("ParseRange(%q, %q) unexpected error: %v", test.start, test.end, err)
		}
		if sel.Kind != model.SelectionFullMedia {
			t.Errorf("ParseRange(%q, %q) kind = %v, expected SelectionFullMedia", test.start, test.end, sel.Kind)
		}
	}
}

func TestParseRange_Clip(t *testing.T) {
	sel, err := ParseRange("00:10", "00:20")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Kind != model.SelectionClipRange {
		t.Fatalf("expected SelectionClipRange, got %v", sel.Kind)
	}
	if sel.Start != 10 || sel.End != 20 {
		t.Errorf("expected range [10, 20], got [%v, %v]", sel.Start, sel.End)
	}
	if sel.IsOpenEnded() {
		t.Error("bounded clip reported as open-ended")
	}
}

func TestParseRange_OpenEnd(t *testing.T) {
	sel, err := ParseRange("00:10", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.Kind != model.SelectionClipRange {
		t.Fatalf("expected SelectionClipRange, got %v", sel.Kind)
	}
	if sel.Start != 10 {
		t.Errorf("expected start 10, got %v", sel.Start)
	}
	if !sel.IsOpenEnded() {
		t.Error("expected open-ended clip")
	}
}

func TestParseRange_Ordering(t *testing.T) {
	tests := []struct {
		start string
		end   string
	}{
		{"00:20", "00:10"},
		{"00:10", "00:10"},
		{"", "0"},
	}

	for _, test := range tests {
		_, err := ParseRange(test.start, test.end)
		if !errors.Is(err, ErrInvalidClipRange) {
			t.Errorf("ParseRange(%q, %q) error = %v, expected ErrInvalidClipRange", test.start, test.end, err)
		}
	}
}

func TestParseRange_BadComponent(t *testing.T) {
	if _, err := ParseRange("bogus", "00:20"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("expected ErrInvalidTimeFormat, got %v", err)
	}
	if _, err := ParseRange("00:10", "bogus"); !errors.Is(err, ErrInvalidTimeFormat) {
		t.Errorf("expected ErrInvalidTimeFormat, got %v", err)
	}
}
