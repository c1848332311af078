package clip

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ytget/yt-clipper/internal/model"
)

// Time component constants
const (
	SecondsPerMinute = 60
	MaxSexagesimal   = 59
	MaxComponents    = 3
	TimeSeparator    = ":"
)

var (
	// ErrInvalidTimeFormat rejects non-numeric or out-of-range time components.
	ErrInvalidTimeFormat = errors.New("invalid time format")

	// ErrInvalidClipRange rejects a clip whose start does not precede its end.
	ErrInvalidClipRange = errors.New("invalid clip range")
)

// ParseTime converts a "[[HH:]MM:]SS" string into seconds. Components below
// the leading one must stay within 0-59; the leading component is unbounded,
// so "90" is 90 seconds while "1:90" is rejected.
func ParseTime(s string) (float64, error) {
	parts := strings.Split(s, TimeSeparator)
	if len(parts) == 0 || len(parts) > MaxComponents {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	total := 0
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		if i > 0 && n > MaxSexagesimal {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		total = total*SecondsPerMinute + n
	}

	return float64(total), nil
}

// ParseRange classifies a (start, end) time-string pair. An empty component
// means "no trim on that side". A zero start with no end is a full download
// and bypasses trimming entirely.
func ParseRange(start, end string) (model.Selection, error) {
	var startSec float64
	if strings.TrimSpace(start) != "" {
		var err error
		startSec, err = ParseTime(start)
		if err != nil {
			return model.Selection{}, err
		}
	}

	if strings.TrimSpace(end) == "" {
		if startSec == 0 {
			return model.FullMedia(), nil
		}
		return model.ClipRange(startSec, 0), nil
	}

	endSec, err := ParseTime(end)
	if err != nil {
		return model.Selection{}, err
	}
	if startSec >= endSec {
		return model.Selection{}, fmt.Errorf("%w: start %q is not before end %q", ErrInvalidClipRange, start, end)
	}

	return model.ClipRange(startSec, endSec), nil
}
