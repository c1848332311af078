package extract

import (
	"regexp"
	"strconv"
)

// Tool output with --newline, one progress event per line:
//   [download]   3.4% of   64.00MiB at    1.23MiB/s ETA 00:50
//   [download]  45.2% of ~  85.49MiB at    2.48MiB/s ETA 00:27 (frag 4/17)
//   [download] 100% of   64.00MiB in 00:01
var progressRe = regexp.MustCompile(`\[download\]\s+([\d.]+)%`)

// parseProgressLine extracts the download fraction from one line of tool
// output. ok is false for lines that carry no progress.
func parseProgressLine(line string) (fraction float64, ok bool) {
	m := progressRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	pct, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	return pct / 100, true
}

// progressTracker turns raw tool output lines into clamped, monotonically
// non-decreasing callback invocations.
type progressTracker struct {
	onProgress ProgressFunc
	last       float64
}

func newProgressTracker(onProgress ProgressFunc) *progressTracker {
	return &progressTracker{onProgress: onProgress}
}

// Observe inspects one output line and reports progress when it advanced.
// Spurious decreases (fragment restarts, second streams) are ignored.
func (p *progressTracker) Observe(line string) {
	fraction, ok := parseProgressLine(line)
	if !ok {
		return
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	if fraction <= p.last {
		return
	}
	p.last = fraction
	if p.onProgress != nil {
		p.onProgress(fraction)
	}
}

// Finish guarantees a terminal 100% report once the tool has exited cleanly.
func (p *progressTracker) Finish() {
	if p.last >= 1 {
		return
	}
	p.last = 1
	if p.onProgress != nil {
		p.onProgress(1)
	}
}
