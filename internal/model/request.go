package model

// SelectionKind distinguishes a full-media download from a clipped segment.
type SelectionKind int

const (
	// SelectionFullMedia downloads the whole source without trim arguments.
	SelectionFullMedia SelectionKind = iota

	// SelectionClipRange downloads only the [Start, End] segment.
	SelectionClipRange
)

// Selection is the tagged clip variant attached to a request. Intent is made
// explicit at the dispatcher boundary; nothing downstream infers a full
// download from sentinel time strings.
type Selection struct {
	Kind SelectionKind

	// Start is the clip start offset in seconds. Meaningful only for
	// SelectionClipRange.
	Start float64

	// End is the clip end offset in seconds. Zero means "to end of media".
	End float64
}

// IsOpenEnded returns true if the clip runs to the end of the media
func (sel Selection) IsOpenEnded() bool {
	return sel.Kind == SelectionClipRange && sel.End == 0
}

// FullMedia returns a selection covering the whole source
func FullMedia() Selection {
	return Selection{Kind: SelectionFullMedia}
}

// ClipRange returns a selection covering [start, end] seconds. Pass end=0 for
// an open-ended clip.
func ClipRange(start, end float64) Selection {
	return Selection{Kind: SelectionClipRange, Start: start, End: end}
}

// DownloadRequest is the immutable snapshot of a validated submission. It is
// recorded on the task at creation and never mutated afterwards.
type DownloadRequest struct {
	URL       string
	Title     string
	FormatID  string
	AudioOnly bool
	Selection Selection
}
