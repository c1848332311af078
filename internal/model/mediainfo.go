package model

// Format describes one downloadable rendition of a video
type Format struct {
	FormatID   string `json:"format_id"`
	Resolution string `json:"resolution"` // e.g. "1080p"
	Ext        string `json:"ext"`
}

// Chapter is a titled segment of a video
type Chapter struct {
	Title string  `json:"title"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// HeatmapPoint is one replay-intensity sample reported by the source
type HeatmapPoint struct {
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Value float64 `json:"value"`
}

// TranscriptLine is one timed caption line
type TranscriptLine struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// MediaInfo is the resolved metadata for a single video.
type MediaInfo struct {
	Title       string           `json:"title"`
	Duration    float64          `json:"duration"`
	Thumbnail   string           `json:"thumbnail"`
	Formats     []Format         `json:"formats"`
	Chapters    []Chapter        `json:"chapters"`
	Heatmap     []HeatmapPoint   `json:"heatmap,omitempty"`
	Transcript  []TranscriptLine `json:"transcript,omitempty"`
	OriginalURL string           `json:"original_url"`
}

// CollectionEntry is one child video of a playlist or channel URL
type CollectionEntry struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// CollectionInfo is one page of child entries for a URL that denotes a
// collection. NextOffset is negative when no further page exists.
type CollectionInfo struct {
	Title       string            `json:"title"`
	Entries     []CollectionEntry `json:"entries"`
	Total       int               `json:"total"`
	NextOffset  int               `json:"next_offset"`
	OriginalURL string            `json:"original_url"`
}
