package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/ytget/yt-clipper/internal/model"
)

// Caption track selection
const (
	CaptionLanguage = "en"
	CaptionFormat   = "json3"
)

// MillisPerSecond converts caption timestamps
const MillisPerSecond = 1000

// fetchTranscript downloads and parses the English caption track when one is
// listed in the resolved metadata. Uploaded captions win over automatic ones.
func (y *YTDLP) fetchTranscript(ctx context.Context, info rawInfo) ([]model.TranscriptLine, error) {
	url := chooseCaptionTrack(info)
	if url == "" {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("caption request: %w", err)
	}
	resp, err := y.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("caption fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("caption fetch: unexpected status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("caption read: %w", err)
	}
	return parseJSON3(data)
}

// chooseCaptionTrack returns the URL of the preferred caption track, or ""
// when none is available.
func chooseCaptionTrack(info rawInfo) string {
	for _, tracks := range []map[string][]rawCaption{info.Subtitles, info.AutomaticCaptions} {
		for _, track := range tracks[CaptionLanguage] {
			if track.Ext == CaptionFormat && track.URL != "" {
				return track.URL
			}
		}
	}
	return ""
}

// json3 caption payload shape
type json3Doc struct {
	Events []json3Event `json:"events"`
}

type json3Event struct {
	StartMs    float64    `json:"tStartMs"`
	DurationMs float64    `json:"dDurationMs"`
	Segs       []json3Seg `json:"segs"`
}

type json3Seg struct {
	UTF8 string `json:"utf8"`
}

// parseJSON3 flattens a json3 caption document into timed transcript lines,
// dropping layout-only events.
func parseJSON3(data []byte) ([]model.TranscriptLine, error) {
	var doc json3Doc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("caption decode: %w", err)
	}

	var lines []model.TranscriptLine
	for _, ev := range doc.Events {
		var b strings.Builder
		for _, seg := range ev.Segs {
			b.WriteString(seg.UTF8)
		}
		text := strings.TrimSpace(b.String())
		if text == "" {
			continue
		}
		lines = append(lines, model.TranscriptLine{
			Start:    ev.StartMs / MillisPerSecond,
			Duration: ev.DurationMs / MillisPerSecond,
			Text:     text,
		})
	}
	return lines, nil
}
