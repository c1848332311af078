package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"sort"

	"github.com/ytget/yt-clipper/internal/model"
)

// MinFormatHeight filters out renditions below a useful resolution.
const MinFormatHeight = 360

// rawInfo mirrors the subset of the tool's JSON dump the service consumes.
type rawInfo struct {
	Title             string                  `json:"title"`
	Duration          float64                 `json:"duration"`
	Thumbnail         string                  `json:"thumbnail"`
	Formats           []rawFormat             `json:"formats"`
	Chapters          []rawChapter            `json:"chapters"`
	Heatmap           []rawHeatmap            `json:"heatmap"`
	Subtitles         map[string][]rawCaption `json:"subtitles"`
	AutomaticCaptions map[string][]rawCaption `json:"automatic_captions"`
}

type rawFormat struct {
	FormatID string `json:"format_id"`
	Ext      string `json:"ext"`
	Height   int    `json:"height"`
}

type rawChapter struct {
	Title string  `json:"title"`
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`
}

type rawHeatmap struct {
	Start float64 `json:"start_time"`
	End   float64 `json:"end_time"`
	Value float64 `json:"value"`
}

type rawCaption struct {
	Ext string `json:"ext"`
	URL string `json:"url"`
}

// Resolve fetches metadata for a single video without downloading it.
func (y *YTDLP) Resolve(ctx context.Context, url string) (*model.MediaInfo, error) {
	cmd := exec.CommandContext(ctx, y.binPath, "--dump-json", "--no-playlist", url)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		return nil, classifyToolError(stderr.String(), err)
	}

	var info rawInfo
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fmt.Errorf("%w: decode tool output: %v", model.ErrExtractionFailed, err)
	}

	mi := buildMediaInfo(url, info)

	// Transcript is best effort; metadata stays useful without it.
	transcript, err := y.fetchTranscript(ctx, info)
	if err != nil {
		log.Printf("Transcript fetch for %s skipped: %v", url, err)
	}
	mi.Transcript = transcript

	return mi, nil
}

// buildMediaInfo shapes the raw dump into the client contract: formats at or
// above 360p, one per resolution, highest first.
func buildMediaInfo(url string, info rawInfo) *model.MediaInfo {
	type sized struct {
		height int
		format model.Format
	}

	var picked []sized
	seen := make(map[int]bool)
	for _, f := range info.Formats {
		if f.Height < MinFormatHeight || seen[f.Height] {
			continue
		}
		seen[f.Height] = true
		ext := f.Ext
		if ext == "" {
			ext = MergeOutputFormat
		}
		picked = append(picked, sized{
			height: f.Height,
			format: model.Format{
				FormatID:   f.FormatID,
				Resolution: fmt.Sprintf("%dp", f.Height),
				Ext:        ext,
			},
		})
	}
	sort.Slice(picked, func(i, j int) bool { return picked[i].height > picked[j].height })

	formats := make([]model.Format, 0, len(picked))
	for _, p := range picked {
		formats = append(formats, p.format)
	}

	chapters := make([]model.Chapter, 0, len(info.Chapters))
	for _, c := range info.Chapters {
		chapters = append(chapters, model.Chapter{Title: c.Title, Start: c.Start, End: c.End})
	}

	heatmap := make([]model.HeatmapPoint, 0, len(info.Heatmap))
	for _, h := range info.Heatmap {
		heatmap = append(heatmap, model.HeatmapPoint{Start: h.Start, End: h.End, Value: h.Value})
	}

	return &model.MediaInfo{
		Title:       info.Title,
		Duration:    info.Duration,
		Thumbnail:   info.Thumbnail,
		Formats:     formats,
		Chapters:    chapters,
		Heatmap:     heatmap,
		OriginalURL: url,
	}
}
