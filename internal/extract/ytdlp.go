package extract

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/ytget/yt-clipper/internal/model"
)

// External tool constants
const (
	DefaultBinary              = "yt-dlp"
	DefaultConcurrentFragments = 5

	// Format selectors mirroring the tool's defaults for this service
	FormatBestAV      = "bestvideo+bestaudio/best"
	FormatBestAudio   = "bestaudio/best"
	FormatBestAlias   = "best"
	MergeOutputFormat = "mp4"

	// Audio post-processing
	AudioFormat  = "mp3"
	AudioQuality = "192K"

	// Section end marker for open-ended clips
	SectionOpenEnd = "inf"

	// OutputTemplateExt lets the tool pick the container extension
	OutputTemplateExt = ".%(ext)s"

	// Caption fetch budget
	DefaultCaptionTimeout = 15 * time.Second
)

// DefaultSponsorBlockRemove lists the segment categories stripped from
// downloads unless configured otherwise.
var DefaultSponsorBlockRemove = []string{
	"sponsor", "selfpromo", "interaction", "intro", "outro", "preview",
}

// SkippedExtensions marks in-progress tool files that are never artifacts.
var SkippedExtensions = []string{".part", ".ytdl"}

// YTDLP drives the yt-dlp binary for metadata resolution and downloads.
type YTDLP struct {
	binPath             string
	workDir             string
	concurrentFragments int
	sponsorBlock        []string
	httpClient          *http.Client
}

// Option configures the adapter
type Option func(*YTDLP)

// WithBinary overrides the yt-dlp binary path
func WithBinary(path string) Option {
	return func(y *YTDLP) {
		if path != "" {
			y.binPath = path
		}
	}
}

// WithConcurrentFragments overrides how many fragments the tool fetches in parallel
func WithConcurrentFragments(n int) Option {
	return func(y *YTDLP) {
		if n > 0 {
			y.concurrentFragments = n
		}
	}
}

// WithSponsorBlockRemove overrides the removed segment categories. An empty
// slice disables SponsorBlock handling.
func WithSponsorBlockRemove(categories []string) Option {
	return func(y *YTDLP) {
		y.sponsorBlock = categories
	}
}

// NewYTDLP creates an adapter downloading into workDir.
func NewYTDLP(workDir string, opts ...Option) *YTDLP {
	y := &YTDLP{
		binPath:             DefaultBinary,
		workDir:             workDir,
		concurrentFragments: DefaultConcurrentFragments,
		sponsorBlock:        DefaultSponsorBlockRemove,
		httpClient:          &http.Client{Timeout: DefaultCaptionTimeout},
	}
	for _, opt := range opts {
		opt(y)
	}
	return y
}

// Download invokes the external tool and returns the path of the produced
// file inside the staging area. On failure no partial file is left behind.
func (y *YTDLP) Download(ctx context.Context, taskID string, req model.DownloadRequest, onProgress ProgressFunc) (string, error) {
	args := y.BuildDownloadArgs(taskID, req)
	cmd := exec.CommandContext(ctx, y.binPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return "", fmt.Errorf("%w: stdout pipe: %v", model.ErrExtractionFailed, err)
	}
	if err := cmd.Start(); err != nil {
		return "", fmt.Errorf("%w: start %s: %v", model.ErrExtractionFailed, y.binPath, err)
	}

	tracker := newProgressTracker(onProgress)
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		tracker.Observe(scanner.Text())
	}

	if err := cmd.Wait(); err != nil {
		y.cleanupPartials(taskID)
		return "", classifyToolError(stderr.String(), err)
	}
	tracker.Finish()

	path, err := y.findArtifact(taskID)
	if err != nil {
		y.cleanupPartials(taskID)
		return "", err
	}
	return path, nil
}

// BuildDownloadArgs builds the yt-dlp command arguments for a request.
func (y *YTDLP) BuildDownloadArgs(taskID string, req model.DownloadRequest) []string {
	args := []string{
		"--newline",
		"--no-playlist",
		"--force-overwrites",
		"--concurrent-fragments", strconv.Itoa(y.concurrentFragments),
		"-o", filepath.Join(y.workDir, taskID+OutputTemplateExt),
	}

	if len(y.sponsorBlock) > 0 {
		args = append(args, "--sponsorblock-remove", strings.Join(y.sponsorBlock, ","))
	}

	switch {
	case req.AudioOnly:
		args = append(args,
			"-f", FormatBestAudio,
			"-x",
			"--audio-format", AudioFormat,
			"--audio-quality", AudioQuality,
		)
	case req.FormatID != "" && req.FormatID != FormatBestAlias:
		args = append(args,
			"-f", req.FormatID+"+"+FormatBestAudio,
			"--merge-output-format", MergeOutputFormat,
		)
	default:
		args = append(args, "-f", FormatBestAV)
	}

	if req.Selection.Kind == model.SelectionClipRange {
		end := SectionOpenEnd
		if !req.Selection.IsOpenEnded() {
			end = formatSeconds(req.Selection.End)
		}
		section := fmt.Sprintf("*%s-%s", formatSeconds(req.Selection.Start), end)
		args = append(args, "--download-sections", section, "--no-force-keyframes-at-cuts")
	}

	return append(args, req.URL)
}

// findArtifact locates the finished file for a task, skipping the tool's
// in-progress companions.
func (y *YTDLP) findArtifact(taskID string) (string, error) {
	entries, err := os.ReadDir(y.workDir)
	if err != nil {
		return "", fmt.Errorf("%w: read staging dir: %v", model.ErrArtifactIO, err)
	}

	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasPrefix(name, taskID+".") {
			continue
		}
		if hasSkippedExtension(name) {
			continue
		}
		return filepath.Join(y.workDir, name), nil
	}
	return "", fmt.Errorf("%w: tool produced no output file", model.ErrExtractionFailed)
}

// cleanupPartials removes everything the tool wrote for a task.
func (y *YTDLP) cleanupPartials(taskID string) {
	entries, err := os.ReadDir(y.workDir)
	if err != nil {
		return
	}
	for _, e := range entries {
		if !e.IsDir() && strings.HasPrefix(e.Name(), taskID+".") {
			os.Remove(filepath.Join(y.workDir, e.Name()))
		}
	}
}

func hasSkippedExtension(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// classifyToolError maps tool stderr output onto the error taxonomy.
func classifyToolError(stderr string, err error) error {
	detail := firstErrorLine(stderr)
	if detail == "" {
		detail = err.Error()
	}

	switch {
	case strings.Contains(stderr, "Unsupported URL"),
		strings.Contains(stderr, "is not a valid URL"):
		return fmt.Errorf("%w: %s", model.ErrUnsupportedURL, detail)
	case strings.Contains(stderr, "Requested format is not available"):
		return fmt.Errorf("%w: %s", model.ErrFormatUnavailable, detail)
	default:
		return fmt.Errorf("%w: %s", model.ErrExtractionFailed, detail)
	}
}

// firstErrorLine picks the first ERROR: line from tool stderr, falling back
// to the first non-empty line.
func firstErrorLine(stderr string) string {
	fallback := ""
	for _, line := range strings.Split(stderr, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "ERROR:") {
			return strings.TrimSpace(strings.TrimPrefix(line, "ERROR:"))
		}
		if fallback == "" {
			fallback = line
		}
	}
	return fallback
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}
