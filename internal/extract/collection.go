package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ytget/ytdlp/v2"

	"github.com/ytget/yt-clipper/internal/model"
)

// URL parameters and separators
const (
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// Collection paging
const (
	CollectionPageSize = 50
	NoNextOffset       = -1
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// Playlist title constants
const (
	MinPrefixLength     = 10
	PlaylistSuffix      = " Playlist"
	DefaultPlaylistName = "Unknown Playlist"
)

// IsCollectionURL checks if the URL denotes a playlist rather than a single video
func IsCollectionURL(url string) bool {
	return strings.Contains(url, PlaylistParam)
}

// ResolveCollection resolves one page of child entries for a playlist URL.
func (y *YTDLP) ResolveCollection(ctx context.Context, url string, offset int) (*model.CollectionInfo, error) {
	playlistID := extractPlaylistID(url)
	if playlistID == "" {
		return nil, fmt.Errorf("%w: could not extract playlist ID from %s", model.ErrUnsupportedURL, url)
	}

	d := ytdlp.New()
	items, err := d.GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: playlist items: %v", model.ErrExtractionFailed, err)
	}

	entries := make([]model.CollectionEntry, 0, len(items))
	for _, it := range items {
		entries = append(entries, model.CollectionEntry{
			ID:    it.VideoID,
			Title: it.Title,
			URL:   fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}

	page, nextOffset := paginate(entries, offset)
	return &model.CollectionInfo{
		Title:       collectionTitle(entries),
		Entries:     page,
		Total:       len(entries),
		NextOffset:  nextOffset,
		OriginalURL: url,
	}, nil
}

// extractPlaylistID extracts the playlist ID from various URL formats
func extractPlaylistID(url string) string {
	if !strings.Contains(url, PlaylistParam) {
		return ""
	}
	parts := strings.Split(url, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}

// paginate slices entries into one fixed-size page. nextOffset is
// NoNextOffset when no further page exists.
func paginate(entries []model.CollectionEntry, offset int) ([]model.CollectionEntry, int) {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(entries) {
		return []model.CollectionEntry{}, NoNextOffset
	}

	end := offset + CollectionPageSize
	if end >= len(entries) {
		return entries[offset:], NoNextOffset
	}
	return entries[offset:end], end
}

// collectionTitle derives a display title from the entry titles: a shared
// prefix when the entries have one, the first title otherwise.
func collectionTitle(entries []model.CollectionEntry) string {
	if len(entries) == 0 {
		return DefaultPlaylistName
	}
	if len(entries) > 1 {
		prefix := commonPrefix(entries[0].Title, entries[1].Title)
		if len(prefix) > MinPrefixLength {
			return strings.TrimSpace(prefix) + PlaylistSuffix
		}
	}
	return entries[0].Title + PlaylistSuffix
}

// commonPrefix finds the common prefix between two strings
func commonPrefix(s1, s2 string) string {
	minLen := min(len(s1), len(s2))
	for i := 0; i < minLen; i++ {
		if s1[i] != s2[i] {
			return s1[:i]
		}
	}
	return s1[:minLen]
}
