package extract

import (
	"context"

	"github.com/ytget/yt-clipper/internal/model"
)

// ProgressFunc receives the download fraction in [0, 1]. It is called on
// every tool-reported progress event with a non-decreasing value.
type ProgressFunc func(fraction float64)

// Resolver resolves metadata for a single video or a page of a collection.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*model.MediaInfo, error)
	ResolveCollection(ctx context.Context, url string, offset int) (*model.CollectionInfo, error)
}

// Downloader produces a media file for a validated request, reporting
// progress along the way. The returned path lives in the adapter's staging
// area until the caller adopts it.
type Downloader interface {
	Download(ctx context.Context, taskID string, req model.DownloadRequest, onProgress ProgressFunc) (string, error)
}
