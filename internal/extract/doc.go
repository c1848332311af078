package extract

// Package extract wraps the external yt-dlp tooling. It resolves media
// metadata (including playlist collections via the ytdlp library), runs
// downloads with format/clip/audio handling, and reports tool progress back
// to the caller.
