package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Default values
const (
	DefaultListenAddr          = ":8000"
	DefaultTempDir             = "temp_downloads"
	DefaultYTDLPPath           = "yt-dlp"
	DefaultConcurrentFragments = 5
	DefaultArtifactTTL         = time.Hour
	DefaultSweepInterval       = 10 * time.Minute
)

// Settings is the service configuration, loaded from an optional TOML file.
type Settings struct {
	ListenAddr          string   `toml:"listen_addr"`
	TempDir             string   `toml:"temp_dir"`
	YTDLPPath           string   `toml:"ytdlp_path"`
	ConcurrentFragments int      `toml:"concurrent_fragments"`
	SponsorBlockRemove  []string `toml:"sponsorblock_remove"`

	// Sweep policy for artifacts that were completed but never fetched.
	ArtifactTTL   duration `toml:"artifact_ttl"`
	SweepInterval duration `toml:"sweep_interval"`
}

// duration lets TOML carry values like "30m" or "1h".
type duration struct {
	time.Duration
}

// UnmarshalText implements toml decoding for duration
func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// Default returns the settings used when no config file is present.
func Default() Settings {
	return Settings{
		ListenAddr:          DefaultListenAddr,
		TempDir:             DefaultTempDir,
		YTDLPPath:           DefaultYTDLPPath,
		ConcurrentFragments: DefaultConcurrentFragments,
		SponsorBlockRemove: []string{
			"sponsor", "selfpromo", "interaction", "intro", "outro", "preview",
		},
		ArtifactTTL:   duration{DefaultArtifactTTL},
		SweepInterval: duration{DefaultSweepInterval},
	}
}

// Load reads settings from a TOML file, filling anything unset with defaults.
// A missing file is not an error; defaults apply.
func Load(path string) (Settings, error) {
	s := Default()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return s, nil
	}
	if _, err := toml.DecodeFile(path, &s); err != nil {
		return s, fmt.Errorf("decode %s: %w", path, err)
	}

	if s.ListenAddr == "" {
		s.ListenAddr = DefaultListenAddr
	}
	if s.TempDir == "" {
		s.TempDir = DefaultTempDir
	}
	if s.YTDLPPath == "" {
		s.YTDLPPath = DefaultYTDLPPath
	}
	if s.ConcurrentFragments <= 0 {
		s.ConcurrentFragments = DefaultConcurrentFragments
	}
	if s.ArtifactTTL.Duration <= 0 {
		s.ArtifactTTL = duration{DefaultArtifactTTL}
	}
	if s.SweepInterval.Duration <= 0 {
		s.SweepInterval = duration{DefaultSweepInterval}
	}
	return s, nil
}
