package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ytget/yt-clipper/internal/config"
	"github.com/ytget/yt-clipper/internal/download"
	"github.com/ytget/yt-clipper/internal/extract"
	"github.com/ytget/yt-clipper/internal/registry"
	"github.com/ytget/yt-clipper/internal/server"
	"github.com/ytget/yt-clipper/internal/storage"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	DefaultConfigPath = "config.toml"

	ShutdownTimeout = 10 * time.Second
)

func main() {
	log.Printf("yt-clipper v%s starting...", version)

	configPath := DefaultConfigPath
	if len(os.Args) > 1 {
		configPath = os.Args[1]
	}
	settings, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store, err := storage.New(settings.TempDir)
	if err != nil {
		log.Fatalf("Failed to prepare temp storage: %v", err)
	}

	adapter := extract.NewYTDLP(store.StagingDir(),
		extract.WithBinary(settings.YTDLPPath),
		extract.WithConcurrentFragments(settings.ConcurrentFragments),
		extract.WithSponsorBlockRemove(settings.SponsorBlockRemove),
	)

	reg := registry.New()
	svc := download.NewService(reg, adapter, store)
	srv := server.New(settings.ListenAddr, svc, reg, adapter, store)

	stopSweeper := make(chan struct{})
	go store.RunSweeper(settings.SweepInterval.Duration, settings.ArtifactTTL.Duration, stopSweeper)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	case <-ctx.Done():
		log.Printf("Shutting down...")
		close(stopSweeper)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Printf("Shutdown: %v", err)
		}
	}
}
