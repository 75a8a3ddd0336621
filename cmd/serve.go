package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"dewi/internal/app"
	"dewi/internal/httpapi"
	"dewi/internal/storage"
	"dewi/pkg/config"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Start the API server. Background clips are mirrored from GCS when a
bucket is configured, then the server handles fact, generation, and
render requests until interrupted.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()

	service, store, err := app.BuildService(cfg)
	if err != nil {
		return err
	}

	syncBackgrounds(ctx, cfg, store)

	addr := cfg.Server.ListenAddr
	if serveAddr != "" {
		addr = serveAddr
	}

	server := &http.Server{
		Addr:    addr,
		Handler: httpapi.NewServer(service).Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Starting API server", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-sigCh:
	case <-ctx.Done():
	}

	slog.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// syncBackgrounds mirrors background clips from GCS into local assets.
// Failures are logged and the server starts anyway; renders fall back
// to the solid-color background for clips that never arrived.
func syncBackgrounds(ctx context.Context, cfg *config.Config, store *storage.LocalStorage) {
	if !cfg.GCSSyncEnabled() {
		if cfg.GCSBucket != "" {
			slog.Warn("GCS_BUCKET set but mirror disabled, set gcs.enabled in config.yaml")
		}
		return
	}

	mirror, err := storage.NewGCSMirror(ctx, cfg.GCSBucket, cfg.GCS.BackgroundDir, store.BackgroundDir())
	if err != nil {
		slog.Warn("GCS mirror unavailable", "error", err)
		return
	}
	defer func() { _ = mirror.Close() }()

	if err := mirror.Sync(ctx); err != nil {
		slog.Warn("Background sync failed", "error", err)
	}
}
