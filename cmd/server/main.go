package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dgallion1/tokest/internal/api"
	"github.com/dgallion1/tokest/internal/config"
	"github.com/dgallion1/tokest/internal/pipeline"
	"github.com/dgallion1/tokest/internal/stats"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	window := stats.NewWindow(cfg.StatsWindow)

	orch := pipeline.NewOrchestrator(cfg, window, log)
	orch.Start(ctx)

	srv, err := api.NewServer(orch, window, log, cfg)
	if err != nil {
		log.Error("failed to create server", "error", err)
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("starting tokest",
		"port", cfg.Port,
		"default_counter", cfg.DefaultCounter,
		"workers", cfg.WorkerCount,
		"auth", cfg.APIKey != "",
	)
	if err := serve(sigCtx, httpServer, orch, log); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}

type stopper interface {
	Stop()
}

// serve runs httpServer until ctx is done, then stops accepting requests and
// drains the pipeline before returning.
func serve(ctx context.Context, httpServer *http.Server, orch stopper, log *slog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		orch.Stop()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := httpServer.Shutdown(shutdownCtx)
	orch.Stop()
	<-errCh
	return err
}
