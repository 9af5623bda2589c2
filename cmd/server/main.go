package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/me/taskindex/internal/config"
	"github.com/me/taskindex/internal/index"
	"github.com/me/taskindex/internal/logging"
	"github.com/me/taskindex/internal/payload"
	"github.com/me/taskindex/internal/scheduler"
	"github.com/me/taskindex/internal/server"
	"github.com/me/taskindex/internal/snapshot"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "Log format (text, json)")
	snapshotPath := flag.String("snapshot", "", "Snapshot database path (default ~/.taskindex/taskindex.db)")
	strategy := flag.String("strategy", "", "Allocation strategy: best_fit, first_fit, worst_fit")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *snapshotPath != "" {
		cfg.SnapshotPath = *snapshotPath
	}
	if *strategy != "" {
		cfg.Policy.Strategy = *strategy
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.NewLogger(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve snapshot database path.
	dbPath := cfg.SnapshotPath
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".taskindex")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		dbPath = filepath.Join(dir, "taskindex.db")
	}

	store, err := snapshot.NewSQLiteStore(dbPath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open snapshot store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if err := store.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate snapshot store: %v\n", err)
		os.Exit(1)
	}
	logger.Info("snapshot store ready", "path", dbPath)

	runner := payload.NewJSRunner(nil, logger)
	idx := index.New(cfg.Policy, runner, scheduler.Config{CycleTimeout: cfg.CycleTimeout}, logger)

	// Restore the last snapshot, if any.
	if state, err := store.LoadLatest(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "load snapshot: %v\n", err)
		os.Exit(1)
	} else if state != nil {
		if err := idx.ImportState(state); err != nil {
			logger.Error("snapshot restore failed, starting empty", "error", err)
		} else {
			logger.Info("state restored from snapshot")
		}
	}

	srv := server.New(cfg, idx, logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv,
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := idx.Start(ctx); err != nil {
			logger.Error("scheduler loop failed", "error", err)
		}
	}()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr, "strategy", cfg.Policy.Strategy)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Stop the scheduler before snapshotting so no execution mutates state
	// mid-export.
	if err := idx.Stop(); err != nil {
		logger.Error("scheduler stop error", "error", err)
	}

	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.Save(saveCtx, idx.ExportState()); err != nil {
		logger.Error("snapshot save failed", "error", err)
	} else {
		logger.Info("state snapshot saved")
	}

	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel2()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
