package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/lysyi3m/tube-comb/app/api"
	"github.com/lysyi3m/tube-comb/app/cfg"
	"github.com/lysyi3m/tube-comb/app/database"
	"github.com/lysyi3m/tube-comb/app/feed"
	"github.com/lysyi3m/tube-comb/app/playback"
	"github.com/lysyi3m/tube-comb/app/tasks"
	"github.com/lysyi3m/tube-comb/app/youtube"
)

func main() {
	// Local development convenience; a missing .env is fine.
	_ = godotenv.Load()

	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	level := slog.LevelInfo
	if appCfg.Debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	slog.Info("Starting tube-comb server", "version", appCfg.Version)

	db, err := database.Open(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	schemaVersion, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", schemaVersion, "dirty", dirty)

	subRepo := database.NewSubscriptionRepository(db)
	feedRepo := database.NewFeedRepository(db)

	seedSubscriptions(appCfg.SourcesFile, subRepo)

	client := youtube.NewClient(nil, appCfg.UserAgent)
	aggregator := feed.NewAggregator(client, feed.NewRSSFallback(appCfg.UserAgent), subRepo, feedRepo)

	// One synchronous aggregation pass before the interactive surface comes up.
	slog.Info("Running startup aggregation pass")
	if err := aggregator.Run(context.Background()); err != nil {
		slog.Error("Aggregation run failed", "error", err)
	}

	board := tasks.NewStatusBoard()
	dispatcher := tasks.NewDispatcher(board, appCfg.WorkerCount)
	dispatcher.Start()
	defer dispatcher.Stop()

	refresher := tasks.NewRefresher(dispatcher, aggregator, time.Duration(appCfg.RefreshInterval)*time.Second)
	refresher.Start()
	defer refresher.Stop()

	runner := playback.NewRunner(appCfg.VideoDir, appCfg.AudioDir)

	handler := api.NewHandler(client, aggregator, feed.NewGenerator(), subRepo, feedRepo, dispatcher, board, runner)
	server := api.NewServer(handler)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("Starting HTTP server", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	// Dispatcher is stopped via defer
	slog.Info("Shutdown complete")
}

// seedSubscriptions imports channels from the optional bootstrap file into
// the store; already-subscribed channels are left untouched.
func seedSubscriptions(path string, subRepo *database.SubscriptionRepository) {
	sources, err := feed.LoadSources(path)
	if err != nil {
		slog.Warn("Failed to load sources file", "path", path, "error", err)
		return
	}

	for _, ch := range sources.Channels {
		created, err := subRepo.Subscribe(ch.ID, ch.Username)
		if err != nil {
			slog.Warn("Failed to seed subscription", "channel", ch.ID, "error", err)
			continue
		}
		if created {
			slog.Info("Seeded subscription", "channel", ch.ID, "username", ch.Username)
		}
	}
}
