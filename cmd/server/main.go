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

	"gradboard/app/api"
	"gradboard/app/cfg"
	"gradboard/app/database"
	"gradboard/app/enrich"
	"gradboard/app/ingest"
	"gradboard/app/scrape"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appCfg.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})))

	slog.Info("Starting gradboard server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to connect to database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "schema_version", version, "dirty", dirty)

	repo := database.NewAdmissionRepository(db)

	source, err := scrape.LoadSource(appCfg.SourceFile)
	if err != nil {
		slog.Error("Failed to load source configuration", "file", appCfg.SourceFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Source configuration loaded", "base_url", source.BaseURL)

	httpClient := &http.Client{Timeout: time.Duration(appCfg.FetchTimeout) * time.Second}

	runner := scrape.NewRunner(appCfg.WorkerCount)
	listings := scrape.NewListingFetcher(source, httpClient, appCfg.UserAgent)
	details := scrape.NewDetailFetcher(source, httpClient, appCfg.UserAgent)
	enricher := enrich.NewClient(appCfg.EnrichURL, httpClient)
	loader := ingest.NewLoader(repo)

	pipeline := ingest.NewPipeline(source, runner, listings, details, enricher, loader, repo,
		appCfg.DataDir, appCfg.ListingPages)
	coordinator := ingest.NewCoordinator(pipeline)

	scheduler := ingest.NewScheduler(coordinator, time.Duration(appCfg.SchedulerInterval)*time.Second)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(repo, coordinator)
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

	slog.Info("Shutdown complete")
}
