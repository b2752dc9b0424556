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

	"github.com/folio-dev/folio/app/api"
	"github.com/folio-dev/folio/app/auth"
	"github.com/folio-dev/folio/app/cfg"
	"github.com/folio-dev/folio/app/database"
	"github.com/folio-dev/folio/app/profile"
	"github.com/folio-dev/folio/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
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

	slog.Info("Starting Folio server", "version", appCfg.Version)

	db, err := database.NewConnection(appCfg.DBPath)
	if err != nil {
		slog.Error("Failed to open database", "path", appCfg.DBPath, "error", err)
		os.Exit(1)
	}
	defer db.Close()

	version, dirty, err := database.RunMigrations(db)
	if err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("Database ready", "path", appCfg.DBPath, "schema_version", version, "dirty", dirty)

	// The profile file is optional; without it the site runs headless until
	// a profile row is created some other way.
	var siteProfile *profile.SiteProfile
	if appCfg.ProfilePath != "" {
		siteProfile, err = profile.NewLoader(appCfg.ProfilePath).Load()
		if err != nil {
			slog.Warn("Site profile not loaded", "path", appCfg.ProfilePath, "error", err)
			siteProfile = nil
		} else {
			slog.Info("Site profile loaded", "path", appCfg.ProfilePath, "name", siteProfile.Profile.Name)
		}
	}

	profileRepo := database.NewProfileRepository(db)
	timelineRepo := database.NewTimelineRepository(db)
	scheduleRepo := database.NewScheduleRepository(db)
	taskRepo := database.NewTaskRepository(db)
	contactRepo := database.NewContactRepository(db)
	blogRepo := database.NewBlogRepository(db)

	authService := auth.NewService(profileRepo)

	slog.Info("Starting background scheduler",
		"workers", appCfg.WorkerCount, "interval_seconds", appCfg.SchedulerInterval)
	scheduler := tasks.NewScheduler(profileRepo, scheduleRepo, siteProfile)
	scheduler.Start()
	defer scheduler.Stop()

	handler := api.NewHandler(profileRepo, timelineRepo, scheduleRepo, taskRepo,
		contactRepo, blogRepo, authService)
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
		slog.Info("HTTP server listening", "port", appCfg.Port)
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

	// Scheduler is stopped via defer
	slog.Info("Shutdown complete")
}
