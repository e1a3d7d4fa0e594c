package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"storepulse/api"
	"storepulse/config"
	"storepulse/database"
	"storepulse/events"
	"storepulse/repository"
	"storepulse/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	log.Println("Starting storepulse...")

	// Load configuration
	cfg := config.Get()

	fallback, err := time.LoadLocation(cfg.DefaultTimezone)
	if err != nil {
		return fmt.Errorf("invalid DEFAULT_TIMEZONE %q: %w", cfg.DefaultTimezone, err)
	}

	// Initialize database connection
	log.Println("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Println("Database connection established successfully")

	// Initialize event bus with a logging subscriber
	eventBus := events.NewBus()
	subscribeLifecycleLogging(eventBus)

	// Initialize repositories
	statusRepo := repository.NewStoreStatusRepository(db)
	hoursRepo := repository.NewBusinessHoursRepository(db)
	timezoneRepo := repository.NewStoreTimezoneRepository(db)
	reportRepo := repository.NewReportRepository(db)

	// Initialize the report engine and lifecycle controller
	artifacts := service.NewFileArtifactStore(cfg.ReportDir)
	engine := service.NewReportEngine(statusRepo, hoursRepo, timezoneRepo, reportRepo, artifacts, eventBus, fallback)
	reportService := service.NewReportService(reportRepo, engine, eventBus, cfg.ReportWorkers, cfg.ReportQueueSize)
	reportService.Start(ctx)

	// Initialize HTTP server
	router := api.NewRouter(api.NewHandler(reportService))
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on :%s (%s mode)", cfg.Port, cfg.Environment)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		db.Close()
		return fmt.Errorf("HTTP server error: %w", err)
	case <-ctx.Done():
	}

	// Cleanup resources
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error shutting down HTTP server: %v", err)
	}

	log.Println("Closing database connection...")
	db.Close()

	log.Println("Shutdown completed")
	return nil
}

// subscribeLifecycleLogging wires a subscriber that records report lifecycle
// transitions. In-flight reports are otherwise observable only by polling.
func subscribeLifecycleLogging(bus *events.Bus) {
	bus.Subscribe(events.EventTypeReportCompleted, func(ctx context.Context, event events.Event) {
		e := event.(events.ReportCompletedEvent)
		log.Printf("Report %s complete: %d stores, artifact %s", e.ReportID, e.StoreCount, e.ArtifactPath)
	})
	bus.Subscribe(events.EventTypeReportFailed, func(ctx context.Context, event events.Event) {
		e := event.(events.ReportFailedEvent)
		log.Printf("Report %s failed: %s", e.ReportID, e.Reason)
	})
}
