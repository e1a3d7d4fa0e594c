package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storepulse/cmd"
	"storepulse/config"
	"storepulse/database"
	"storepulse/events"
	"storepulse/ingest"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env if present; real environments set variables directly
	_ = godotenv.Load()

	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "migrate":
			if err := handleMigrationCommand(); err != nil {
				log.Fatal("Migration error: ", err)
			}
			return
		case "ingest":
			if err := handleIngestCommand(); err != nil {
				log.Fatal("Ingest error: ", err)
			}
			return
		}
	}

	// Normal service operation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Println("Received shutdown signal, shutting down gracefully...")
		cancel()
	}()

	if err := cmd.Run(ctx); err != nil {
		log.Fatal("Application error: ", err)
	}
}

func handleMigrationCommand() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: storepulse migrate [up|down|status] [args...]")
	}

	command := os.Args[2]
	switch command {
	case "up":
		return database.MigrateUp()
	case "down":
		steps := "1"
		if len(os.Args) > 3 {
			steps = os.Args[3]
		}
		return database.MigrateDown(steps)
	case "status":
		return database.MigrateStatus()
	default:
		return fmt.Errorf("unknown migration command: %s", command)
	}
}

func handleIngestCommand() error {
	if len(os.Args) < 4 {
		return fmt.Errorf("usage: storepulse ingest [status|hours|timezones] <csv-file>")
	}

	kind := os.Args[2]
	path := os.Args[3]

	ctx := context.Background()
	cfg := config.Get()

	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	loader := ingest.NewLoader(db, events.NewBus())

	var summary *ingest.Summary
	switch kind {
	case "status":
		summary, err = loader.LoadStoreStatus(ctx, path)
	case "hours":
		summary, err = loader.LoadBusinessHours(ctx, path)
	case "timezones":
		summary, err = loader.LoadStoreTimezones(ctx, path)
	default:
		return fmt.Errorf("unknown ingest kind: %s", kind)
	}
	if err != nil {
		return err
	}

	log.Printf("Ingested %s: %d processed, %d inserted, %d rejected",
		path, summary.Processed, summary.Inserted, len(summary.Rejected))
	return nil
}
