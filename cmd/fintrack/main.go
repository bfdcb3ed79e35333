package main

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-finance-tracker/internal/backup"
	"github.com/MKhiriev/go-finance-tracker/internal/client"
	"github.com/MKhiriev/go-finance-tracker/internal/config"
	"github.com/MKhiriev/go-finance-tracker/internal/logger"
	"github.com/MKhiriev/go-finance-tracker/internal/service"
	"github.com/MKhiriev/go-finance-tracker/internal/store"
	"github.com/MKhiriev/go-finance-tracker/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// File logger: stdout belongs to the terminal UI.
	log := logger.NewFileLogger("fintrack")
	cfg, err := config.GetConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectSQLite(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("open store")
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			log.Err(closeErr).Msg("close store")
		}
	}()

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("run migrations")
	}

	repositories := store.NewRepositories(db, log)
	services := service.NewServices(repositories, *cfg, log)
	sessions := store.NewSessionStore(cfg.Storage, log)
	backups := backup.NewManager(cfg.Storage.DB.DSN, cfg.Storage.Backups, log)

	workers.NewWorkers(
		workers.NewRetentionWorker(backups, cfg.Storage.Backups.Keep, log),
	).Run()

	app, err := client.NewApp(services, sessions, backups, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("app run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
