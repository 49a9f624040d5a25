// Package main is the entry point for the fantasy roster & leaderboard
// engine. It initializes all dependencies and starts the HTTP server.
package main

import (
	"context"
	"log"
	"os"

	"fantasyhub/src/app/server"
	"fantasyhub/src/infra/config"
	"fantasyhub/src/infra/db"
	"fantasyhub/src/infra/logger"
	"fantasyhub/src/infra/repo"
)

func main() {
	if err := run(); err != nil {
		log.Printf("fatal error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// Initialize logger
	log := logger.New(cfg.Log)
	log.Info("starting application",
		"port", cfg.Server.Port,
		"log_level", cfg.Log.Level,
	)

	// Initialize database connection
	ctx := context.Background()
	pg, err := db.New(ctx, cfg.Database, log)
	if err != nil {
		return err
	}
	defer pg.Close()

	if cfg.Database.Migrate {
		if err := pg.Migrate(ctx); err != nil {
			return err
		}
	}

	// Initialize repositories; the store client is owned here and passed
	// down, never held as a package-level singleton.
	deps := server.Deps{
		Teams:   repo.NewFantasyTeamRepository(pg, log),
		Players: repo.NewPlayerRegistryRepository(pg, log),
		Clubs:   repo.NewTeamRegistryRepository(pg, log),
		Users:   repo.NewUserDirectoryRepository(pg, log),
	}

	// Create and run HTTP server
	srv := server.New(cfg, log, deps)

	// Run blocks until shutdown signal is received
	return srv.Run()
}
