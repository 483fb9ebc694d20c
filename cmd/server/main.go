// Package main implements the entry point for the OpenBank API server,
// which onboards retail customers and serves their account ledger.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	_ "time/tzdata" // onboarding.time_zone must resolve without system zoneinfo

	"github.com/joho/godotenv"
	"github.com/openbank/openbank-api/internal/config"
	"github.com/openbank/openbank-api/internal/platform/logger"
	"github.com/openbank/openbank-api/internal/platform/postgres"
)

func main() {
	configPath := flag.String("config", "", "path to a config file (defaults to ./config.yaml when present)")
	migrate := flag.String("migrate", "",
		"run a migration command (up, down, reset, status, version) and exit")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *configPath, *migrate); err != nil {
		log.Fatalf("openbank-api: %v", err)
	}
}

// run loads configuration, connects the storage backend and either executes
// a migration command or serves HTTP until ctx is canceled.
func run(ctx context.Context, configPath, migrateCmd string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to read .env file: %w", err)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	l, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}
	ctx = logger.WithLogger(ctx, l)

	l.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"database_driver", cfg.Database.Driver)

	if migrateCmd != "" {
		if cfg.Database.Driver != config.DriverPostgres {
			return fmt.Errorf("migrations require the %s driver", config.DriverPostgres)
		}
		db, err := openDatabase(ctx, cfg.Database.URL, l)
		if err != nil {
			return err
		}
		defer closeDatabase(db, l)
		return postgres.Migrate(ctx, db, migrateCmd)
	}

	app, err := newApplication(ctx, cfg, l)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer app.cleanup()

	return app.Run(ctx)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// closeDatabase is deferred by callers that own a connection pool.
func closeDatabase(db interface{ Close() error }, l *slog.Logger) {
	if err := db.Close(); err != nil {
		l.Error("Error closing database connection", "error", err)
	}
}
