// Command migrate applies the embedded schema migrations.
package main

import (
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/joho/godotenv"
)

//go:embed migrations/*.sql
var migrations embed.FS

func main() {
	var (
		dsn     = flag.String("dsn", "", "Database connection string (default: $DATABASE_URL)")
		up      = flag.Bool("up", false, "Run all up migrations")
		down    = flag.Bool("down", false, "Run all down migrations")
		steps   = flag.Int("steps", 0, "Number of migrations (positive=up, negative=down)")
		version = flag.Bool("version", false, "Print current migration version")
		force   = flag.Int("force", -1, "Force set version (use with caution)")
	)
	flag.Parse()

	forceSet := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == "force" {
			forceSet = true
		}
	})

	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}
	if *dsn == "" {
		*dsn = os.Getenv("DATABASE_URL")
	}
	if *dsn == "" {
		*dsn = os.Getenv("DB_URL")
	}
	if *dsn == "" {
		fail("no database URL: pass -dsn or set DATABASE_URL", nil)
	}

	source, err := iofs.New(migrations, "migrations")
	if err != nil {
		fail("failed to create migration source", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, *dsn)
	if err != nil {
		fail("failed to create migrator", err)
	}
	defer m.Close()

	switch {
	case *version:
		v, dirty, err := m.Version()
		if err != nil {
			fail("failed to get version", err)
		}
		fmt.Printf("version: %d, dirty: %v\n", v, dirty)
	case forceSet:
		if err := m.Force(*force); err != nil {
			fail("failed to force version", err)
		}
		slog.Info("forced migration version", "version", *force)
	case *up:
		if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fail("failed to run up migrations", err)
		}
		slog.Info("migrations applied")
	case *down:
		if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fail("failed to run down migrations", err)
		}
		slog.Info("migrations reverted")
	case *steps != 0:
		if err := m.Steps(*steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
			fail("failed to run migration steps", err)
		}
		slog.Info("migration steps applied", "steps", *steps)
	default:
		fmt.Println("usage: migrate [-dsn <connection-string>] -up|-down|-steps N|-version|-force N")
		flag.PrintDefaults()
	}
}

func fail(msg string, err error) {
	if err != nil {
		slog.Error(msg, "error", err)
	} else {
		slog.Error(msg)
	}
	os.Exit(1)
}
