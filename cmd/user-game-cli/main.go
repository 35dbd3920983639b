package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"user-game/internal/cli"
	"user-game/internal/config"
	"user-game/internal/library"
	"user-game/internal/library/sqlite"
	"user-game/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdin, os.Stdout)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	flags := flag.NewFlagSet("user-game-cli", flag.ContinueOnError)
	dbPath := flags.String("db", cfg.DatabasePath, "SQLite database file")
	driver := flags.String("driver", cfg.Driver, "SQLite driver: sqlite3 (cgo) or sqlite (pure Go)")
	if err := flags.Parse(args); err != nil {
		return err
	}

	log, logCloser, err := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		File:   cfg.LogFile,
	})
	if err != nil {
		return err
	}
	defer logCloser.Close()

	store, err := sqlite.Open(ctx, sqlite.Options{
		Path:        *dbPath,
		Driver:      *driver,
		ForeignKeys: cfg.ForeignKeys,
		BusyTimeout: cfg.BusyTimeout,
	})
	if err != nil {
		log.WithError(err).Error("open database")
		return err
	}
	defer store.Close()
	log.WithField("path", store.Path()).Debug("database opened")

	if err := store.CreateSchema(ctx); err != nil {
		log.WithError(err).Error("create schema")
		fmt.Fprintln(out, "Error creating tables.")
		return err
	}
	fmt.Fprintln(out, "Tables created successfully.")

	return cli.Run(ctx, in, out, library.NewService(store), log)
}
