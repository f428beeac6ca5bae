package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iudanet/notesync/internal/client/api"
	"github.com/iudanet/notesync/internal/client/cli"
	"github.com/iudanet/notesync/internal/client/collab"
	"github.com/iudanet/notesync/internal/client/data"
	"github.com/iudanet/notesync/internal/client/engine"
	"github.com/iudanet/notesync/internal/client/iocli"
	"github.com/iudanet/notesync/internal/client/queue"
	"github.com/iudanet/notesync/internal/client/storage"
	"github.com/iudanet/notesync/internal/client/storage/boltdb"
	"github.com/iudanet/notesync/internal/config"
	"github.com/iudanet/notesync/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.LoadClient()

	// Глобальные флаги, переменные окружения задают значения по умолчанию
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", cfg.ServerURL, "Server URL")
	dbPath := flag.String("db", cfg.DBPath, "Path to local database")
	passphrase := flag.String("passphrase", "", "Local store passphrase")
	passphraseFile := flag.String("passphrase-file", cfg.PassphraseFile, "File containing the local store passphrase")
	logLevel := flag.String("log-level", "warn", "Log level: debug, info, warn, error")
	flag.Parse()

	if *showVersion {
		printVersion()
		return nil
	}

	io := iocli.NewStdio()
	args := flag.Args()
	if len(args) == 0 {
		cli.PrintUsage(io)
		return errors.New("missing command")
	}
	command := args[0]

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))

	store, err := boltdb.New(ctx, *dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	secret, err := cli.ResolvePassphrase(io, cli.Passphrase{
		FromEnv:  cfg.Passphrase,
		FromFile: *passphraseFile,
		FromArgs: *passphrase,
	}, store.Encrypted())
	if err != nil {
		return err
	}
	if secret != "" {
		if !store.Encrypted() {
			if err := validation.ValidatePassphrase(secret); err != nil {
				return err
			}
		}
		if err := store.Unlock(ctx, secret); err != nil {
			if errors.Is(err, storage.ErrWrongPassphrase) {
				return errors.New("wrong passphrase")
			}
			return fmt.Errorf("failed to unlock database: %w", err)
		}
	}

	c := cli.New(io, store)
	if !cli.NeedsEngine(command) {
		return c.Run(ctx, command, args[1:])
	}

	auth, err := resolveAuth(ctx, store, cfg.Token)
	if err != nil {
		// Локальные команды работают без входа, синхронизация нет
		if command == "sync" || command == "join" {
			return err
		}
		logger.Debug("running without credentials", "error", err)
		auth = &storage.AuthData{}
	}

	server := *serverURL
	if !flagSet("server") && auth.ServerURL != "" {
		server = auth.ServerURL
	}

	eng := engine.New(store,
		api.NewClient(server, api.WithAccessToken(auth.AccessToken)),
		collab.NewWSTransport(server, auth.AccessToken, logger),
		engine.Config{
			UserID:            auth.UserID,
			UserName:          auth.UserName,
			Queue:             queue.Config{DrainInterval: cfg.DrainInterval, MaxAttempts: cfg.MaxAttempts},
			ReconcileInterval: cfg.ReconcileEvery,
		},
		logger,
	)
	defer eng.Close()

	// join держит процесс, поэтому очередь отправляется в фоне
	if command == "join" {
		err = eng.Start(ctx)
	} else {
		err = eng.Init(ctx)
	}
	if err != nil {
		return fmt.Errorf("failed to start sync engine: %w", err)
	}

	c.Attach(eng, data.NewService(store, eng))
	return c.Run(ctx, command, args[1:])
}

// resolveAuth prefers NOTESYNC_TOKEN over the stored login.
func resolveAuth(ctx context.Context, store storage.AuthStorage, envToken string) (*storage.AuthData, error) {
	if envToken != "" {
		return cli.ParseToken(envToken, time.Now())
	}
	return cli.LoadAuth(ctx, store, time.Now())
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn
	}
	return level
}

func printVersion() {
	fmt.Printf("notesync client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
