package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/iudanet/notesync/internal/config"
	"github.com/iudanet/notesync/internal/server"
	"github.com/iudanet/notesync/internal/server/handlers"
	"github.com/iudanet/notesync/internal/server/middleware"
	"github.com/iudanet/notesync/internal/server/room"
	"github.com/iudanet/notesync/internal/server/storage"
	"github.com/iudanet/notesync/internal/server/storage/postgres"
	"github.com/iudanet/notesync/internal/server/storage/sqlite"
	"github.com/iudanet/notesync/internal/validation"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// backend объединяет хранилище сущностей с health check и закрытием
type backend interface {
	storage.EntityStorage
	Ping(ctx context.Context) error
	Close() error
}

func main() {
	cfg := config.LoadServer()

	showVersion := flag.Bool("version", false, "Show version information")
	addr := flag.String("addr", cfg.Addr, "HTTP listen address")
	dbURL := flag.String("db", cfg.DatabaseURL, "SQLite file path or postgres:// URL")
	redisURL := flag.String("redis", cfg.RedisURL, "Redis URL for room state (empty keeps rooms in memory)")
	jwtSecret := flag.String("jwt-secret", cfg.JWTSecret, "HMAC secret for access tokens")
	logLevel := flag.String("log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	issueToken := flag.String("issue-token", "", "Print an access token for user_id[:user_name] and exit")
	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(*jwtSecret),
		AccessTokenTTL: cfg.AccessTTL,
	}

	if *issueToken != "" {
		userID, userName, _ := strings.Cut(*issueToken, ":")
		if err := errors.Join(validation.ValidateID("user id", userID), validation.ValidateUserName(userName)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		token, expiresAt, err := handlers.GenerateAccessToken(jwtConfig, userID, userName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(token)
		fmt.Fprintf(os.Stderr, "expires at %s\n", expiresAt.Format(time.RFC3339))
		os.Exit(0)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(*logLevel)}))

	if err := run(logger, cfg, jwtConfig, *addr, *dbURL, *redisURL); err != nil {
		logger.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger, cfg config.Server, jwtConfig handlers.JWTConfig, addr, dbURL, redisURL string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := openBackend(ctx, dbURL)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("failed to close storage", "error", err)
		}
	}()

	checks := map[string]handlers.Pinger{"database": db}

	var snapshots room.SnapshotStore = room.NewMemoryStore()
	if redisURL != "" {
		rs, err := room.NewRedisStore(ctx, redisURL, cfg.RoomTTL)
		if err != nil {
			return err
		}
		defer func() {
			_ = rs.Close()
		}()
		snapshots = rs
		checks["redis"] = rs
		logger.Info("room state persisted in redis")
	} else {
		logger.Warn("redis not configured, room state kept in memory")
	}

	hub := room.NewHub(snapshots, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, time.Minute, logger)
	defer limiter.Stop()

	srv := &http.Server{
		Addr: addr,
		Handler: server.NewRouter(server.Deps{
			Logger:      logger,
			Storage:     db,
			Hub:         hub,
			RateLimiter: limiter,
			Checks:      checks,
			Version:     Version,
			JWT:         jwtConfig,
			JoinTimeout: cfg.JoinTimeout,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", addr, "version", Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	// Websocket-соединения не отслеживаются http.Server, закрываем их сами
	hub.Shutdown()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shutdown server: %w", err)
	}
	return nil
}

func openBackend(ctx context.Context, dbURL string) (backend, error) {
	if strings.HasPrefix(dbURL, "postgres://") || strings.HasPrefix(dbURL, "postgresql://") {
		s, err := postgres.New(ctx, dbURL)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	s, err := sqlite.New(ctx, dbURL)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func printVersion() {
	fmt.Printf("notesync server\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
