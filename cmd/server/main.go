package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/billsplitter/internal/auth"
	"github.com/mmynk/billsplitter/internal/config"
	"github.com/mmynk/billsplitter/internal/metrics"
	"github.com/mmynk/billsplitter/internal/server"
	"github.com/mmynk/billsplitter/internal/storage/sqlstore"
	"github.com/mmynk/billsplitter/pkg/logging"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(".env"); err != nil {
		return err
	}
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	logging.Configure(os.Stderr, cfg.LogLevel, cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := sqlstore.Open(ctx, cfg.DBDriver, cfg.DSN())
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "driver", cfg.DBDriver)

	revoked, closeRevoked, err := revocationList(ctx, cfg.RedisURL)
	if err != nil {
		return err
	}
	defer closeRevoked()

	reg := metrics.NewRegistry()
	router := server.NewRouter(server.Deps{
		Store:         store,
		Authenticator: auth.NewPasswordAuthenticator(store),
		JWT:           auth.NewJWTManager(cfg.JWTSecret, cfg.TokenTTL),
		Revoked:       revoked,
		Metrics:       metrics.New(reg),
		Gatherer:      reg,
		StaticPath:    cfg.StaticPath,
		CORSOrigin:    cfg.CORSOrigin,
		Logger:        slog.Default(),
	})

	// h2c serves HTTP/2 without TLS for Connect clients.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// revocationList returns a Redis-backed list when redisURL is set so that
// logouts are shared across instances, and an in-process list otherwise.
func revocationList(ctx context.Context, redisURL string) (auth.RevocationList, func(), error) {
	if redisURL == "" {
		slog.Info("Using in-memory token revocation list")
		return auth.NewMemoryRevocationList(), func() {}, nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid REDIS_URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("Using Redis token revocation list", "addr", opts.Addr)
	return auth.NewRedisRevocationList(client), func() { client.Close() }, nil
}
