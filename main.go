package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/danielhkuo/survey-places/cliparse"
	"github.com/danielhkuo/survey-places/db"
	"github.com/danielhkuo/survey-places/middleware"
	"github.com/danielhkuo/survey-places/router"
)

const (
	limiterIdle  = 10 * time.Minute
	sweepEvery   = time.Minute
	shutdownWait = 5 * time.Second
)

// newLogger builds the process logger from LOG_FORMAT (text|json) and
// LOG_LEVEL (debug|info|warn|error)
func newLogger(w io.Writer, format, level string) *slog.Logger {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn", "warning":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func main() {
	var err error

	// Parse configuration (also loads .env)
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(newLogger(os.Stdout, os.Getenv("LOG_FORMAT"), os.Getenv("LOG_LEVEL")))

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "type", cfg.DatabaseType, "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = db.CreateSchema(ctx, dbConn, cfg.DatabaseType)
	cancel()
	if err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	store := db.NewStore(dbConn, cfg.DatabaseType)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var limiter *middleware.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst, limiterIdle, cfg.TrustProxy)
		go sweepLimiter(workerCtx, limiter)
		slog.Info("Rate limiting enabled", "rps", cfg.RateLimit, "burst", cfg.RateBurst, "trust_proxy", cfg.TrustProxy)
	}

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      router.NewRouter(store, cfg, limiter),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Listening", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// signal.Notify requires the channel to be buffered
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	workerCancel()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), shutdownWait)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		slog.Error("server forced to shutdown", "error", err)
	}

	// Close DB connection last
	if err := dbConn.Close(); err != nil {
		slog.Error("failed to close db", "error", err)
	}

	slog.Info("Server closed")
}

// sweepLimiter drops idle client buckets until ctx is cancelled
func sweepLimiter(ctx context.Context, limiter *middleware.RateLimiter) {
	ticker := time.NewTicker(sweepEvery)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if removed := limiter.Sweep(now); removed > 0 {
				slog.Debug("swept idle rate limiters", "count", removed)
			}
		}
	}
}
