// Package main initializes and starts the registration server,
// setting up configuration, logging, the user store, services,
// handlers and optional TLS.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	stdlog "log"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/feather/internal/challenge"
	"github.com/atinyakov/feather/internal/config"
	"github.com/atinyakov/feather/internal/db"
	"github.com/atinyakov/feather/internal/logger"
	"github.com/atinyakov/feather/internal/repository"
	"github.com/atinyakov/feather/internal/server/handler/http"
	"github.com/atinyakov/feather/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options := config.Parse()

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	log, err := newLogger(options.LogLevel)
	if err != nil {
		stdlog.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = log.Log.Sync() }()
	zapLogger := log.Log

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The catalog must be usable before anything is served.
	bank, err := challenge.NewDefaultBank()
	if err != nil {
		zapLogger.Fatal("cannot init challenge bank", zap.Error(err))
	}

	// Initialize the user store. Without a config the server still answers
	// questions, registration reports the store as unavailable.
	var (
		repo         service.UserRepository
		queryTimeout time.Duration
	)
	dbConf, err := config.LoadDBConfig(options.DBConfig)
	switch {
	case errors.Is(err, config.ErrNoDBConfig):
		zapLogger.Warn("no database config, registration disabled", zap.String("path", options.DBConfig))
	case err != nil:
		zapLogger.Fatal("cannot load database config", zap.Error(err))
	default:
		userDB, err := db.Init(dbConf)
		if err != nil {
			zapLogger.Error("cannot init database, registration disabled", zap.Error(err))
			break
		}
		defer userDB.Close()

		sqlRepo := repository.NewSQLUserRepository(userDB, dbConf.Driver)
		logUserCount(ctx, sqlRepo, zapLogger)
		db.StartPoolStatsReporter(ctx, userDB, 5*time.Minute, zapLogger)

		repo = sqlRepo
		queryTimeout = dbConf.QueryTimeoutDuration()
		zapLogger.Info("database ready",
			zap.String("driver", dbConf.Driver),
			zap.String("host", dbConf.Host),
			zap.Int("pool_size", dbConf.PoolSize),
		)
	}

	// Initialize business-logic services.
	registrationService := service.NewRegistrationService(repo, queryTimeout)

	// Create HTTP handlers.
	questionHandler := &http.QuestionHandler{Bank: bank}
	registerHandler := &http.RegisterHandler{Service: registrationService, Log: zapLogger}

	// Build the router with middleware and routes.
	router := http.NewRouter(questionHandler, registerHandler, bank, options.StaticDir, zapLogger)

	server := &nethttp.Server{
		Addr:              options.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			zapLogger.Error("graceful shutdown failed", zap.Error(err))
		}
	}()

	zapLogger.Info("starting HTTP server",
		zap.String("addr", options.Addr),
		zap.Bool("tls", options.TLSEnabled()),
	)
	if options.TLSEnabled() {
		err = server.ListenAndServeTLS(options.TLSCert, options.TLSKey)
	} else {
		err = server.ListenAndServe()
	}
	if err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
	zapLogger.Info("server stopped")
}

// logUserCount reports how many users are already registered.
func logUserCount(ctx context.Context, repo *repository.SQLUserRepository, log *zap.Logger) {
	n, err := repo.CountUsers(ctx)
	if err != nil {
		log.Warn("cannot count users", zap.Error(err))
		return
	}
	log.Info("registered users", zap.Int64("count", n))
}

// newLogger builds the process logger at level.
func newLogger(level string) (*logger.Logger, error) {
	l := logger.New()
	if err := l.Init(level); err != nil {
		return nil, fmt.Errorf("log level %q: %w", level, err)
	}
	return l, nil
}
