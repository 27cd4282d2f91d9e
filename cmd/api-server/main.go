package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"finledger/database"
	"finledger/internal/api"
	"finledger/internal/api/middleware"
	"finledger/internal/api/repository"
	"finledger/internal/api/service"
	"finledger/internal/auth"
	"finledger/internal/config"
	"finledger/internal/logger"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	appLogger, err := logger.New(cfg.LogLevel, cfg.LogFormat, os.Stdout)
	if err != nil {
		log.Fatalf("could not create logger: %v", err)
	}
	slog.SetDefault(appLogger)

	if err := run(cfg, appLogger); err != nil {
		appLogger.Error("server_exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		return err
	}
	defer database.Close(db)

	store := repository.NewStore(db)
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	issuer := auth.NewTokenIssuer(auth.TokenConfig{
		AccessSecret:  cfg.JWTSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
		AccessTTL:     cfg.AccessTokenTTL,
		RefreshTTL:    cfg.RefreshTokenTTL,
	})

	// Redis is optional; without it login attempts are not throttled
	var tracker service.LoginAttemptTracker = service.NoopLoginAttemptTracker{}
	if cfg.RedisURL != "" {
		rdb, err := database.ConnectRedis(ctx, cfg.RedisURL)
		if err != nil {
			return err
		}
		defer func(rdb *redis.Client) {
			if err := rdb.Close(); err != nil {
				logger.Warn("redis_close_failed", "error", err)
			}
		}(rdb)
		tracker = repository.NewLoginAttemptRepository(rdb, cfg.LoginMaxAttempts, cfg.LoginAttemptWindow)
		logger.Info("login_throttling_enabled", "max_attempts", cfg.LoginMaxAttempts, "window", cfg.LoginAttemptWindow.String())
	}

	authService := service.NewAuthService(store, hasher, issuer, logger, service.WithLoginAttemptTracker(tracker))
	transactionService := service.NewTransactionService(store.Transactions())

	pruner := service.NewTokenPruner(store.RefreshTokens(), cfg.RefreshTokenCleanupInterval, logger)
	prunerDone := make(chan struct{})
	go func() {
		defer close(prunerDone)
		pruner.Run(ctx)
	}()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	var limiter *middleware.IPRateLimiter
	if cfg.RateLimitRPS > 0 {
		limiter = middleware.NewIPRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	}

	router := api.NewRouter(api.Dependencies{
		AuthService:        authService,
		TransactionService: transactionService,
		Verifier:           issuer,
		Ping:               func(ctx context.Context) error { return database.Ping(ctx, db) },
		Logger:             logger,
		RateLimiter:        limiter,
		TrustedProxies:     cfg.TrustedProxies,
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server_started", "addr", server.Addr, "env", cfg.GoEnv)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		stop()
		<-prunerDone
		return err
	case <-ctx.Done():
		logger.Info("shutdown_signal_received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server_shutdown_failed", "error", err)
	}
	<-prunerDone

	logger.Info("server_stopped")
	return nil
}
