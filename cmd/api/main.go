package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"
	jwtsvc "storefront/internal/pkg/jwt"
	"storefront/internal/repository"
	"storefront/internal/server"
	"storefront/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg.IsDevelopment())
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	if err := database.Migrate(db); err != nil {
		return err
	}

	redisClient, err := database.ConnectRedis(ctx, database.RedisOptions{
		URL:          cfg.RedisURL,
		DialTimeout:  cfg.RedisDialTimeout,
		ReadTimeout:  cfg.RedisReadTimeout,
		WriteTimeout: cfg.RedisWriteTimeout,
	}, log)
	if err != nil {
		return err
	}
	defer redisClient.Close()

	sessions := session.NewManager(
		jwtsvc.New(cfg.AccessTokenSecret, cfg.AccessTokenTTL),
		jwtsvc.New(cfg.RefreshTokenSecret, cfg.RefreshTokenTTL),
		repository.NewRefreshTokenRepository(redisClient),
		session.CookieOptions{
			Secure:   cfg.CookieSecure(),
			SameSite: cfg.SameSite(),
			Path:     cfg.CookiePath,
			Domain:   cfg.CookieDomain,
		},
		log,
	)

	router := server.NewRouter(server.Deps{
		DB:             db,
		Sessions:       sessions,
		FeaturedCache:  repository.NewProductCache(redisClient, cfg.FeaturedCacheTTL),
		Log:            log,
		Development:    cfg.IsDevelopment(),
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("server starting", "addr", srv.Addr, "env", cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	return nil
}
