// Command revoke_sessions deletes refresh records so the affected users must
// log in again. Access tokens already issued stay valid until they expire.
//
//	revoke_sessions -email user@example.com
//	revoke_sessions -all
package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"strings"
	"time"

	"storefront/internal/config"
	"storefront/internal/database"
	"storefront/internal/logger"
	"storefront/internal/repository"
)

func main() {
	email := flag.String("email", "", "revoke the session of the user with this email")
	all := flag.Bool("all", false, "revoke every session")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.IsDevelopment())

	if err := run(cfg, log, strings.TrimSpace(*email), *all); err != nil {
		log.Error("revoke failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger, email string, all bool) error {
	if (email == "") == !all {
		return errors.New("exactly one of -email or -all is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

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

	tokens := repository.NewRefreshTokenRepository(redisClient)

	if all {
		removed, err := tokens.DeleteAll(ctx)
		if err != nil {
			return err
		}
		log.Info("sessions revoked", "count", removed)
		return nil
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	user, err := repository.NewUserRepository(db).GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err := tokens.Delete(ctx, user.ID); err != nil {
		return err
	}
	log.Info("session revoked", "user_id", user.ID, "email", user.Email)
	return nil
}
