package main

import (
	"context"
	"os"

	"designmarket/internal/config"
	"designmarket/internal/database"
	"designmarket/internal/modules/auth"
	jwtsvc "designmarket/internal/pkg/jwt"
	"designmarket/internal/pkg/logger"
	"designmarket/internal/repository"
)

// auth_cleanup deletes revoked-token entries whose tokens have expired anyway.
func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}, os.Stderr).Error("config", "error", err.Error())
		os.Exit(1)
	}
	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Component: "auth_cleanup"}, os.Stdout)

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("db connect failed", "error", err.Error())
		os.Exit(1)
	}

	svc := auth.NewService(
		repository.NewUserRepository(db),
		repository.NewTokenRepository(db),
		jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
	)

	n, err := svc.PurgeRevoked(context.Background())
	if err != nil {
		log.Error("cleanup revoked_tokens failed", "error", err.Error())
		os.Exit(1)
	}
	log.Info("auth cleanup completed", "revoked_tokens", n)
}
