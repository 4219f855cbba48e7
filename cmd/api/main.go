package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"

	"designmarket/internal/config"
	"designmarket/internal/database"
	jwtsvc "designmarket/internal/pkg/jwt"
	"designmarket/internal/pkg/logger"
	"designmarket/internal/repository"
	"designmarket/internal/server"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.Config{}, os.Stderr).Error("config", "error", err.Error())
		os.Exit(1)
	}

	log := logger.New(logger.Config{
		Level:     cfg.LogLevel,
		Format:    cfg.LogFormat,
		Component: "api",
		Env:       cfg.AppEnv,
	}, os.Stdout)

	if cfg.IsProdLike() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		log.Error("db connect failed", "error", err.Error())
		os.Exit(1)
	}

	if cfg.AutoMigrate {
		log.Info("running migrations")
		if err := repository.AutoMigrate(db); err != nil {
			log.Error("migrations failed", "error", err.Error())
			os.Exit(1)
		}
	}

	router := server.NewRouter(server.Options{
		DB:          db,
		JWT:         jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL),
		Logger:      log,
		CORSOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: router,
	}

	go func() {
		log.Info("listening", "addr", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err.Error())
			os.Exit(1)
		}
	}()

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("shutdown failed", "error", err.Error())
	}
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("stopped")
}
