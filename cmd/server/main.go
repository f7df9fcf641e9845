package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"friendbook/internal/api"
	"friendbook/internal/app/service"
	"friendbook/internal/common/security"
	"friendbook/internal/domain/repository"
	"friendbook/internal/platform/config"
	"friendbook/internal/platform/logger"
	"friendbook/internal/platform/session"

	"github.com/redis/go-redis/v9"
)

func main() {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		logger.New(0).Fatal("failed to load configuration", "error", err)
	}
	log := logger.New(cfg.LogLevel)
	log.Info("configuration loaded")

	// 2. Token service
	tokens := security.NewTokenService(cfg.JWTSecret)

	// 3. Session store: Redis when configured, in-memory otherwise
	var sessions session.Store
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := rdb.Ping(context.Background()).Err(); err != nil {
			log.Fatal("could not connect to redis", "addr", cfg.RedisAddr, "error", err)
		}
		defer rdb.Close()
		sessions = session.NewRedisStore(rdb)
		log.Info("using redis session store", "addr", cfg.RedisAddr)
	} else {
		sessions = session.NewMemoryStore()
		log.Info("using in-memory session store")
	}

	// 4. Repositories
	var comparer security.PasswordComparer = security.PlainComparer{}
	if cfg.HashPasswords {
		comparer = security.BcryptComparer{}
	}
	userRepo := repository.NewMemoryUserRepository(comparer)
	friendRepo := repository.NewMemoryFriendRepository()

	// 5. Services
	authService := service.NewAuthService(userRepo, tokens, sessions, cfg.TokenTTL, cfg.SessionTTL)
	friendService := service.NewFriendService(friendRepo)

	// 6. Router & HTTP Server
	router := api.NewRouter(cfg, authService, friendService, sessions, tokens)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info("server starting", "port", cfg.APIPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("could not start server", "error", err)
		}
	}()

	<-stop

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("server shutdown failed", "error", err)
	}
	log.Info("server stopped gracefully")
}
