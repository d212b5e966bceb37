package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"backoffice/internal/config"
	httpx "backoffice/internal/http"
	emailsvc "backoffice/internal/services/email"
	pagesvc "backoffice/internal/services/page"
	usersvc "backoffice/internal/services/user"
	"backoffice/internal/store/memory"
	"backoffice/internal/store/postgres"
	"backoffice/internal/store/repositories"
	"backoffice/internal/uploads"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Load()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Init store. Dev runs against the in-memory store so the API comes up
	// without a database.
	var store repositories.Store
	if cfg.Dev() && cfg.DB.DSN == "" {
		log.Info().Msg("no DB_DSN, using in-memory store")
		store = memory.New()
	} else {
		pool := postgres.MustOpen(ctx, cfg.DB.DSN)
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("schema migration failed")
		}
		store = postgres.NewStore(pool)
	}

	// Redis is optional; without it the rate limiter is a no-op.
	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr})
		defer rdb.Close()
	}

	// Services
	users := usersvc.NewService(store.Users(), store.Images(), uploads.New(cfg.Uploads.Dir))
	pages := pagesvc.NewService(store.Pages())
	emails := emailsvc.NewService(store.Emails())

	// Router
	r := httpx.NewRouter(httpx.RouterDependencies{
		Config: cfg,
		Users:  users,
		Pages:  pages,
		Emails: emails,
		Redis:  rdb,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info().Msgf("backoffice API listening on :%s", cfg.App.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	cancel()
	ctx2, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = srv.Shutdown(ctx2)
	log.Info().Msg("server stopped")
}
