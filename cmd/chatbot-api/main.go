// Package main provides the chatbot API server entrypoint.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"

	"github.com/vibesync/chatbot-engine/internal/cache"
	"github.com/vibesync/chatbot-engine/internal/catalog"
	"github.com/vibesync/chatbot-engine/internal/chatbot"
	"github.com/vibesync/chatbot-engine/internal/config"
	"github.com/vibesync/chatbot-engine/internal/observability"
	"github.com/vibesync/chatbot-engine/internal/textgen"
)

func main() {
	// .env is optional; environment variables win either way.
	_ = godotenv.Load()

	cfgPath := os.Getenv("CONFIG_PATH")
	if len(os.Args) > 2 && os.Args[1] == "--config" {
		cfgPath = os.Args[2]
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(observability.LogConfig{
		Level:       cfg.Observability.LogLevel,
		Format:      cfg.Observability.LogFormat,
		ServiceName: "chatbot-engine",
	})

	logger.Info().
		Str("host", cfg.Server.Host).
		Int("port", cfg.Server.Port).
		Str("database", cfg.Database.Driver).
		Bool("generator", cfg.GeneratorEnabled()).
		Msg("Starting chatbot API")

	db, err := openDatabase(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to open database")
	}
	defer db.Close()

	builder := catalog.NewBuilder(catalog.NewSQLSource(db), cfg.Chatbot.SiteBaseURL, logger)

	var generator textgen.Generator
	if cfg.GeneratorEnabled() {
		client, err := textgen.NewClient(textgen.Config{
			APIKey:  cfg.Generator.APIKey,
			Model:   cfg.Generator.Model,
			BaseURL: cfg.Generator.BaseURL,
			Timeout: cfg.Generator.Timeout,
		})
		if err != nil {
			logger.Error().Err(err).Msg("Failed to create generator client, continuing without it")
		} else {
			generator = client
		}
	}

	answerCache, err := newCacheClient(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create cache client, continuing without answer cache")
		answerCache = nil
	}
	if answerCache != nil {
		defer answerCache.Close()
	}

	responder := chatbot.New(builder, cfg.Chatbot, logger, chatbot.Options{
		Generator: generator,
		Cache:     answerCache,
		CacheTTL:  cfg.Cache.TTL,
	})

	router := NewRouter(logger, cfg, responder)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", addr).Msg("HTTP server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		logger.Error().Err(err).Msg("Server error")
	case sig := <-shutdown:
		logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.GracefulShutdown)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
		if err := srv.Close(); err != nil {
			logger.Error().Err(err).Msg("Forced shutdown failed")
		}
	}

	logger.Info().Msg("Server stopped")
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	driver := "sqlite3"
	if cfg.Database.Driver == "postgres" {
		driver = "postgres"
	}

	db, err := sql.Open(driver, cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", cfg.Database.Driver, err)
	}

	if cfg.Database.Driver == "postgres" {
		db.SetMaxOpenConns(cfg.Database.Postgres.MaxOpenConns)
		db.SetMaxIdleConns(cfg.Database.Postgres.MaxIdleConns)
		db.SetConnMaxLifetime(cfg.Database.Postgres.ConnMaxLifetime)
	} else {
		db.SetMaxOpenConns(cfg.Database.SQLite.MaxOpenConns)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

func newCacheClient(cfg *config.Config) (cache.Client, error) {
	if cfg.Cache.TTL <= 0 {
		return nil, nil
	}

	if cfg.Cache.Driver == "redis" {
		return cache.NewRedisClient(cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
			PoolSize: cfg.Cache.Redis.PoolSize,
		})
	}
	return cache.NewMemoryClient(cfg.Cache.MaxEntries), nil
}
