package main

import (
	"context"
	"errors"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rental-analyzer/config"
	"rental-analyzer/http"
	"rental-analyzer/logger"
	"rental-analyzer/repository"
	"rental-analyzer/service"
)

func main() {
	cfg := config.Load()
	log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.Pretty})

	var cache repository.CacheRepository
	if cfg.RedisAddr != "" {
		cache = repository.NewRedisCache(cfg.RedisAddr, cfg.CacheTTL)
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis cache")
	} else {
		cache = repository.NewMockCache()
		log.Info().Msg("using in-memory cache")
	}

	repo := repository.NewAnalysisRepositoryMemory()
	scenarios := service.NewScenarioService(repo, cache, log)
	sensitivity := service.NewSensitivityService(scenarios, cfg.MaxSensitivityLevels, log)

	analysisHandler := http.NewAnalysisHandler(scenarios, repo, log)
	sensitivityHandler := http.NewSensitivityHandler(sensitivity, cfg.SensitivityTimeout, log)

	limiter := http.NewRateLimiter(cfg.RateLimitPerMinute)
	defer limiter.Stop()

	server := &nethttp.Server{
		Addr:         ":" + cfg.Port,
		Handler:      http.NewRouter(analysisHandler, sensitivityHandler, limiter),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("forced shutdown")
	}

	log.Info().Msg("server stopped")
}
