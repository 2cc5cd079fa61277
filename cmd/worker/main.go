package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/jhoicas/control-stock-api/internal/infrastructure/jobs"
	"github.com/jhoicas/control-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/control-stock-api/pkg/config"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("worker")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB, cfg.Movement.LockTimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	stockLow := jobs.NewStockLowHandler(postgres.NewStockLevelRepository(pool), log)
	worker := jobs.NewWorker(cfg.Redis, cfg.Jobs, stockLow, log)

	if err := worker.Run(ctx); err != nil {
		log.Fatal().Err(err).Msg("worker")
	}
	log.Info().Msg("worker detenido")
}
