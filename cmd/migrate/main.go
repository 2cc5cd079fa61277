package main

import (
	"context"
	"flag"
	"os"

	"github.com/jhoicas/control-stock-api/internal/infrastructure/postgres"
	"github.com/jhoicas/control-stock-api/pkg/config"
	"github.com/jhoicas/control-stock-api/pkg/logger"
	"github.com/jhoicas/control-stock-api/pkg/migrate"
)

func main() {
	cmd := flag.String("cmd", "up", "comando goose: up|down|status|version|redo|reset")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("migrate")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB, 0)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := migrate.RunWithPool(ctx, pool, *cmd, flag.Args()...); err != nil {
		log.Error().Err(err).Str("cmd", *cmd).Msg("migración fallida")
		pool.Close()
		os.Exit(1)
	}
	log.Info().Str("cmd", *cmd).Msg("migración completada")
}
