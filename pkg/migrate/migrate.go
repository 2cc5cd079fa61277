package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jhoicas/control-stock-api/pkg/logger"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const dir = "migrations"

// Run ejecuta un comando goose (up, down, status, version, redo, reset) sobre el esquema embebido.
func Run(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.RunContext(ctx, command, db, dir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// RunWithPool abre un *sql.DB sobre el pool pgx y ejecuta el comando.
func RunWithPool(ctx context.Context, pool *pgxpool.Pool, command string, args ...string) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()
	return Run(ctx, db, command, args...)
}

// MaybeAutoRun aplica "up" al arrancar cuando AUTO_MIGRATE está activo.
func MaybeAutoRun(ctx context.Context, enabled bool, pool *pgxpool.Pool, log *logger.Logger) error {
	if !enabled {
		return nil
	}
	log.Info().Str("dir", dir).Msg("aplicando migraciones goose")
	if err := RunWithPool(ctx, pool, "up"); err != nil {
		return fmt.Errorf("running goose up: %w", err)
	}
	log.Info().Msg("migraciones completadas")
	return nil
}
