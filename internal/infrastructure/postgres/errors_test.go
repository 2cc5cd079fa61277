package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/control-stock-api/internal/domain"
)

func TestMapTxError_ConflictosDeBloqueo(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		concurrency bool
	}{
		{"serialización", &pgconn.PgError{Code: "40001"}, true},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, true},
		{"lock_timeout", &pgconn.PgError{Code: "55P03"}, true},
		{"envuelto por el repositorio", fmt.Errorf("lock stock: %w", &pgconn.PgError{Code: "55P03"}), true},
		{"único", &pgconn.PgError{Code: "23505"}, false},
		{"check", &pgconn.PgError{Code: "23514"}, false},
		{"sin filas", pgx.ErrNoRows, false},
		{"genérico", errors.New("conexión cerrada"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapTxError(tc.err)
			assert.Equal(t, tc.concurrency, errors.Is(got, domain.ErrConcurrency))
			if !tc.concurrency {
				assert.Same(t, tc.err, got, "los demás errores pasan sin cambios")
			}
		})
	}
}

func TestMapTxError_NilYYaMapeado(t *testing.T) {
	assert.NoError(t, mapTxError(nil))

	already := fmt.Errorf("%w: intento 1", domain.ErrConcurrency)
	assert.Same(t, already, mapTxError(already))
}

func TestClasificacionDeCodigos(t *testing.T) {
	assert.True(t, isUniqueViolation(fmt.Errorf("create: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.True(t, isForeignKeyViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isConcurrencyError(errors.New("x")))
}
