package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/control-stock-api/internal/domain"
)

// Códigos SQLSTATE usados por los repositorios.
const (
	codeUniqueViolation      = "23505"
	codeForeignKeyViolation  = "23503"
	codeSerializationFailure = "40001"
	codeDeadlockDetected     = "40P01"
	codeLockNotAvailable     = "55P03" // lock_timeout
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == codeForeignKeyViolation
}

// isConcurrencyError serialización, deadlock o lock_timeout: la transacción puede reintentarse.
func isConcurrencyError(err error) bool {
	switch pgCode(err) {
	case codeSerializationFailure, codeDeadlockDetected, codeLockNotAvailable:
		return true
	}
	return false
}

// mapTxError traduce los conflictos de bloqueo a domain.ErrConcurrency conservando la causa.
func mapTxError(err error) error {
	if err == nil || errors.Is(err, domain.ErrConcurrency) {
		return err
	}
	if isConcurrencyError(err) {
		return fmt.Errorf("%w: %v", domain.ErrConcurrency, err)
	}
	return err
}

// inUseError borrado rechazado por referencias (movimientos que apuntan al registro).
func inUseError(resource string) error {
	return domain.NewValidationError("", "No se puede eliminar "+resource+": tiene movimientos o registros asociados")
}
