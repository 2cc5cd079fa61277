package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación del puerto StockRepository. Debe usarse dentro de una
// transacción para que el bloqueo FOR UPDATE tenga efecto hasta el Commit.
type StockRepo struct {
	db Querier
}

// NewStockRepository construye el repositorio de stock sobre un Querier (normalmente una tx).
func NewStockRepository(db Querier) *StockRepo {
	return &StockRepo{db: db}
}

const selectStockForUpdate = `
	SELECT id, product_id, branch_id, quantity, minimum_stock, updated_at
	FROM stocks WHERE product_id = $1 AND branch_id = $2
	FOR UPDATE`

// GetForUpdate bloquea la fila (product, branch). Devuelve nil, nil si no existe.
func (r *StockRepo) GetForUpdate(ctx context.Context, productID, branchID string) (*entity.Stock, error) {
	var s entity.Stock
	err := r.db.QueryRow(ctx, selectStockForUpdate, productID, branchID).Scan(
		&s.ID, &s.ProductID, &s.BranchID, &s.Quantity, &s.MinimumStock, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select stock for update: %w", err)
	}
	return &s, nil
}

// GetOrCreateForUpdate inserta la fila con cantidad 0 si falta (ON CONFLICT DO NOTHING)
// y luego la bloquea. Dos transacciones concurrentes terminan sobre la misma fila.
func (r *StockRepo) GetOrCreateForUpdate(ctx context.Context, productID, branchID string) (*entity.Stock, error) {
	insert := `
		INSERT INTO stocks (id, product_id, branch_id, quantity, minimum_stock, updated_at)
		VALUES ($1, $2, $3, 0, 0, $4)
		ON CONFLICT (product_id, branch_id) DO NOTHING`
	if _, err := r.db.Exec(ctx, insert, uuid.New().String(), productID, branchID, time.Now()); err != nil {
		return nil, fmt.Errorf("insert stock: %w", err)
	}
	s, err := r.GetForUpdate(ctx, productID, branchID)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("stock %s/%s no visible tras insertar", productID, branchID)
	}
	return s, nil
}

// UpdateQuantity persiste la nueva cantidad de una fila ya bloqueada.
func (r *StockRepo) UpdateQuantity(ctx context.Context, s *entity.Stock) error {
	query := `UPDATE stocks SET quantity = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, s.ID, s.Quantity, s.UpdatedAt); err != nil {
		return fmt.Errorf("update stock quantity: %w", err)
	}
	return nil
}

// UpdateMinimum persiste el stock mínimo.
func (r *StockRepo) UpdateMinimum(ctx context.Context, s *entity.Stock) error {
	query := `UPDATE stocks SET minimum_stock = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.Exec(ctx, query, s.ID, s.MinimumStock, s.UpdatedAt); err != nil {
		return fmt.Errorf("update minimum stock: %w", err)
	}
	return nil
}
