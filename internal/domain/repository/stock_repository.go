package repository

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// StockRepository define el puerto para bloquear y actualizar stock por sucursal+producto.
// Usado dentro de transacciones para garantizar consistencia.
type StockRepository interface {
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Devuelve nil si no existe.
	GetForUpdate(ctx context.Context, productID, branchID string) (*entity.Stock, error)
	// GetOrCreateForUpdate crea la fila con cantidad 0 y mínimo 0 si no existe y la bloquea.
	GetOrCreateForUpdate(ctx context.Context, productID, branchID string) (*entity.Stock, error)
	UpdateQuantity(ctx context.Context, stock *entity.Stock) error
	UpdateMinimum(ctx context.Context, stock *entity.Stock) error
}
