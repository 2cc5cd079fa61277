package repository

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// MovementFilter filtros del historial de movimientos. BranchID filtra destino u origen.
type MovementFilter struct {
	BusinessID   string
	ProductID    string
	BranchID     string
	MovementType string
	Limit        int
	Offset       int
}

// MovementDetail movimiento con nombres y documento resueltos.
type MovementDetail struct {
	entity.Movement
	ProductName    string
	BranchName     string
	BranchFromName string
	DocumentType   string
	DocumentNumber string
	UserName       string
}

// MovementRepository define el puerto de persistencia para movimientos (solo inserción y lectura).
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*MovementDetail, error)
	List(ctx context.Context, filter MovementFilter) ([]MovementDetail, error)
}
