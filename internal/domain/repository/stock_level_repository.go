package repository

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// StockFilter filtros de la consulta de stock. BusinessID es obligatorio.
type StockFilter struct {
	BusinessID  string
	ProductID   string
	BranchID    string
	ProductName string // coincidencia parcial, sin distinguir mayúsculas
	LowOnly     bool
	Limit       int
	Offset      int
}

// StockDetail fila de stock con los nombres resueltos para mostrar.
type StockDetail struct {
	entity.Stock
	ProductName string
	BranchName  string
}

// StockLevelRepository consultas de lectura sobre el stock (sin bloqueo).
type StockLevelRepository interface {
	List(ctx context.Context, filter StockFilter) ([]StockDetail, error)
	// CountLow filas con quantity < minimum_stock; branchID vacío = toda la empresa.
	CountLow(ctx context.Context, businessID, branchID string) (int, error)
}
