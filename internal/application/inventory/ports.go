package inventory

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad del movimiento: o se aplican stock y movimiento juntos o nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ctx context.Context,
		movRepo repository.MovementRepository,
		stockRepo repository.StockRepository,
	) error) error
}

// ProductReader lectura de productos fuera de la transacción.
type ProductReader interface {
	GetByID(ctx context.Context, id string) (*entity.Product, error)
}

// BranchReader lectura de sucursales fuera de la transacción.
type BranchReader interface {
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
}

// DocumentReader lectura de documentos fuera de la transacción.
type DocumentReader interface {
	GetByID(ctx context.Context, id string) (*entity.Document, error)
}

// MovementListener se notifica después del commit. Un error se registra en log
// y nunca revierte el movimiento.
type MovementListener interface {
	OnMovementRegistered(ctx context.Context, mov *entity.Movement, levels []entity.Stock) error
}

// StockExporter serializa un listado de stock a un archivo descargable (xlsx).
type StockExporter interface {
	ExportStock(rows []repository.StockDetail) ([]byte, error)
}

// VoucherRenderer genera el comprobante PDF de un movimiento.
type VoucherRenderer interface {
	RenderMovementVoucher(business *entity.Business, mov *repository.MovementDetail) ([]byte, error)
}
