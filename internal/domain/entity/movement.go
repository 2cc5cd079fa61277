package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypePurchase   = "purchase"
	MovementTypeSale       = "sale"
	MovementTypeAdjustment = "adjustment"
	MovementTypeTransfer   = "transfer"
)

// Dirección de un ajuste. La cantidad siempre es positiva; el sentido va aquí.
const (
	AdjustmentIncrease = "increase"
	AdjustmentDecrease = "decrease"
)

// Movement registro inmutable de un cambio de stock. Se crea una vez y nunca se modifica.
// BranchID es la sucursal destino (o la afectada en compra/venta/ajuste);
// BranchFromID solo aplica a transferencias.
type Movement struct {
	ID           string
	BusinessID   string
	MovementType string
	ProductID    string
	BranchID     string
	BranchFromID string
	Quantity     int64
	Direction    string
	UnitPrice    *decimal.Decimal
	DocumentID   string
	UserID       string
	CreatedAt    time.Time
}

// IsValidMovementType indica si t es uno de los cuatro tipos soportados.
func IsValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchase, MovementTypeSale, MovementTypeAdjustment, MovementTypeTransfer:
		return true
	}
	return false
}
