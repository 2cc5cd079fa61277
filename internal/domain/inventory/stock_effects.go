package inventory

import (
	"fmt"
	"math"
	"sort"

	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// StockEffect variación que un movimiento aplica a la fila (producto, sucursal).
// Outbound indica que la fila debe existir y cubrir la salida.
type StockEffect struct {
	BranchID string
	Delta    int64
	Outbound bool
}

// Effects calcula las variaciones de stock de un request ya validado, ordenadas por
// BranchID ascendente. Ese orden es el orden global de bloqueo de filas: dos
// transferencias opuestas entre las mismas sucursales bloquean en el mismo orden.
func Effects(req MovementRequest) []StockEffect {
	q := req.Quantity
	var effects []StockEffect
	switch req.MovementType {
	case entity.MovementTypePurchase:
		effects = []StockEffect{{BranchID: req.BranchID, Delta: q}}
	case entity.MovementTypeSale:
		effects = []StockEffect{{BranchID: req.BranchID, Delta: -q, Outbound: true}}
	case entity.MovementTypeAdjustment:
		if req.Direction == entity.AdjustmentDecrease {
			effects = []StockEffect{{BranchID: req.BranchID, Delta: -q, Outbound: true}}
		} else {
			effects = []StockEffect{{BranchID: req.BranchID, Delta: q}}
		}
	case entity.MovementTypeTransfer:
		effects = []StockEffect{
			{BranchID: req.BranchFromID, Delta: -q, Outbound: true},
			{BranchID: req.BranchID, Delta: q},
		}
	}
	sort.Slice(effects, func(i, j int) bool { return effects[i].BranchID < effects[j].BranchID })
	return effects
}

// ApplyEffect regla 6 y mutación: verifica suficiencia para salidas y aplica el delta.
// stock nil en una salida es rechazo ("sin stock registrado"), no se trata como cero.
func ApplyEffect(stock *entity.Stock, eff StockEffect) error {
	if eff.Outbound {
		if stock == nil {
			return domain.NewInsufficientStockError("quantity", "no hay stock registrado para el producto en la sucursal")
		}
		if stock.Quantity < -eff.Delta {
			return domain.NewInsufficientStockError("quantity",
				fmt.Sprintf("stock insuficiente: disponible %d, solicitado %d", stock.Quantity, -eff.Delta))
		}
	}
	if stock == nil {
		return fmt.Errorf("apply stock effect: fila de stock nula para sucursal %s", eff.BranchID)
	}
	if eff.Delta > 0 && stock.Quantity > math.MaxInt64-eff.Delta {
		return domain.NewValidationError("quantity", "la cantidad excede el máximo de stock admitido")
	}
	stock.Quantity += eff.Delta
	return nil
}
