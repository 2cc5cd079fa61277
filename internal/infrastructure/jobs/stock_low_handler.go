package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/control-stock-api/internal/domain/repository"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

// StockLowHandler procesa TaskStockLow: vuelve a leer el nivel y registra la alerta
// si la fila sigue bajo el mínimo (otro movimiento pudo reponerla entre tanto).
type StockLowHandler struct {
	levels repository.StockLevelRepository
	log    *logger.Logger
}

func NewStockLowHandler(levels repository.StockLevelRepository, log *logger.Logger) *StockLowHandler {
	return &StockLowHandler{levels: levels, log: log}
}

// Handle implementa asynq.HandlerFunc.
func (h *StockLowHandler) Handle(ctx context.Context, t *asynq.Task) error {
	var p StockLowPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("decode stock low payload: %v: %w", err, asynq.SkipRetry)
	}

	rows, err := h.levels.List(ctx, repository.StockFilter{
		BusinessID: p.BusinessID,
		ProductID:  p.ProductID,
		BranchID:   p.BranchID,
		Limit:      1,
	})
	if err != nil {
		return fmt.Errorf("load stock level: %w", err)
	}
	if len(rows) == 0 {
		h.log.Debug().Str("product_id", p.ProductID).Str("branch_id", p.BranchID).Msg("stock bajo: fila ya no existe")
		return nil
	}
	cur := rows[0]
	if !cur.IsLowStock() {
		h.log.Debug().Str("product_id", p.ProductID).Str("branch_id", p.BranchID).Msg("stock repuesto antes de procesar alerta")
		return nil
	}
	h.log.Warn().
		Str("business_id", p.BusinessID).
		Str("product", cur.ProductName).
		Str("branch", cur.BranchName).
		Int64("quantity", cur.Quantity).
		Int64("minimum_stock", cur.MinimumStock).
		Str("movement_id", p.MovementID).
		Msg("stock bajo el mínimo")
	return nil
}
