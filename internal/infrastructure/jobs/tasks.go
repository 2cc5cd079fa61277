package jobs

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault cola por defecto cuando JOBS_QUEUE no está definida.
	QueueDefault = "default"
	// TaskStockLow aviso de stock bajo tras un movimiento.
	TaskStockLow = "stock:low"
)

// StockLowPayload datos del aviso de stock bajo.
type StockLowPayload struct {
	BusinessID   string `json:"business_id"`
	ProductID    string `json:"product_id"`
	BranchID     string `json:"branch_id"`
	Quantity     int64  `json:"quantity"`
	MinimumStock int64  `json:"minimum_stock"`
	MovementID   string `json:"movement_id"`
}

// NewStockLowTask construye la tarea asynq.
func NewStockLowTask(p StockLowPayload) (*asynq.Task, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("marshal stock low payload: %w", err)
	}
	return asynq.NewTask(TaskStockLow, data), nil
}
