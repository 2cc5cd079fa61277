package jobs

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

var _ inventory.MovementListener = (*LowStockNotifier)(nil)

// Enqueuer subconjunto de *asynq.Client usado para encolar.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// LowStockNotifier encola TaskStockLow por cada fila tocada que quedó bajo el mínimo.
type LowStockNotifier struct {
	client Enqueuer
	queue  string
}

func NewLowStockNotifier(client Enqueuer, queue string) *LowStockNotifier {
	if queue == "" {
		queue = QueueDefault
	}
	return &LowStockNotifier{client: client, queue: queue}
}

// OnMovementRegistered se ejecuta después del commit.
func (n *LowStockNotifier) OnMovementRegistered(ctx context.Context, mov *entity.Movement, levels []entity.Stock) error {
	var errs []error
	for i := range levels {
		s := levels[i]
		if !s.IsLowStock() {
			continue
		}
		task, err := NewStockLowTask(StockLowPayload{
			BusinessID:   mov.BusinessID,
			ProductID:    s.ProductID,
			BranchID:     s.BranchID,
			Quantity:     s.Quantity,
			MinimumStock: s.MinimumStock,
			MovementID:   mov.ID,
		})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := n.client.EnqueueContext(ctx, task, asynq.Queue(n.queue), asynq.MaxRetry(3)); err != nil {
			errs = append(errs, fmt.Errorf("enqueue %s %s/%s: %w", TaskStockLow, s.ProductID, s.BranchID, err))
		}
	}
	return errors.Join(errs...)
}
