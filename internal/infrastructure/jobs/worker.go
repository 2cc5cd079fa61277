package jobs

import (
	"context"
	"errors"

	"github.com/hibiken/asynq"

	"github.com/jhoicas/control-stock-api/pkg/config"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

// RedisOpt opciones de conexión asynq a partir de la configuración Redis.
func RedisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}
}

// NewClient cliente asynq para encolar desde la API.
func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(RedisOpt(cfg))
}

// Worker envuelve el servidor asynq y su mux.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	log    *logger.Logger
}

// NewWorker registra los handlers de tareas.
func NewWorker(redisCfg config.RedisConfig, jobsCfg config.JobsConfig, stockLow *StockLowHandler, log *logger.Logger) *Worker {
	queue := jobsCfg.Queue
	if queue == "" {
		queue = QueueDefault
	}
	concurrency := jobsCfg.Concurrency
	if concurrency <= 0 {
		concurrency = 5
	}
	srv := asynq.NewServer(RedisOpt(redisCfg), asynq.Config{
		Concurrency: concurrency,
		Queues:      map[string]int{queue: 1},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			log.Error().Err(err).Str("task", task.Type()).Msg("tarea falló")
		}),
	})
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskStockLow, stockLow.Handle)
	return &Worker{server: srv, mux: mux, log: log}
}

// Run procesa tareas hasta que se cancele el contexto.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	if err := w.server.Start(w.mux); err != nil {
		return err
	}
	w.log.Info().Msg("worker iniciado")
	<-ctx.Done()
	w.server.Shutdown()
	return nil
}
