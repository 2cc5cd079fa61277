package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/inventory"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

// Config parámetros de reintento ante conflictos de concurrencia.
type Config struct {
	MaxRetries   int
	RetryBackoff time.Duration
}

// RegisterMovementUseCase registra movimientos de inventario de forma transaccional
// (purchase, sale, adjustment, transfer) con bloqueo de fila (SELECT FOR UPDATE) y Commit/Rollback.
type RegisterMovementUseCase struct {
	txRunner     TxRunner
	productRepo  ProductReader
	branchRepo   BranchReader
	documentRepo DocumentReader
	cfg          Config
	log          *logger.Logger
	listeners    []MovementListener
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(
	txRunner TxRunner,
	productRepo ProductReader,
	branchRepo BranchReader,
	documentRepo DocumentReader,
	cfg Config,
	log *logger.Logger,
	listeners ...MovementListener,
) *RegisterMovementUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBackoff < 0 {
		cfg.RetryBackoff = 0
	}
	return &RegisterMovementUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		branchRepo:   branchRepo,
		documentRepo: documentRepo,
		cfg:          cfg,
		log:          log.Component("movements"),
		listeners:    listeners,
	}
}

// MovementInputDTO entrada para registrar un movimiento de inventario.
// BranchID es el destino; BranchFromID solo en transferencias; Direction solo en ajustes.
type MovementInputDTO struct {
	MovementType string
	ProductID    string
	BranchID     string
	BranchFromID string
	DocumentID   string
	Quantity     int64
	UnitPrice    *decimal.Decimal
	Direction    string
}

// RegisterMovement valida el movimiento (reglas en orden, la primera violación gana), abre una
// transacción, bloquea las filas de stock en orden ascendente de sucursal, aplica los deltas
// e inserta el movimiento. Los conflictos de bloqueo se reintentan hasta cfg.MaxRetries veces.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, actor entity.Actor, input MovementInputDTO) (*dto.MovementResponse, error) {
	req := inventory.MovementRequest{
		MovementType: input.MovementType,
		ProductID:    input.ProductID,
		BranchID:     input.BranchID,
		BranchFromID: input.BranchFromID,
		DocumentID:   input.DocumentID,
		Quantity:     input.Quantity,
		UnitPrice:    input.UnitPrice,
		Direction:    input.Direction,
	}
	if err := inventory.ValidateShape(req); err != nil {
		return nil, err
	}
	refs, err := uc.loadReferences(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := inventory.Validate(actor, req, refs); err != nil {
		return nil, err
	}

	effects := inventory.Effects(req)
	movementID := uuid.New().String()
	var (
		mov    *entity.Movement
		levels []entity.Stock
	)
	err = uc.withRetry(ctx, func() error {
		mov, levels = nil, nil
		return uc.txRunner.Run(ctx, func(
			ctx context.Context,
			movRepo repository.MovementRepository,
			stockRepo repository.StockRepository,
		) error {
			now := time.Now().UTC()
			for _, eff := range effects {
				stock, err := lockStock(ctx, stockRepo, req.ProductID, eff)
				if err != nil {
					return err
				}
				if err := inventory.ApplyEffect(stock, eff); err != nil {
					return err
				}
				stock.UpdatedAt = now
				if err := stockRepo.UpdateQuantity(ctx, stock); err != nil {
					return err
				}
				levels = append(levels, *stock)
			}
			m := &entity.Movement{
				ID:           movementID,
				BusinessID:   actor.BusinessID,
				MovementType: req.MovementType,
				ProductID:    req.ProductID,
				BranchID:     req.BranchID,
				BranchFromID: req.BranchFromID,
				Quantity:     req.Quantity,
				Direction:    req.Direction,
				UnitPrice:    req.UnitPrice,
				DocumentID:   req.DocumentID,
				UserID:       actor.UserID,
				CreatedAt:    now,
			}
			if err := movRepo.Create(ctx, m); err != nil {
				return err
			}
			mov = m
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("movement_id", mov.ID).
		Str("business_id", mov.BusinessID).
		Str("type", mov.MovementType).
		Str("product_id", mov.ProductID).
		Int64("quantity", mov.Quantity).
		Msg("movimiento registrado")

	for _, l := range uc.listeners {
		if err := l.OnMovementRegistered(ctx, mov, levels); err != nil {
			uc.log.Warn().Err(err).Str("movement_id", mov.ID).Msg("listener de movimiento falló")
		}
	}

	resp := buildMovementResponse(mov, refs, levels)
	return &resp, nil
}

// lockStock salidas: la fila debe existir (nil = sin stock registrado). Entradas: get-or-create.
func lockStock(ctx context.Context, stockRepo repository.StockRepository, productID string, eff inventory.StockEffect) (*entity.Stock, error) {
	if eff.Outbound {
		return stockRepo.GetForUpdate(ctx, productID, eff.BranchID)
	}
	return stockRepo.GetOrCreateForUpdate(ctx, productID, eff.BranchID)
}

// withRetry reintenta fn mientras falle con domain.ErrConcurrency. Cada intento es una
// transacción nueva; el rollback del intento anterior ya liberó los bloqueos.
func (uc *RegisterMovementUseCase) withRetry(ctx context.Context, fn func() error) error {
	var err error
	for attempt := 0; attempt <= uc.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			uc.log.Warn().Err(err).Int("attempt", attempt).Msg("conflicto de concurrencia, reintentando movimiento")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(uc.cfg.RetryBackoff * time.Duration(attempt)):
			}
		}
		err = fn()
		if !errors.Is(err, domain.ErrConcurrency) {
			return err
		}
	}
	return err
}

// loadReferences carga producto, sucursales y documento. Los faltantes quedan en nil y
// la regla de tenant los reporta; solo los errores de infraestructura se devuelven aquí.
func (uc *RegisterMovementUseCase) loadReferences(ctx context.Context, req inventory.MovementRequest) (inventory.References, error) {
	var refs inventory.References
	var err error
	if refs.Product, err = uc.productRepo.GetByID(ctx, req.ProductID); err != nil {
		return refs, fmt.Errorf("load product: %w", err)
	}
	if refs.Branch, err = uc.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		return refs, fmt.Errorf("load branch: %w", err)
	}
	if req.BranchFromID != "" {
		if refs.BranchFrom, err = uc.branchRepo.GetByID(ctx, req.BranchFromID); err != nil {
			return refs, fmt.Errorf("load branch_from: %w", err)
		}
	}
	if req.DocumentID != "" {
		if refs.Document, err = uc.documentRepo.GetByID(ctx, req.DocumentID); err != nil {
			return refs, fmt.Errorf("load document: %w", err)
		}
	}
	return refs, nil
}
