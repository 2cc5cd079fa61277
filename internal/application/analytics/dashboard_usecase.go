// Package analytics contiene el caso de uso del tablero: conteos, stock bajo y
// movimientos recientes de la empresa.
package analytics

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

const dashboardRecentMovements = 10 // movimientos en el widget del dashboard

// DashboardCache cache del tablero por (empresa, alcance de sucursal).
// scope vacío = vista de toda la empresa.
type DashboardCache interface {
	Get(ctx context.Context, businessID, scope string) (*dto.DashboardDTO, int64, bool, error)
	Set(ctx context.Context, businessID, scope string, version int64, value *dto.DashboardDTO, ttl time.Duration) error
	InvalidateBusiness(ctx context.Context, businessID string) error
}

// DashboardUseCase arma el tablero de la empresa.
//
// Fuente de datos: DashboardRepository, StockLevelRepository y MovementRepository (read-only).
type DashboardUseCase struct {
	counts    repository.DashboardRepository
	levels    repository.StockLevelRepository
	movements repository.MovementRepository
	cache     DashboardCache
	ttl       time.Duration
	log       *logger.Logger
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil (sin cache).
func NewDashboardUseCase(
	counts repository.DashboardRepository,
	levels repository.StockLevelRepository,
	movements repository.MovementRepository,
	cache DashboardCache,
	ttl time.Duration,
	log *logger.Logger,
) *DashboardUseCase {
	if log == nil {
		log = logger.NewNop()
	}
	return &DashboardUseCase{
		counts:    counts,
		levels:    levels,
		movements: movements,
		cache:     cache,
		ttl:       ttl,
		log:       log.Component("dashboard"),
	}
}

// GetDashboard construye el DashboardDTO para el actor.
//
// Cinco consultas en paralelo (errgroup): sucursales, productos, documentos,
// filas con stock bajo y últimos movimientos. Rol user: alcance de su sucursal.
func (uc *DashboardUseCase) GetDashboard(ctx context.Context, actor entity.Actor) (*dto.DashboardDTO, error) {
	scope := ""
	if !actor.IsAdmin() {
		scope = actor.BranchID
	}
	var (
		version   int64
		cacheable bool
	)
	if uc.cache != nil {
		cached, ver, ok, err := uc.cache.Get(ctx, actor.BusinessID, scope)
		switch {
		case err != nil:
			uc.log.Warn().Err(err).Msg("lectura de cache del dashboard falló")
		case ok:
			return cached, nil
		default:
			version, cacheable = ver, true
		}
	}

	out := &dto.DashboardDTO{BranchID: scope}
	var recent []repository.MovementDetail

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.counts.CountBranches(gctx, actor.BusinessID, scope)
		if err != nil {
			return fmt.Errorf("dashboard: sucursales: %w", err)
		}
		out.Branches = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.counts.CountProducts(gctx, actor.BusinessID, scope)
		if err != nil {
			return fmt.Errorf("dashboard: productos: %w", err)
		}
		out.Products = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.counts.CountDocuments(gctx, actor.BusinessID)
		if err != nil {
			return fmt.Errorf("dashboard: documentos: %w", err)
		}
		out.Documents = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.levels.CountLow(gctx, actor.BusinessID, scope)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		out.LowStock = n
		return nil
	})
	g.Go(func() error {
		list, err := uc.movements.List(gctx, repository.MovementFilter{
			BusinessID: actor.BusinessID,
			BranchID:   scope,
			Limit:      dashboardRecentMovements,
		})
		if err != nil {
			return fmt.Errorf("dashboard: movimientos: %w", err)
		}
		recent = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.RecentMovements = make([]dto.MovementResponse, 0, len(recent))
	for _, d := range recent {
		out.RecentMovements = append(out.RecentMovements, inventory.ToMovementResponse(d))
	}

	if cacheable {
		if err := uc.cache.Set(ctx, actor.BusinessID, scope, version, out, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Msg("escritura de cache del dashboard falló")
		}
	}
	return out, nil
}

// OnMovementRegistered invalida el tablero de la empresa tras cada movimiento.
func (uc *DashboardUseCase) OnMovementRegistered(ctx context.Context, mov *entity.Movement, _ []entity.Stock) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.InvalidateBusiness(ctx, mov.BusinessID)
}

var _ inventory.MovementListener = (*DashboardUseCase)(nil)
