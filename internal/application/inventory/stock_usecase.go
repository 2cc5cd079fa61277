package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// exportLimit tope de filas de una exportación xlsx.
const exportLimit = 10000

// StockUseCase casos de uso de lectura de stock, mínimo y exportación.
type StockUseCase struct {
	levels      repository.StockLevelRepository
	txRunner    TxRunner
	productRepo ProductReader
	branchRepo  BranchReader
	exporter    StockExporter
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	levels repository.StockLevelRepository,
	txRunner TxRunner,
	productRepo ProductReader,
	branchRepo BranchReader,
	exporter StockExporter,
) *StockUseCase {
	return &StockUseCase{
		levels:      levels,
		txRunner:    txRunner,
		productRepo: productRepo,
		branchRepo:  branchRepo,
		exporter:    exporter,
	}
}

// scopedFilter aplica el alcance del actor: siempre su empresa; rol user solo su sucursal.
// ok=false cuando un user pide explícitamente otra sucursal (resultado vacío).
func scopedFilter(actor entity.Actor, q dto.StockQuery) (repository.StockFilter, bool) {
	f := repository.StockFilter{
		BusinessID:  actor.BusinessID,
		ProductID:   q.ProductID,
		BranchID:    q.BranchID,
		ProductName: q.ProductName,
		LowOnly:     q.LowOnly,
		Limit:       q.Limit,
		Offset:      q.Offset,
	}
	if !actor.IsAdmin() {
		if q.BranchID != "" && q.BranchID != actor.BranchID {
			return f, false
		}
		f.BranchID = actor.BranchID
	}
	return f, true
}

// ListStock devuelve las filas de stock visibles para el actor, con is_low_stock calculado.
func (uc *StockUseCase) ListStock(ctx context.Context, actor entity.Actor, q dto.StockQuery) (*dto.StockListResponse, error) {
	q.DefaultPage()
	out := &dto.StockListResponse{Items: []dto.StockResponse{}, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}
	f, ok := scopedFilter(actor, q)
	if !ok {
		return out, nil
	}
	rows, err := uc.levels.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for i := range rows {
		out.Items = append(out.Items, toStockResponse(rows[i]))
	}
	return out, nil
}

// ListStockByProductName búsqueda por nombre de producto (coincidencia parcial).
func (uc *StockUseCase) ListStockByProductName(ctx context.Context, actor entity.Actor, name string, page dto.PageRequest) (*dto.StockListResponse, error) {
	if name == "" {
		return nil, domain.NewValidationError("product_name", "el nombre del producto es requerido")
	}
	return uc.ListStock(ctx, actor, dto.StockQuery{ProductName: name, PageRequest: page})
}

// SetMinimumStock fija el mínimo de una fila (la crea si no existe). Solo admin.
func (uc *StockUseCase) SetMinimumStock(ctx context.Context, actor entity.Actor, in dto.SetMinimumStockRequest) (*dto.StockResponse, error) {
	if !actor.IsAdmin() {
		return nil, domain.NewPermissionError("admin", "Solo un administrador puede modificar el stock mínimo")
	}
	if in.MinimumStock < 0 {
		return nil, domain.NewValidationError("minimum_stock", "el stock mínimo no puede ser negativo")
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, fmt.Errorf("load product: %w", err)
	}
	if product == nil || product.BusinessID != actor.BusinessID {
		return nil, domain.NewNotFoundError("producto", "product_id")
	}
	branch, err := uc.branchRepo.GetByID(ctx, in.BranchID)
	if err != nil {
		return nil, fmt.Errorf("load branch: %w", err)
	}
	if branch == nil || branch.BusinessID != actor.BusinessID {
		return nil, domain.NewNotFoundError("sucursal", "branch_id")
	}

	var stock *entity.Stock
	err = uc.txRunner.Run(ctx, func(ctx context.Context, _ repository.MovementRepository, stockRepo repository.StockRepository) error {
		s, err := stockRepo.GetOrCreateForUpdate(ctx, in.ProductID, in.BranchID)
		if err != nil {
			return err
		}
		s.MinimumStock = in.MinimumStock
		if err := stockRepo.UpdateMinimum(ctx, s); err != nil {
			return err
		}
		stock = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toStockResponse(repository.StockDetail{Stock: *stock, ProductName: product.Name, BranchName: branch.Name})
	return &resp, nil
}

// ExportStock genera un xlsx con el mismo listado que ListStock (sin paginar).
func (uc *StockUseCase) ExportStock(ctx context.Context, actor entity.Actor, q dto.StockQuery) ([]byte, error) {
	q.Limit, q.Offset = exportLimit, 0
	f, ok := scopedFilter(actor, q)
	var rows []repository.StockDetail
	if ok {
		var err error
		if rows, err = uc.levels.List(ctx, f); err != nil {
			return nil, err
		}
	}
	return uc.exporter.ExportStock(rows)
}

func toStockResponse(d repository.StockDetail) dto.StockResponse {
	return dto.StockResponse{
		ID:           d.ID,
		Product:      dto.ProductSummary{ID: d.ProductID, Name: d.ProductName},
		Branch:       dto.BranchSummary{ID: d.BranchID, Name: d.BranchName},
		Quantity:     d.Quantity,
		MinimumStock: d.MinimumStock,
		IsLowStock:   d.IsLowStock(),
		UpdatedAt:    d.UpdatedAt,
	}
}
