package inventory

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/inventory"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// RegisterMovementFromRequest adapta el request HTTP al caso de uso RegisterMovement.
func (uc *RegisterMovementUseCase) RegisterMovementFromRequest(ctx context.Context, actor entity.Actor, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	return uc.RegisterMovement(ctx, actor, MovementInputDTO{
		MovementType: in.MovementType,
		ProductID:    in.ProductID,
		BranchID:     in.BranchID,
		BranchFromID: in.BranchFromID,
		DocumentID:   in.DocumentID,
		Quantity:     in.Quantity,
		UnitPrice:    in.UnitPrice,
		Direction:    in.Direction,
	})
}

func buildMovementResponse(mov *entity.Movement, refs inventory.References, levels []entity.Stock) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:           mov.ID,
		MovementType: mov.MovementType,
		Product:      dto.ProductSummary{ID: refs.Product.ID, Name: refs.Product.Name},
		Branch:       dto.BranchSummary{ID: refs.Branch.ID, Name: refs.Branch.Name},
		Quantity:     mov.Quantity,
		Direction:    mov.Direction,
		UnitPrice:    mov.UnitPrice,
		UserID:       mov.UserID,
		CreatedAt:    mov.CreatedAt,
	}
	if refs.BranchFrom != nil {
		resp.BranchFrom = &dto.BranchSummary{ID: refs.BranchFrom.ID, Name: refs.BranchFrom.Name}
	}
	if refs.Document != nil {
		resp.Document = &dto.DocumentSummary{
			ID:             refs.Document.ID,
			DocumentType:   refs.Document.DocumentType,
			DocumentNumber: refs.Document.DocumentNumber,
		}
	}
	for i := range levels {
		resp.StockLevels = append(resp.StockLevels, dto.StockLevelDTO{
			BranchID:     levels[i].BranchID,
			Quantity:     levels[i].Quantity,
			MinimumStock: levels[i].MinimumStock,
			IsLowStock:   levels[i].IsLowStock(),
		})
	}
	return resp
}

// ToMovementResponse convierte un movimiento leído del historial (con nombres resueltos).
func ToMovementResponse(d repository.MovementDetail) dto.MovementResponse {
	resp := dto.MovementResponse{
		ID:           d.ID,
		MovementType: d.MovementType,
		Product:      dto.ProductSummary{ID: d.ProductID, Name: d.ProductName},
		Branch:       dto.BranchSummary{ID: d.BranchID, Name: d.BranchName},
		Quantity:     d.Quantity,
		Direction:    d.Direction,
		UnitPrice:    d.UnitPrice,
		UserID:       d.UserID,
		UserName:     d.UserName,
		CreatedAt:    d.CreatedAt,
	}
	if d.BranchFromID != "" {
		resp.BranchFrom = &dto.BranchSummary{ID: d.BranchFromID, Name: d.BranchFromName}
	}
	if d.DocumentID != "" {
		resp.Document = &dto.DocumentSummary{ID: d.DocumentID, DocumentType: d.DocumentType, DocumentNumber: d.DocumentNumber}
	}
	return resp
}
