package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// BusinessReader lectura de la empresa (encabezado del comprobante).
type BusinessReader interface {
	GetByID(ctx context.Context, id string) (*entity.Business, error)
}

// MovementQueryUseCase historial de movimientos y comprobante PDF.
type MovementQueryUseCase struct {
	movements    repository.MovementRepository
	businessRepo BusinessReader
	voucher      VoucherRenderer
}

// NewMovementQueryUseCase construye el caso de uso.
func NewMovementQueryUseCase(movements repository.MovementRepository, businessRepo BusinessReader, voucher VoucherRenderer) *MovementQueryUseCase {
	return &MovementQueryUseCase{movements: movements, businessRepo: businessRepo, voucher: voucher}
}

// ListMovements historial más reciente primero. Rol user: solo movimientos de su sucursal.
func (uc *MovementQueryUseCase) ListMovements(ctx context.Context, actor entity.Actor, q dto.MovementQuery) (*dto.MovementListResponse, error) {
	q.DefaultPage()
	out := &dto.MovementListResponse{Items: []dto.MovementResponse{}, Page: dto.PageResponse{Limit: q.Limit, Offset: q.Offset}}
	f := repository.MovementFilter{
		BusinessID:   actor.BusinessID,
		ProductID:    q.ProductID,
		BranchID:     q.BranchID,
		MovementType: q.MovementType,
		Limit:        q.Limit,
		Offset:       q.Offset,
	}
	if !actor.IsAdmin() {
		if q.BranchID != "" && q.BranchID != actor.BranchID {
			return out, nil
		}
		f.BranchID = actor.BranchID
	}
	list, err := uc.movements.List(ctx, f)
	if err != nil {
		return nil, err
	}
	for _, d := range list {
		out.Items = append(out.Items, ToMovementResponse(d))
	}
	return out, nil
}

// GetMovement obtiene un movimiento visible para el actor.
func (uc *MovementQueryUseCase) GetMovement(ctx context.Context, actor entity.Actor, id string) (*dto.MovementResponse, error) {
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	resp := ToMovementResponse(*d)
	return &resp, nil
}

// MovementVoucherPDF genera el comprobante PDF del movimiento.
func (uc *MovementQueryUseCase) MovementVoucherPDF(ctx context.Context, actor entity.Actor, id string) ([]byte, error) {
	d, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	business, err := uc.businessRepo.GetByID(ctx, actor.BusinessID)
	if err != nil {
		return nil, fmt.Errorf("load business: %w", err)
	}
	if business == nil {
		return nil, domain.NewNotFoundError("empresa", "")
	}
	return uc.voucher.RenderMovementVoucher(business, d)
}

func (uc *MovementQueryUseCase) load(ctx context.Context, actor entity.Actor, id string) (*repository.MovementDetail, error) {
	d, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || d.BusinessID != actor.BusinessID {
		return nil, domain.NewNotFoundError("movimiento", "")
	}
	if !actor.CanAccessBranch(d.BranchID) && !(d.BranchFromID != "" && actor.CanAccessBranch(d.BranchFromID)) {
		return nil, domain.NewNotFoundError("movimiento", "")
	}
	return d, nil
}
