package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// BranchUseCase casos de uso CRUD para sucursales.
type BranchUseCase struct {
	repo repository.BranchRepository
}

// NewBranchUseCase construye el caso de uso.
func NewBranchUseCase(repo repository.BranchRepository) *BranchUseCase {
	return &BranchUseCase{repo: repo}
}

// Create crea una nueva sucursal en la empresa del actor.
func (uc *BranchUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateBranchRequest) (*dto.BranchResponse, error) {
	if err := requireAdmin(actor, "crear sucursales"); err != nil {
		return nil, err
	}
	now := time.Now()
	branch := &entity.Branch{
		ID:         uuid.New().String(),
		BusinessID: actor.BusinessID,
		Name:       in.Name,
		Address:    in.Address,
		Phone:      in.Phone,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// GetByID obtiene una sucursal visible para el actor.
func (uc *BranchUseCase) GetByID(ctx context.Context, actor entity.Actor, id string) (*dto.BranchResponse, error) {
	branch, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanAccessBranch(branch.ID) {
		return nil, domain.NewNotFoundError("sucursal", "")
	}
	return toBranchResponse(branch), nil
}

// Update actualiza una sucursal.
func (uc *BranchUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateBranchRequest) (*dto.BranchResponse, error) {
	if err := requireAdmin(actor, "modificar sucursales"); err != nil {
		return nil, err
	}
	branch, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		branch.Name = *in.Name
	}
	if in.Address != nil {
		branch.Address = *in.Address
	}
	if in.Phone != nil {
		branch.Phone = *in.Phone
	}
	branch.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, branch); err != nil {
		return nil, err
	}
	return toBranchResponse(branch), nil
}

// List lista sucursales de la empresa. Rol user: solo la suya.
func (uc *BranchUseCase) List(ctx context.Context, actor entity.Actor, limit, offset int) (*dto.BranchListResponse, error) {
	items := []dto.BranchResponse{}
	if !actor.IsAdmin() {
		branch, err := uc.repo.GetByID(ctx, actor.BranchID)
		if err != nil {
			return nil, err
		}
		if branch != nil && branch.BusinessID == actor.BusinessID && offset == 0 {
			items = append(items, *toBranchResponse(branch))
		}
		return &dto.BranchListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}}, nil
	}
	list, err := uc.repo.ListByBusiness(ctx, actor.BusinessID, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, b := range list {
		items = append(items, *toBranchResponse(b))
	}
	return &dto.BranchListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Delete elimina una sucursal (el stock asociado se borra en cascada).
func (uc *BranchUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := requireAdmin(actor, "eliminar sucursales"); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *BranchUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Branch, error) {
	branch, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if branch == nil || branch.BusinessID != actor.BusinessID {
		return nil, domain.NewNotFoundError("sucursal", "")
	}
	return branch, nil
}

func toBranchResponse(b *entity.Branch) *dto.BranchResponse {
	return &dto.BranchResponse{
		ID:         b.ID,
		BusinessID: b.BusinessID,
		Name:       b.Name,
		Address:    b.Address,
		Phone:      b.Phone,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}
