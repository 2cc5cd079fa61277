package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo}
}

func (uc *SupplierUseCase) Create(ctx context.Context, actor entity.Actor, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := requireAdmin(actor, "crear proveedores"); err != nil {
		return nil, err
	}
	s := &entity.Supplier{
		ID:         uuid.New().String(),
		BusinessID: actor.BusinessID,
		Name:       in.Name,
		Address:    in.Address,
		Phone:      in.Phone,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.SupplierRequest) (*dto.SupplierResponse, error) {
	if err := requireAdmin(actor, "modificar proveedores"); err != nil {
		return nil, err
	}
	s, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	s.Name, s.Address, s.Phone = in.Name, in.Address, in.Phone
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

func (uc *SupplierUseCase) List(ctx context.Context, actor entity.Actor, limit, offset int) ([]dto.SupplierResponse, error) {
	list, err := uc.repo.ListByBusiness(ctx, actor.BusinessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return items, nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := requireAdmin(actor, "eliminar proveedores"); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *SupplierUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Supplier, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil || s.BusinessID != actor.BusinessID {
		return nil, domain.NewNotFoundError("proveedor", "")
	}
	return s, nil
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{ID: s.ID, BusinessID: s.BusinessID, Name: s.Name, Address: s.Address, Phone: s.Phone}
}
