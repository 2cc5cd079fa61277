package usecase

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// BusinessUseCase consulta y actualización de la empresa del actor.
type BusinessUseCase struct {
	repo repository.BusinessRepository
}

// NewBusinessUseCase construye el caso de uso.
func NewBusinessUseCase(repo repository.BusinessRepository) *BusinessUseCase {
	return &BusinessUseCase{repo: repo}
}

// GetOwn devuelve la empresa del actor.
func (uc *BusinessUseCase) GetOwn(ctx context.Context, actor entity.Actor) (*dto.BusinessResponse, error) {
	b, err := uc.repo.GetByID(ctx, actor.BusinessID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NewNotFoundError("empresa", "")
	}
	return toBusinessResponse(b), nil
}

// UpdateOwn actualiza los datos de la empresa. Solo admin.
func (uc *BusinessUseCase) UpdateOwn(ctx context.Context, actor entity.Actor, in dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	if err := requireAdmin(actor, "modificar la empresa"); err != nil {
		return nil, err
	}
	b, err := uc.repo.GetByID(ctx, actor.BusinessID)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, domain.NewNotFoundError("empresa", "")
	}
	if in.Name != nil {
		b.Name = *in.Name
	}
	if in.Address != nil {
		b.Address = *in.Address
	}
	if in.Phone != nil {
		b.Phone = *in.Phone
	}
	if in.Notes != nil {
		b.Notes = *in.Notes
	}
	if err := uc.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return toBusinessResponse(b), nil
}

func toBusinessResponse(b *entity.Business) *dto.BusinessResponse {
	return &dto.BusinessResponse{
		ID:        b.ID,
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Notes:     b.Notes,
		CreatedAt: b.CreatedAt,
	}
}
