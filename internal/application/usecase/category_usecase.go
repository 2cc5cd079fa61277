package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// CategoryUseCase casos de uso CRUD para categorías.
type CategoryUseCase struct {
	repo repository.CategoryRepository
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository) *CategoryUseCase {
	return &CategoryUseCase{repo: repo}
}

func (uc *CategoryUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := requireAdmin(actor, "crear categorías"); err != nil {
		return nil, err
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		BusinessID:  actor.BusinessID,
		Name:        in.Name,
		Description: in.Description,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	if err := requireAdmin(actor, "modificar categorías"); err != nil {
		return nil, err
	}
	c, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	c.Name, c.Description = in.Name, in.Description
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	return toCategoryResponse(c), nil
}

func (uc *CategoryUseCase) List(ctx context.Context, actor entity.Actor, limit, offset int) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.ListByBusiness(ctx, actor.BusinessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items, nil
}

func (uc *CategoryUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := requireAdmin(actor, "eliminar categorías"); err != nil {
		return err
	}
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, id)
}

func (uc *CategoryUseCase) load(ctx context.Context, actor entity.Actor, id string) (*entity.Category, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || c.BusinessID != actor.BusinessID {
		return nil, domain.NewNotFoundError("categoría", "")
	}
	return c, nil
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{ID: c.ID, BusinessID: c.BusinessID, Name: c.Name, Description: c.Description}
}
