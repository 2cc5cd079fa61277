package repository

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// BranchRepository define el puerto de persistencia para Branch (DIP).
type BranchRepository interface {
	Create(ctx context.Context, branch *entity.Branch) error
	GetByID(ctx context.Context, id string) (*entity.Branch, error)
	Update(ctx context.Context, branch *entity.Branch) error
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.Branch, error)
	Delete(ctx context.Context, id string) error
}
