package repository

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.Product, error)
	// ListByBranchStock productos que tienen fila de stock en la sucursal (visibilidad de rol user).
	ListByBranchStock(ctx context.Context, businessID, branchID string, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
