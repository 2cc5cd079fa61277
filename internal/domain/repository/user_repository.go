package repository

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Create devuelve domain.ErrEmailAlreadyExists si el email o el username ya existen.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// GetByLogin busca por email o por username.
	GetByLogin(ctx context.Context, login string) (*entity.User, error)
	ListByBusiness(ctx context.Context, businessID string, limit, offset int) ([]*entity.User, error)
}
