package repository

import (
	"context"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// DocumentRepository define el puerto de persistencia para Document (DIP).
// Create devuelve domain.ErrDuplicate si (empresa, tipo, número) ya existe.
type DocumentRepository interface {
	Create(ctx context.Context, document *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	ListByBusiness(ctx context.Context, businessID, documentType string, limit, offset int) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
