package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// DocumentUseCase alta, listado y baja de documentos de respaldo.
type DocumentUseCase struct {
	repo repository.DocumentRepository
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(repo repository.DocumentRepository) *DocumentUseCase {
	return &DocumentUseCase{repo: repo}
}

// Create registra un documento; created_by es el actor. (tipo, número) repetido es error de validación.
func (uc *DocumentUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	if !entity.IsValidDocumentType(in.DocumentType) {
		return nil, domain.NewValidationError("document_type", "tipo de documento inválido")
	}
	number := strings.TrimSpace(in.DocumentNumber)
	if number == "" {
		return nil, domain.NewValidationError("document_number", "el número de documento es requerido")
	}
	doc := &entity.Document{
		ID:             uuid.New().String(),
		BusinessID:     actor.BusinessID,
		DocumentType:   in.DocumentType,
		DocumentNumber: number,
		CreatedBy:      actor.UserID,
		CreatedAt:      time.Now(),
	}
	if err := uc.repo.Create(ctx, doc); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, &domain.ValidationError{
				Field:   "document_number",
				Message: "ya existe un documento de ese tipo con ese número",
				Err:     domain.ErrDuplicate,
			}
		}
		return nil, err
	}
	return toDocumentResponse(doc), nil
}

// List documentos de la empresa; documentType vacío = todos.
func (uc *DocumentUseCase) List(ctx context.Context, actor entity.Actor, documentType string, limit, offset int) ([]dto.DocumentResponse, error) {
	list, err := uc.repo.ListByBusiness(ctx, actor.BusinessID, documentType, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.DocumentResponse, 0, len(list))
	for _, d := range list {
		items = append(items, *toDocumentResponse(d))
	}
	return items, nil
}

// Delete elimina un documento. Solo admin.
func (uc *DocumentUseCase) Delete(ctx context.Context, actor entity.Actor, id string) error {
	if err := requireAdmin(actor, "eliminar documentos"); err != nil {
		return err
	}
	doc, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if doc == nil || doc.BusinessID != actor.BusinessID {
		return domain.NewNotFoundError("documento", "")
	}
	return uc.repo.Delete(ctx, id)
}

func toDocumentResponse(d *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		ID:             d.ID,
		BusinessID:     d.BusinessID,
		DocumentType:   d.DocumentType,
		DocumentNumber: d.DocumentNumber,
		CreatedBy:      d.CreatedBy,
		CreatedAt:      d.CreatedAt,
	}
}
