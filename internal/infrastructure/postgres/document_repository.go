package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

// DocumentRepo implementación del puerto DocumentRepository sobre PostgreSQL.
type DocumentRepo struct {
	db Querier
}

func NewDocumentRepository(db Querier) *DocumentRepo {
	return &DocumentRepo{db: db}
}

const documentColumns = `id, business_id, document_type, document_number, created_by, created_at`

// Create persiste un documento. (business_id, document_type, document_number) es único.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `INSERT INTO documents (` + documentColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, d.ID, d.BusinessID, d.DocumentType, d.DocumentNumber, nullable(d.CreatedBy), d.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	return nil
}

func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	var d entity.Document
	var createdBy *string
	err := r.db.QueryRow(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id).Scan(
		&d.ID, &d.BusinessID, &d.DocumentType, &d.DocumentNumber, &createdBy, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	d.CreatedBy = deref(createdBy)
	return &d, nil
}

// ListByBusiness lista documentos, más recientes primero. documentType vacío = todos.
func (r *DocumentRepo) ListByBusiness(ctx context.Context, businessID, documentType string, limit, offset int) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents
		WHERE business_id = $1 AND ($2 = '' OR document_type = $2)
		ORDER BY created_at DESC LIMIT $3 OFFSET $4`
	rows, err := r.db.Query(ctx, query, businessID, documentType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()

	var list []*entity.Document
	for rows.Next() {
		var d entity.Document
		var createdBy *string
		if err := rows.Scan(&d.ID, &d.BusinessID, &d.DocumentType, &d.DocumentNumber, &createdBy, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		d.CreatedBy = deref(createdBy)
		list = append(list, &d)
	}
	return list, rows.Err()
}

// Delete elimina el documento; los movimientos que lo referencian quedan sin documento.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}
