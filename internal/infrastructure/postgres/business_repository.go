package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL.
type BusinessRepo struct {
	db Querier
}

// NewBusinessRepository construye el adaptador de persistencia para empresas.
func NewBusinessRepository(db Querier) *BusinessRepo {
	return &BusinessRepo{db: db}
}

// Create persiste una nueva empresa.
func (r *BusinessRepo) Create(ctx context.Context, b *entity.Business) error {
	query := `
		INSERT INTO businesses (id, name, address, phone, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query, b.ID, b.Name, b.Address, b.Phone, b.Notes, b.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert business: %w", err)
	}
	return nil
}

// GetByID obtiene una empresa por ID. Devuelve nil, nil si no existe.
func (r *BusinessRepo) GetByID(ctx context.Context, id string) (*entity.Business, error) {
	query := `SELECT id, name, address, phone, notes, created_at FROM businesses WHERE id = $1`
	var b entity.Business
	err := r.db.QueryRow(ctx, query, id).Scan(&b.ID, &b.Name, &b.Address, &b.Phone, &b.Notes, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get business: %w", err)
	}
	return &b, nil
}

// Update actualiza los datos editables de la empresa.
func (r *BusinessRepo) Update(ctx context.Context, b *entity.Business) error {
	query := `UPDATE businesses SET name = $2, address = $3, phone = $4, notes = $5 WHERE id = $1`
	_, err := r.db.Exec(ctx, query, b.ID, b.Name, b.Address, b.Phone, b.Notes)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}
	return nil
}
