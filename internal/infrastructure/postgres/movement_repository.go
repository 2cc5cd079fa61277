package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del registro inmutable de movimientos.
type MovementRepo struct {
	db Querier
}

// NewMovementRepository construye el repositorio sobre un Querier (pool o tx).
func NewMovementRepository(db Querier) *MovementRepo {
	return &MovementRepo{db: db}
}

// Create inserta el movimiento. No existe Update ni Delete.
func (r *MovementRepo) Create(ctx context.Context, m *entity.Movement) error {
	query := `
		INSERT INTO movements (id, business_id, movement_type, product_id, branch_id, branch_from_id,
			quantity, direction, unit_price, document_id, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	price := decimal.NullDecimal{}
	if m.UnitPrice != nil {
		price = decimal.NullDecimal{Decimal: *m.UnitPrice, Valid: true}
	}
	_, err := r.db.Exec(ctx, query,
		m.ID, m.BusinessID, m.MovementType, m.ProductID, m.BranchID, nullable(m.BranchFromID),
		m.Quantity, nullable(m.Direction), price, nullable(m.DocumentID), nullable(m.UserID), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

const movementDetailSelect = `
	SELECT m.id, m.business_id, m.movement_type, m.product_id, m.branch_id, m.branch_from_id,
		m.quantity, m.direction, m.unit_price, m.document_id, m.user_id, m.created_at,
		p.name, b.name, COALESCE(bf.name, ''), COALESCE(d.document_type, ''), COALESCE(d.document_number, ''),
		COALESCE(u.name, '')
	FROM movements m
	JOIN products p ON p.id = m.product_id
	JOIN branches b ON b.id = m.branch_id
	LEFT JOIN branches bf ON bf.id = m.branch_from_id
	LEFT JOIN documents d ON d.id = m.document_id
	LEFT JOIN users u ON u.id = m.user_id`

func scanMovementDetail(row pgx.Row) (*repository.MovementDetail, error) {
	var d repository.MovementDetail
	var branchFrom, direction, documentID, userID *string
	var price decimal.NullDecimal
	err := row.Scan(&d.ID, &d.BusinessID, &d.MovementType, &d.ProductID, &d.BranchID, &branchFrom,
		&d.Quantity, &direction, &price, &documentID, &userID, &d.CreatedAt,
		&d.ProductName, &d.BranchName, &d.BranchFromName, &d.DocumentType, &d.DocumentNumber, &d.UserName)
	if err != nil {
		return nil, err
	}
	d.BranchFromID = deref(branchFrom)
	d.Direction = deref(direction)
	d.DocumentID = deref(documentID)
	d.UserID = deref(userID)
	if price.Valid {
		p := price.Decimal
		d.UnitPrice = &p
	}
	return &d, nil
}

// GetByID obtiene el movimiento con nombres resueltos.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*repository.MovementDetail, error) {
	d, err := scanMovementDetail(r.db.QueryRow(ctx, movementDetailSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return d, nil
}

// List historial más reciente primero. BranchID coincide con destino u origen.
func (r *MovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]repository.MovementDetail, error) {
	query := movementDetailSelect + `
		WHERE m.business_id = $1
		  AND ($2 = '' OR m.product_id::text = $2)
		  AND ($3 = '' OR m.branch_id::text = $3 OR m.branch_from_id::text = $3)
		  AND ($4 = '' OR m.movement_type = $4)
		ORDER BY m.created_at DESC, m.id
		LIMIT $5 OFFSET $6`
	rows, err := r.db.Query(ctx, query, f.BusinessID, f.ProductID, f.BranchID, f.MovementType, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []repository.MovementDetail
	for rows.Next() {
		d, err := scanMovementDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, *d)
	}
	return list, rows.Err()
}
