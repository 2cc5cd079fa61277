package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo consultas de lectura sobre stocks (sin bloqueo).
type StockLevelRepo struct {
	db Querier
}

func NewStockLevelRepository(db Querier) *StockLevelRepo {
	return &StockLevelRepo{db: db}
}

// List devuelve niveles de stock con nombres de producto y sucursal. Los filtros vacíos no aplican.
func (r *StockLevelRepo) List(ctx context.Context, f repository.StockFilter) ([]repository.StockDetail, error) {
	query := `
		SELECT s.id, s.product_id, s.branch_id, s.quantity, s.minimum_stock, s.updated_at, p.name, b.name
		FROM stocks s
		JOIN products p ON p.id = s.product_id
		JOIN branches b ON b.id = s.branch_id
		WHERE p.business_id = $1
		  AND ($2 = '' OR s.product_id::text = $2)
		  AND ($3 = '' OR s.branch_id::text = $3)
		  AND ($4 = '' OR p.name ILIKE $4 ESCAPE '\')
		  AND (NOT $5 OR s.quantity < s.minimum_stock)
		ORDER BY p.name, b.name
		LIMIT $6 OFFSET $7`
	rows, err := r.db.Query(ctx, query,
		f.BusinessID, f.ProductID, f.BranchID, containsPattern(f.ProductName), f.LowOnly, f.Limit, f.Offset)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var list []repository.StockDetail
	for rows.Next() {
		var d repository.StockDetail
		if err := rows.Scan(&d.ID, &d.ProductID, &d.BranchID, &d.Quantity, &d.MinimumStock, &d.UpdatedAt,
			&d.ProductName, &d.BranchName); err != nil {
			return nil, fmt.Errorf("scan stock: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

// CountLow cuenta filas bajo el mínimo.
func (r *StockLevelRepo) CountLow(ctx context.Context, businessID, branchID string) (int, error) {
	query := `
		SELECT COUNT(*) FROM stocks s
		JOIN branches b ON b.id = s.branch_id
		WHERE b.business_id = $1 AND ($2 = '' OR s.branch_id::text = $2)
		  AND s.quantity < s.minimum_stock`
	var n int
	if err := r.db.QueryRow(ctx, query, businessID, branchID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}
