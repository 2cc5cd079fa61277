package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo conteos agregados para el tablero.
type DashboardRepo struct {
	db Querier
}

func NewDashboardRepository(db Querier) *DashboardRepo {
	return &DashboardRepo{db: db}
}

func (r *DashboardRepo) count(ctx context.Context, what, query string, args ...any) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count %s: %w", what, err)
	}
	return n, nil
}

// CountBranches sucursales de la empresa; con branchID cuenta solo esa (0 o 1).
func (r *DashboardRepo) CountBranches(ctx context.Context, businessID, branchID string) (int, error) {
	return r.count(ctx, "branches",
		`SELECT COUNT(*) FROM branches WHERE business_id = $1 AND ($2 = '' OR id::text = $2)`,
		businessID, branchID)
}

// CountProducts productos de la empresa; con branchID solo los que tienen stock en ella.
func (r *DashboardRepo) CountProducts(ctx context.Context, businessID, branchID string) (int, error) {
	if branchID == "" {
		return r.count(ctx, "products", `SELECT COUNT(*) FROM products WHERE business_id = $1`, businessID)
	}
	return r.count(ctx, "products", `
		SELECT COUNT(DISTINCT p.id) FROM products p
		JOIN stocks s ON s.product_id = p.id
		WHERE p.business_id = $1 AND s.branch_id::text = $2`, businessID, branchID)
}

func (r *DashboardRepo) CountDocuments(ctx context.Context, businessID string) (int, error) {
	return r.count(ctx, "documents", `SELECT COUNT(*) FROM documents WHERE business_id = $1`, businessID)
}
