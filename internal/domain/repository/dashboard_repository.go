package repository

import "context"

// DashboardRepository consultas de lectura para el tablero. branchID vacío = toda la empresa.
// Las implementaciones son read-only (no modifican datos).
type DashboardRepository interface {
	CountBranches(ctx context.Context, businessID, branchID string) (int, error)
	CountProducts(ctx context.Context, businessID, branchID string) (int, error)
	CountDocuments(ctx context.Context, businessID string) (int, error)
}
