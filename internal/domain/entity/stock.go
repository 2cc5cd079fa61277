package entity

import "time"

// Stock representa la cantidad disponible de un producto en una sucursal.
// (ProductID, BranchID) es único; la fila se crea al primer movimiento que la referencia.
type Stock struct {
	ID           string
	ProductID    string
	BranchID     string
	Quantity     int64
	MinimumStock int64
	UpdatedAt    time.Time
}

// IsLowStock stock bajo cuando la cantidad cae por debajo del mínimo (estricto).
func (s *Stock) IsLowStock() bool {
	return s.Quantity < s.MinimumStock
}
