package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo de una empresa.
// El stock no vive aquí: se maneja por sucursal en Stock.
type Product struct {
	ID          string
	BusinessID  string
	CategoryID  string // vacío = sin categoría
	Name        string
	Description string
	Price       decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
