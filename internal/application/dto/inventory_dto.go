package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
// BranchID es la sucursal destino (o la afectada en compra/venta/ajuste).
type RegisterMovementRequest struct {
	MovementType string           `json:"movement_type" validate:"required,oneof=purchase sale adjustment transfer"`
	ProductID    string           `json:"product_id" validate:"required,uuid"`
	BranchID     string           `json:"branch_id" validate:"required,uuid"`
	BranchFromID string           `json:"branch_from_id,omitempty" validate:"omitempty,uuid"`
	DocumentID   string           `json:"document_id,omitempty" validate:"omitempty,uuid"`
	Quantity     int64            `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	Direction    string           `json:"direction,omitempty" validate:"omitempty,oneof=increase decrease"`
}

// ProductSummary resumen de producto anidado en respuestas.
type ProductSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// BranchSummary resumen de sucursal anidado en respuestas.
type BranchSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// DocumentSummary resumen de documento anidado en respuestas.
type DocumentSummary struct {
	ID             string `json:"id"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
}

// StockLevelDTO cantidad resultante de una fila de stock tocada por un movimiento.
type StockLevelDTO struct {
	BranchID     string `json:"branch_id"`
	Quantity     int64  `json:"quantity"`
	MinimumStock int64  `json:"minimum_stock"`
	IsLowStock   bool   `json:"is_low_stock"`
}

// MovementResponse salida de un movimiento registrado o consultado.
type MovementResponse struct {
	ID           string           `json:"id"`
	MovementType string           `json:"movement_type"`
	Product      ProductSummary   `json:"product"`
	Branch       BranchSummary    `json:"branch"`
	BranchFrom   *BranchSummary   `json:"branch_from,omitempty"`
	Document     *DocumentSummary `json:"document,omitempty"`
	Quantity     int64            `json:"quantity"`
	Direction    string           `json:"direction,omitempty"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
	UserID       string           `json:"user_id"`
	UserName     string           `json:"user_name,omitempty"`
	CreatedAt    time.Time        `json:"created_at"`
	StockLevels  []StockLevelDTO  `json:"stock_levels,omitempty"`
}

// MovementListResponse lista paginada de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// MovementQuery filtros de GET /api/movements.
type MovementQuery struct {
	ProductID    string `query:"product_id" validate:"omitempty,uuid"`
	BranchID     string `query:"branch_id" validate:"omitempty,uuid"`
	MovementType string `query:"movement_type" validate:"omitempty,oneof=purchase sale adjustment transfer"`
	PageRequest
}

// StockQuery filtros de GET /api/stocks.
type StockQuery struct {
	ProductID   string `query:"product_id" validate:"omitempty,uuid"`
	BranchID    string `query:"branch_id" validate:"omitempty,uuid"`
	ProductName string `query:"product_name" validate:"omitempty,max=200"`
	LowOnly     bool   `query:"low_only"`
	PageRequest
}

// StockResponse fila de stock con su indicador de stock bajo.
type StockResponse struct {
	ID           string         `json:"id"`
	Product      ProductSummary `json:"product"`
	Branch       BranchSummary  `json:"branch"`
	Quantity     int64          `json:"quantity"`
	MinimumStock int64          `json:"minimum_stock"`
	IsLowStock   bool           `json:"is_low_stock"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// StockListResponse lista paginada de stock.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// SetMinimumStockRequest body para PUT /api/stocks/minimum.
type SetMinimumStockRequest struct {
	ProductID    string `json:"product_id" validate:"required,uuid"`
	BranchID     string `json:"branch_id" validate:"required,uuid"`
	MinimumStock int64  `json:"minimum_stock" validate:"min=0"`
}
