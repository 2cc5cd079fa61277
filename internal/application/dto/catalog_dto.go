package dto

import "time"

// CategoryRequest entrada para crear o actualizar una categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// CategoryResponse salida de una categoría.
type CategoryResponse struct {
	ID          string `json:"id"`
	BusinessID  string `json:"business_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// SupplierRequest entrada para crear o actualizar un proveedor.
type SupplierRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Address string `json:"address" validate:"omitempty,max=300"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID         string `json:"id"`
	BusinessID string `json:"business_id"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
}

// CreateDocumentRequest entrada para crear un documento.
type CreateDocumentRequest struct {
	DocumentType   string `json:"document_type" validate:"required,oneof=invoice purchase_order adjustment_note transfer_note credit_note"`
	DocumentNumber string `json:"document_number" validate:"required,min=1,max=50"`
}

// DocumentResponse salida de un documento.
type DocumentResponse struct {
	ID             string    `json:"id"`
	BusinessID     string    `json:"business_id"`
	DocumentType   string    `json:"document_type"`
	DocumentNumber string    `json:"document_number"`
	CreatedBy      string    `json:"created_by"`
	CreatedAt      time.Time `json:"created_at"`
}
