package dto

import "time"

// UpdateBusinessRequest entrada para actualizar la empresa (campos opcionales).
type UpdateBusinessRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	Phone   *string `json:"phone" validate:"omitempty,max=20"`
	Notes   *string `json:"notes"`
}

// BusinessResponse salida de una empresa.
type BusinessResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
}
