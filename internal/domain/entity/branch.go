package entity

import "time"

// Branch representa una sucursal de la empresa; cada una lleva su propio libro de stock.
// Es también la unidad de visibilidad para usuarios con rol "user".
type Branch struct {
	ID         string
	BusinessID string
	Name       string
	Address    string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
