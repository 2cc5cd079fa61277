package entity

import "time"

// Business representa el tenant raíz del sistema. Sucursales, productos, categorías,
// documentos, proveedores y usuarios referencian exactamente una Business.
type Business struct {
	ID        string
	Name      string
	Address   string
	Phone     string
	Notes     string
	CreatedAt time.Time
}
