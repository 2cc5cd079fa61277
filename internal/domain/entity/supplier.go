package entity

// Supplier proveedor de una empresa.
type Supplier struct {
	ID         string
	BusinessID string
	Name       string
	Address    string
	Phone      string
}
