package entity

// Category agrupa productos de una empresa.
type Category struct {
	ID          string
	BusinessID  string
	Name        string
	Description string
}
