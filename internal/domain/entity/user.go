package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User representa un usuario del sistema (pertenece a una Business).
// Rol "user" requiere sucursal asignada; rol "admin" no la tiene.
type User struct {
	ID           string
	BusinessID   string
	BranchID     string
	Name         string
	Email        string
	Username     string
	PasswordHash string // bcrypt hash
	Role         string
	CanPurchase  bool
	CanSale      bool
	CanAdjust    bool
	CanTransfer  bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Actor identidad autenticada que ejecuta una operación. Se pasa explícitamente
// a cada caso de uso; nunca se guarda en estado global.
type Actor struct {
	UserID      string
	BusinessID  string
	BranchID    string
	Role        string
	CanPurchase bool
	CanSale     bool
	CanAdjust   bool
	CanTransfer bool
}

// ActorFromUser construye el Actor a partir del usuario persistido.
func ActorFromUser(u *User) Actor {
	return Actor{
		UserID:      u.ID,
		BusinessID:  u.BusinessID,
		BranchID:    u.BranchID,
		Role:        u.Role,
		CanPurchase: u.CanPurchase,
		CanSale:     u.CanSale,
		CanAdjust:   u.CanAdjust,
		CanTransfer: u.CanTransfer,
	}
}

// IsAdmin indica si el actor tiene rol admin.
func (a Actor) IsAdmin() bool { return a.Role == RoleAdmin }

// CanAccessBranch admin ve todas las sucursales de su empresa; user solo la suya.
func (a Actor) CanAccessBranch(branchID string) bool {
	return a.IsAdmin() || a.BranchID == branchID
}
