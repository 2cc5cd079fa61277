package dto

import "time"

// RegisterAdminRequest registro público: crea la empresa y su primer administrador.
type RegisterAdminRequest struct {
	BusinessName string `json:"business_name" validate:"required,min=1,max=200"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Email        string `json:"email" validate:"required,email"`
	Username     string `json:"username" validate:"required,min=3,max=50"`
	Password     string `json:"password" validate:"required,min=8"`
	Password2    string `json:"password2" validate:"required"`
}

// CreateUserRequest entrada para que un admin cree un usuario (password en texto, se hashea en use case).
type CreateUserRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required,oneof=admin user"`
	BranchID    string `json:"branch_id" validate:"omitempty,uuid"`
	CanPurchase bool   `json:"can_purchase"`
	CanSale     bool   `json:"can_sale"`
	CanAdjust   bool   `json:"can_adjust"`
	CanTransfer bool   `json:"can_transfer"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          string    `json:"id"`
	BusinessID  string    `json:"business_id"`
	BranchID    string    `json:"branch_id,omitempty"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Username    string    `json:"username"`
	Role        string    `json:"role"`
	CanPurchase bool      `json:"can_purchase"`
	CanSale     bool      `json:"can_sale"`
	CanAdjust   bool      `json:"can_adjust"`
	CanTransfer bool      `json:"can_transfer"`
	CreatedAt   time.Time `json:"created_at"`
}

// LoginRequest entrada para login: Login acepta email o username.
type LoginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}
