package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity datos del usuario que viajan en el token.
// Los flags de capacidad se toman al emitir: un cambio de permisos aplica al siguiente login.
type Identity struct {
	UserID      string
	BusinessID  string
	BranchID    string
	Role        string
	CanPurchase bool
	CanSale     bool
	CanAdjust   bool
	CanTransfer bool
}

// Claims incluye los claims estándar JWT más los campos propios de la aplicación.
// ID (jti) identifica el token para poder revocarlo en logout.
type Claims struct {
	jwt.RegisteredClaims
	UserID      string `json:"user_id"`
	BusinessID  string `json:"business_id"`
	BranchID    string `json:"branch_id,omitempty"`
	Role        string `json:"role"` // "admin" | "user"
	CanPurchase bool   `json:"can_purchase"`
	CanSale     bool   `json:"can_sale"`
	CanAdjust   bool   `json:"can_adjust"`
	CanTransfer bool   `json:"can_transfer"`
}

// Identity reconstruye la identidad a partir de los claims.
func (c *Claims) Identity() Identity {
	return Identity{
		UserID:      c.UserID,
		BusinessID:  c.BusinessID,
		BranchID:    c.BranchID,
		Role:        c.Role,
		CanPurchase: c.CanPurchase,
		CanSale:     c.CanSale,
		CanAdjust:   c.CanAdjust,
		CanTransfer: c.CanTransfer,
	}
}

// Generate genera un token JWT firmado (HS256) y devuelve también su expiración.
func Generate(secret, issuer string, expMinutes int, id Identity) (string, time.Time, error) {
	if secret == "" {
		return "", time.Time{}, fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expMinutes) * time.Minute)
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Issuer:    issuer,
			Subject:   id.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:      id.UserID,
		BusinessID:  id.BusinessID,
		BranchID:    id.BranchID,
		Role:        id.Role,
		CanPurchase: id.CanPurchase,
		CanSale:     id.CanSale,
		CanAdjust:   id.CanAdjust,
		CanTransfer: id.CanTransfer,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return claims, nil
}
