package http

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-stock-api/internal/application/auth"
	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/pkg/jwt"
)

// Locals keys del contexto autenticado en Fiber.
const (
	LocalActor     = "actor"
	LocalTokenID   = "token_id"
	LocalExpiresAt = "token_expires_at"
)

// AuthMiddleware valida el Bearer Token JWT, rechaza tokens revocados (logout) y carga el
// actor en c.Locals. denylist puede ser nil (sin revocación).
func AuthMiddleware(jwtSecret string, denylist auth.TokenDenylist) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		if denylist != nil && claims.ID != "" {
			revoked, err := denylist.IsRevoked(c.UserContext(), claims.ID)
			if err != nil {
				return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "AUTH_CHECK_FAILED", Message: "no se pudo verificar la sesión, intente más tarde"})
			}
			if revoked {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "REVOKED_TOKEN", Message: "la sesión fue cerrada"})
			}
		}

		id := claims.Identity()
		c.Locals(LocalActor, entity.Actor{
			UserID:      id.UserID,
			BusinessID:  id.BusinessID,
			BranchID:    id.BranchID,
			Role:        id.Role,
			CanPurchase: id.CanPurchase,
			CanSale:     id.CanSale,
			CanAdjust:   id.CanAdjust,
			CanTransfer: id.CanTransfer,
		})
		c.Locals(LocalTokenID, claims.ID)
		if claims.ExpiresAt != nil {
			c.Locals(LocalExpiresAt, claims.ExpiresAt.Time)
		}
		return c.Next()
	}
}

// GetActor devuelve el actor autenticado (después de AuthMiddleware).
func GetActor(c *fiber.Ctx) (entity.Actor, bool) {
	a, ok := c.Locals(LocalActor).(entity.Actor)
	if !ok || a.UserID == "" || a.BusinessID == "" {
		return entity.Actor{}, false
	}
	return a, true
}

func tokenInfo(c *fiber.Ctx) (string, time.Time) {
	jti, _ := c.Locals(LocalTokenID).(string)
	exp, _ := c.Locals(LocalExpiresAt).(time.Time)
	return jti, exp
}

// RequireAdmin responde 403 si el actor no tiene rol admin. Debe ir después de AuthMiddleware.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, ok := GetActor(c)
		if !ok {
			return unauthorized(c)
		}
		if !actor.IsAdmin() {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "se requiere rol administrador"})
		}
		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
}
