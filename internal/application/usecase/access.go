package usecase

import (
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// requireAdmin las mutaciones de catálogo (sucursales, categorías, productos, proveedores,
// documentos) y la gestión de usuarios son exclusivas del rol admin.
func requireAdmin(actor entity.Actor, action string) error {
	if actor.IsAdmin() {
		return nil
	}
	return domain.NewPermissionError("admin", "Solo un administrador puede "+action)
}
