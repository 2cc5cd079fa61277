package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/control-stock-api/internal/application/analytics"
)

// DashboardHandler maneja el endpoint del tablero.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Get devuelve conteos de sucursales, productos, documentos, filas en stock bajo y los
// últimos movimientos. role=user recibe la vista de su sucursal.
// GET /api/dashboard-data
//
// @Summary      Datos del tablero
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardDTO
// @Router       /api/dashboard-data [get]
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	out, err := h.uc.GetDashboard(c.UserContext(), actor)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
