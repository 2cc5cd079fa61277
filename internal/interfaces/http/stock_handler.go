package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/inventory"
)

// StockHandler consultas de stock, stock mínimo y exportación.
type StockHandler struct {
	uc *inventory.StockUseCase
}

func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Listar niveles de stock
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Producto"
// @Param        branch_id     query  string  false  "Sucursal"
// @Param        product_name  query  string  false  "Coincidencia parcial del nombre"
// @Param        low_only      query  bool    false  "Solo filas bajo el mínimo"
// @Param        limit         query  int     false  "Límite"  default(20)
// @Param        offset        query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stocks [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var q dto.StockQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	q.DefaultPage()
	out, err := h.uc.ListStock(c.UserContext(), actor, q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ByProductName godoc
// @Summary      Stock por nombre de producto
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        name  path  string  true  "Nombre (parcial)"
// @Success      200   {object}  dto.StockListResponse
// @Router       /api/stocks/by-product-name/{name} [get]
func (h *StockHandler) ByProductName(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.ListStockByProductName(c.UserContext(), actor, c.Params("name"), page)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SetMinimum godoc
// @Summary      Fijar stock mínimo (solo admin)
// @Tags         stocks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SetMinimumStockRequest  true  "product_id, branch_id, minimum_stock"
// @Success      200   {object}  dto.StockResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/stocks/minimum [put]
func (h *StockHandler) SetMinimum(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.SetMinimumStockRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SetMinimumStock(c.UserContext(), actor, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Exportar stock a Excel
// @Tags         stocks
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/stocks/export [get]
func (h *StockHandler) Export(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var q dto.StockQuery
	if err := parseQuery(c, &q); err != nil {
		return err
	}
	data, err := h.uc.ExportStock(c.UserContext(), actor, q)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock.xlsx"`)
	return c.Send(data)
}
