package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/usecase"
)

// CatalogHandler categorías, proveedores y documentos de soporte.
type CatalogHandler struct {
	categories *usecase.CategoryUseCase
	suppliers  *usecase.SupplierUseCase
	documents  *usecase.DocumentUseCase
}

func NewCatalogHandler(categories *usecase.CategoryUseCase, suppliers *usecase.SupplierUseCase, documents *usecase.DocumentUseCase) *CatalogHandler {
	return &CatalogHandler{categories: categories, suppliers: suppliers, documents: documents}
}

func pageFromQuery(c *fiber.Ctx) (dto.PageRequest, error) {
	var page dto.PageRequest
	if err := parseQuery(c, &page); err != nil {
		return page, err
	}
	page.DefaultPage()
	return page, nil
}

// CreateCategory godoc
// @Summary      Crear categoría (solo admin)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CategoryRequest  true  "name, description"
// @Success      201   {object}  dto.CategoryResponse
// @Router       /api/categories [post]
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CategoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.categories.Create(c.UserContext(), actor, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         categories
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}
	out, err := h.categories.List(c.UserContext(), actor, page.Limit, page.Offset)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateCategory godoc
// @Summary      Actualizar categoría (solo admin)
// @Tags         categories
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID de la categoría"
// @Param        body  body  dto.CategoryRequest  true  "name, description"
// @Success      200   {object}  dto.CategoryResponse
// @Router       /api/categories/{id} [put]
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "categoría")
	if err != nil {
		return err
	}
	var in dto.CategoryRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.categories.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteCategory godoc
// @Summary      Eliminar categoría (solo admin)
// @Tags         categories
// @Security     Bearer
// @Param        id  path  string  true  "ID de la categoría"
// @Success      204
// @Router       /api/categories/{id} [delete]
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "categoría")
	if err != nil {
		return err
	}
	if err := h.categories.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSupplier godoc
// @Summary      Crear proveedor (solo admin)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SupplierRequest  true  "name, address, phone"
// @Success      201   {object}  dto.SupplierResponse
// @Router       /api/suppliers [post]
func (h *CatalogHandler) CreateSupplier(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.SupplierRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.suppliers.Create(c.UserContext(), actor, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSuppliers godoc
// @Summary      Listar proveedores
// @Tags         suppliers
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.SupplierResponse
// @Router       /api/suppliers [get]
func (h *CatalogHandler) ListSuppliers(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}
	out, err := h.suppliers.List(c.UserContext(), actor, page.Limit, page.Offset)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateSupplier godoc
// @Summary      Actualizar proveedor (solo admin)
// @Tags         suppliers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del proveedor"
// @Param        body  body  dto.SupplierRequest  true  "name, address, phone"
// @Success      200   {object}  dto.SupplierResponse
// @Router       /api/suppliers/{id} [put]
func (h *CatalogHandler) UpdateSupplier(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "proveedor")
	if err != nil {
		return err
	}
	var in dto.SupplierRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.suppliers.Update(c.UserContext(), actor, id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteSupplier godoc
// @Summary      Eliminar proveedor (solo admin)
// @Tags         suppliers
// @Security     Bearer
// @Param        id  path  string  true  "ID del proveedor"
// @Success      204
// @Router       /api/suppliers/{id} [delete]
func (h *CatalogHandler) DeleteSupplier(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "proveedor")
	if err != nil {
		return err
	}
	if err := h.suppliers.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateDocument godoc
// @Summary      Registrar documento de soporte
// @Tags         documents
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDocumentRequest  true  "document_type, document_number"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/documents [post]
func (h *CatalogHandler) CreateDocument(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	var in dto.CreateDocumentRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.documents.Create(c.UserContext(), actor, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListDocuments godoc
// @Summary      Listar documentos
// @Tags         documents
// @Security     Bearer
// @Produce      json
// @Param        document_type  query  string  false  "Filtrar por tipo"
// @Success      200  {array}  dto.DocumentResponse
// @Router       /api/documents [get]
func (h *CatalogHandler) ListDocuments(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	page, err := pageFromQuery(c)
	if err != nil {
		return err
	}
	out, err := h.documents.List(c.UserContext(), actor, c.Query("document_type"), page.Limit, page.Offset)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteDocument godoc
// @Summary      Eliminar documento (solo admin)
// @Tags         documents
// @Security     Bearer
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Router       /api/documents/{id} [delete]
func (h *CatalogHandler) DeleteDocument(c *fiber.Ctx) error {
	actor, ok := GetActor(c)
	if !ok {
		return unauthorized(c)
	}
	id, err := pathID(c, "documento")
	if err != nil {
		return err
	}
	if err := h.documents.Delete(c.UserContext(), actor, id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
