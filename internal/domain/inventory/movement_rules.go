// Package inventory contiene las reglas puras del procesador de movimientos:
// qué movimiento está permitido y cómo afecta las filas de stock.
// No accede a la base de datos; el caso de uso le entrega las referencias ya cargadas.
package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

// MovementRequest movimiento propuesto, ya tipado.
type MovementRequest struct {
	MovementType string
	ProductID    string
	BranchID     string
	BranchFromID string
	DocumentID   string
	Quantity     int64
	UnitPrice    *decimal.Decimal
	Direction    string
}

// References entidades referenciadas por el request. Un puntero nil con ID no vacío
// significa que la referencia no existe.
type References struct {
	Product    *entity.Product
	Branch     *entity.Branch
	BranchFrom *entity.Branch
	Document   *entity.Document
}

// Rule regla de validación; devuelve el primer error encontrado o nil.
type Rule func(actor entity.Actor, req MovementRequest, refs References) error

// rules orden canónico de evaluación (fail-fast). La suficiencia de stock
// no está aquí: se evalúa bajo bloqueo dentro de la transacción (ApplyEffect).
var rules = []Rule{
	checkTenant,
	checkPermission,
	checkDocument,
	checkUnitPrice,
	checkTransfer,
}

// allowedDocumentTypes tipos de documento aceptados por tipo de movimiento.
var allowedDocumentTypes = map[string][]string{
	entity.MovementTypeSale:       {entity.DocumentTypeInvoice, entity.DocumentTypeCreditNote},
	entity.MovementTypePurchase:   {entity.DocumentTypePurchaseOrder, entity.DocumentTypeInvoice},
	entity.MovementTypeAdjustment: {entity.DocumentTypeAdjustmentNote},
	entity.MovementTypeTransfer:   {entity.DocumentTypeTransferNote},
}

var movementLabels = map[string]string{
	entity.MovementTypePurchase:   "compras",
	entity.MovementTypeSale:       "ventas",
	entity.MovementTypeAdjustment: "ajustes",
	entity.MovementTypeTransfer:   "transferencias",
}

var documentLabels = map[string]string{
	entity.DocumentTypeInvoice:        "factura",
	entity.DocumentTypePurchaseOrder:  "orden de compra",
	entity.DocumentTypeAdjustmentNote: "nota de ajuste",
	entity.DocumentTypeTransferNote:   "nota de transferencia",
	entity.DocumentTypeCreditNote:     "nota crédito",
}

// AllowedDocumentTypes devuelve los tipos de documento válidos para movementType.
func AllowedDocumentTypes(movementType string) []string {
	return allowedDocumentTypes[movementType]
}

// ValidateShape regla 1: tipo conocido, cantidad positiva, dirección coherente y
// referencias obligatorias presentes. Se evalúa antes de cargar nada de la base.
func ValidateShape(req MovementRequest) error {
	if !entity.IsValidMovementType(req.MovementType) {
		return domain.NewValidationError("movement_type", "tipo de movimiento inválido")
	}
	if req.Quantity <= 0 {
		return domain.NewValidationError("quantity", "la cantidad debe ser un entero positivo")
	}
	if req.MovementType == entity.MovementTypeAdjustment {
		if req.Direction != entity.AdjustmentIncrease && req.Direction != entity.AdjustmentDecrease {
			return domain.NewValidationError("direction", "los ajustes requieren dirección increase o decrease")
		}
	} else if req.Direction != "" {
		return domain.NewValidationError("direction", "la dirección solo aplica a ajustes")
	}
	if req.ProductID == "" {
		return domain.NewValidationError("product_id", "el producto es requerido")
	}
	if req.BranchID == "" {
		return domain.NewValidationError("branch_id", "la sucursal es requerida")
	}
	return nil
}

// Validate evalúa las reglas 2 a 5 en orden y devuelve la primera violación.
func Validate(actor entity.Actor, req MovementRequest, refs References) error {
	for _, rule := range rules {
		if err := rule(actor, req, refs); err != nil {
			return err
		}
	}
	return nil
}

// checkTenant regla 2: todas las referencias pertenecen a la empresa del actor.
// Una referencia ajena se reporta igual que una inexistente.
func checkTenant(actor entity.Actor, req MovementRequest, refs References) error {
	if refs.Product == nil || refs.Product.BusinessID != actor.BusinessID {
		return domain.NewNotFoundError("producto", "product_id")
	}
	if refs.Branch == nil || refs.Branch.BusinessID != actor.BusinessID {
		return domain.NewNotFoundError("sucursal", "branch_id")
	}
	if req.BranchFromID != "" && (refs.BranchFrom == nil || refs.BranchFrom.BusinessID != actor.BusinessID) {
		return domain.NewNotFoundError("sucursal de origen", "branch_from_id")
	}
	if req.DocumentID != "" && (refs.Document == nil || refs.Document.BusinessID != actor.BusinessID) {
		return domain.NewNotFoundError("documento", "document_id")
	}
	return nil
}

// checkPermission regla 3: capacidad por tipo de movimiento. Un usuario con rol "user"
// además debe estar asignado a alguna de las sucursales involucradas.
func checkPermission(actor entity.Actor, req MovementRequest, _ References) error {
	var allowed bool
	var capability string
	switch req.MovementType {
	case entity.MovementTypePurchase:
		allowed, capability = actor.CanPurchase, "can_purchase"
	case entity.MovementTypeSale:
		allowed, capability = actor.CanSale, "can_sale"
	case entity.MovementTypeAdjustment:
		allowed, capability = actor.CanAdjust, "can_adjust"
	case entity.MovementTypeTransfer:
		allowed, capability = actor.CanTransfer, "can_transfer"
	}
	if !allowed {
		return domain.NewPermissionError(capability, "No tienes permiso para registrar "+movementLabels[req.MovementType])
	}
	if actor.IsAdmin() {
		return nil
	}
	if actor.BranchID == req.BranchID || (req.BranchFromID != "" && actor.BranchID == req.BranchFromID) {
		return nil
	}
	return domain.NewPermissionError("branch", "No tienes permiso para operar en esta sucursal")
}

// checkDocument regla 4: documento obligatorio y de un tipo compatible con el movimiento.
func checkDocument(_ entity.Actor, req MovementRequest, refs References) error {
	if req.DocumentID == "" {
		return domain.NewValidationError("document_id", "el documento es requerido para "+movementLabels[req.MovementType])
	}
	allowed := allowedDocumentTypes[req.MovementType]
	for _, t := range allowed {
		if refs.Document.DocumentType == t {
			return nil
		}
	}
	return domain.NewValidationError("document_id",
		"El documento debe ser de tipo "+joinLabels(allowed)+" para "+movementLabels[req.MovementType])
}

// checkUnitPrice precio unitario obligatorio (>= 0) en compras y ventas; no aplica a ajustes ni transferencias.
func checkUnitPrice(_ entity.Actor, req MovementRequest, _ References) error {
	switch req.MovementType {
	case entity.MovementTypePurchase, entity.MovementTypeSale:
		if req.UnitPrice == nil {
			return domain.NewValidationError("unit_price", "El precio unitario es requerido para "+movementLabels[req.MovementType])
		}
		if req.UnitPrice.IsNegative() {
			return domain.NewValidationError("unit_price", "El precio unitario no puede ser negativo")
		}
	default:
		if req.UnitPrice != nil {
			return domain.NewValidationError("unit_price", "El precio unitario no aplica para "+movementLabels[req.MovementType])
		}
	}
	return nil
}

// checkTransfer regla 5: origen presente y distinto del destino; solo en transferencias.
func checkTransfer(_ entity.Actor, req MovementRequest, _ References) error {
	if req.MovementType != entity.MovementTypeTransfer {
		if req.BranchFromID != "" {
			return domain.NewValidationError("branch_from_id", "la sucursal de origen solo aplica a transferencias")
		}
		return nil
	}
	if req.BranchFromID == "" {
		return domain.NewValidationError("branch_from_id", "la sucursal de origen es requerida para transferencias")
	}
	if req.BranchFromID == req.BranchID {
		return domain.NewValidationError("branch_from_id", "la sucursal de origen debe ser distinta de la de destino")
	}
	return nil
}

func joinLabels(types []string) string {
	out := ""
	for i, t := range types {
		switch {
		case i == 0:
		case i == len(types)-1:
			out += " o "
		default:
			out += ", "
		}
		out += documentLabels[t]
	}
	return out
}
