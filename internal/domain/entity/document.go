package entity

import "time"

// Tipos de documento de negocio.
const (
	DocumentTypeInvoice        = "invoice"
	DocumentTypePurchaseOrder  = "purchase_order"
	DocumentTypeAdjustmentNote = "adjustment_note"
	DocumentTypeTransferNote   = "transfer_note"
	DocumentTypeCreditNote     = "credit_note"
)

// DocumentTypes lista los tipos válidos en el orden en que se muestran.
var DocumentTypes = []string{
	DocumentTypeInvoice,
	DocumentTypePurchaseOrder,
	DocumentTypeAdjustmentNote,
	DocumentTypeTransferNote,
	DocumentTypeCreditNote,
}

// Document documento que respalda un movimiento. (tipo, número) es único por empresa.
type Document struct {
	ID             string
	BusinessID     string
	DocumentType   string
	DocumentNumber string
	CreatedBy      string // UserID
	CreatedAt      time.Time
}

// IsValidDocumentType indica si t es uno de los tipos conocidos.
func IsValidDocumentType(t string) bool {
	for _, dt := range DocumentTypes {
		if dt == t {
			return true
		}
	}
	return false
}
