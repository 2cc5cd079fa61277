// Package pdf genera el comprobante imprimible de un movimiento de inventario.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + dirección  │  Tipo de movimiento + fecha  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SUCURSALES: destino (y origen en traslados)                 │
//	│  TABLA: Cant | Producto | P.Unit | Subtotal                  │
//	│  DOCUMENTO: tipo + número   │   Registrado por               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con el id del movimiento                         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

var movementTitles = map[string]string{
	entity.MovementTypePurchase:   "COMPRA",
	entity.MovementTypeSale:       "VENTA",
	entity.MovementTypeAdjustment: "AJUSTE DE INVENTARIO",
	entity.MovementTypeTransfer:   "TRASLADO ENTRE SUCURSALES",
}

var documentLabels = map[string]string{
	entity.DocumentTypeInvoice:        "Factura",
	entity.DocumentTypePurchaseOrder:  "Orden de compra",
	entity.DocumentTypeAdjustmentNote: "Nota de ajuste",
	entity.DocumentTypeTransferNote:   "Nota de traslado",
	entity.DocumentTypeCreditNote:     "Nota crédito",
}

var _ inventory.VoucherRenderer = (*MarotoVoucherGenerator)(nil)

// MarotoVoucherGenerator implementa inventory.VoucherRenderer usando Maroto v2.
type MarotoVoucherGenerator struct{}

// NewMarotoVoucherGenerator construye el generador.
func NewMarotoVoucherGenerator() *MarotoVoucherGenerator { return &MarotoVoucherGenerator{} }

// RenderMovementVoucher genera el PDF y devuelve sus bytes.
func (g *MarotoVoucherGenerator) RenderMovementVoucher(business *entity.Business, mov *repository.MovementDetail) ([]byte, error) {
	if business == nil || mov == nil {
		return nil, fmt.Errorf("pdf: empresa y movimiento son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de movimiento", true).
		WithAuthor(business.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(business, mov))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(branchesRow(mov))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(detailRow(mov))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(documentRow(mov))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(mov))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: empresa (izq) y tipo de movimiento + fecha (der).
func headerRow(business *entity.Business, mov *repository.MovementDetail) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(business.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Tel: %s", nonEmpty(business.Address, "—"), nonEmpty(business.Phone, "—")),
				props.Text{Size: 8, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(nonEmpty(movementTitles[mov.MovementType], mov.MovementType), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+mov.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func branchesRow(mov *repository.MovementDetail) core.Row {
	label := "Sucursal: " + mov.BranchName
	if mov.MovementType == entity.MovementTypeTransfer {
		label = fmt.Sprintf("Origen: %s   →   Destino: %s", mov.BranchFromName, mov.BranchName)
	}
	if mov.MovementType == entity.MovementTypeAdjustment && mov.Direction != "" {
		dir := "entrada"
		if mov.Direction == entity.AdjustmentDecrease {
			dir = "salida"
		}
		label += "   |   Ajuste de " + dir
	}
	return row.New(10).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Top: 3}),
	))
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Cant.", 2, align.Center),
		h("Producto", 5, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Subtotal", 3, align.Right),
	)
}

func detailRow(mov *repository.MovementDetail) core.Row {
	unit, subtotal := "—", "—"
	if mov.UnitPrice != nil {
		unit = "$" + formatMoney(mov.UnitPrice.StringFixed(0))
		subtotal = "$" + formatMoney(mov.UnitPrice.Mul(decimal.NewFromInt(mov.Quantity)).StringFixed(0))
	}
	return row.New(7).Add(
		col.New(2).Add(text.New(fmt.Sprintf("%d", mov.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
		col.New(5).Add(text.New(mov.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
		col.New(2).Add(text.New(unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		col.New(3).Add(text.New(subtotal, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
	)
}

func documentRow(mov *repository.MovementDetail) core.Row {
	doc := "Sin documento"
	if mov.DocumentNumber != "" {
		doc = nonEmpty(documentLabels[mov.DocumentType], mov.DocumentType) + " N° " + mov.DocumentNumber
	}
	return row.New(10).Add(
		col.New(6).Add(text.New(doc, props.Text{Size: 8, Top: 2})),
		col.New(6).Add(text.New("Registrado por: "+nonEmpty(mov.UserName, "—"), props.Text{
			Size: 8, Align: align.Right, Top: 2, Color: colorGray,
		})),
	)
}

func footerRow(mov *repository.MovementDetail) core.Row {
	return row.New(35).Add(
		col.New(3).Add(code.NewQr(mov.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Movimiento "+mov.ID, props.Text{Size: 7, Top: 4, Left: 3, Color: colorGray}),
			text.New("Los movimientos de inventario son inmutables. Una corrección se registra como un nuevo ajuste.",
				props.Text{Size: 7, Top: 12, Left: 3, Color: colorGray}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if len(s) > 0 && s[0] == '-' {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
