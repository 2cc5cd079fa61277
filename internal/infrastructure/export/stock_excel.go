package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

const stockSheet = "Stock"

var stockHeadings = []string{"Producto", "Sucursal", "Cantidad", "Stock mínimo", "Stock bajo"}

var _ inventory.StockExporter = (*ExcelStockExporter)(nil)

// ExcelStockExporter serializa el listado de stock como hoja xlsx.
type ExcelStockExporter struct{}

func NewExcelStockExporter() *ExcelStockExporter { return &ExcelStockExporter{} }

// ExportStock una fila por (producto, sucursal); las filas bajo el mínimo se resaltan.
func (e *ExcelStockExporter) ExportStock(rows []repository.StockDetail) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", stockSheet); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}

	headStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo cabecera: %w", err)
	}
	lowStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{"F8D7DA"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("excel: estilo stock bajo: %w", err)
	}

	for i, h := range stockHeadings {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(stockSheet, cell, h); err != nil {
			return nil, err
		}
	}
	lastCol, _ := excelize.ColumnNumberToName(len(stockHeadings))
	if err := f.SetCellStyle(stockSheet, "A1", lastCol+"1", headStyle); err != nil {
		return nil, err
	}

	for i, r := range rows {
		line := i + 2
		low := "No"
		if r.IsLowStock() {
			low = "Sí"
		}
		values := []any{r.ProductName, r.BranchName, r.Quantity, r.MinimumStock, low}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, line)
			if err := f.SetCellValue(stockSheet, cell, v); err != nil {
				return nil, err
			}
		}
		if r.IsLowStock() {
			if err := f.SetCellStyle(stockSheet, fmt.Sprintf("A%d", line), fmt.Sprintf("%s%d", lastCol, line), lowStyle); err != nil {
				return nil, err
			}
		}
	}
	_ = f.SetColWidth(stockSheet, "A", "B", 30)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
