package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

func TestExportStock_FilasYCabecera(t *testing.T) {
	rows := []repository.StockDetail{
		{Stock: entity.Stock{Quantity: 2, MinimumStock: 5}, ProductName: "Arroz", BranchName: "Centro"},
		{Stock: entity.Stock{Quantity: 5, MinimumStock: 5}, ProductName: "Frijol", BranchName: "Norte"},
	}

	out, err := NewExcelStockExporter().ExportStock(rows)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(stockSheet)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, stockHeadings, got[0])
	assert.Equal(t, []string{"Arroz", "Centro", "2", "5", "Sí"}, got[1])
	assert.Equal(t, []string{"Frijol", "Norte", "5", "5", "No"}, got[2])
}

func TestExportStock_Vacio(t *testing.T) {
	out, err := NewExcelStockExporter().ExportStock(nil)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows(stockSheet)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}
