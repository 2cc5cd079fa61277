package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

type fakeExporter struct{ rows []repository.StockDetail }

func (f *fakeExporter) ExportStock(rows []repository.StockDetail) ([]byte, error) {
	f.rows = rows
	return []byte("xlsx"), nil
}

func setupStock(t *testing.T) (*inventory.StockUseCase, *inventorytest.Store, *fakeExporter) {
	t.Helper()
	_, s := setup(t)
	s.AddProduct(&entity.Product{ID: "P2", BusinessID: b1, Name: "Azúcar"})
	s.SetStock("P2", br2, 3, 5)
	s.SetStock("P-B2", "Br-B2", 1, 9)
	exp := &fakeExporter{}
	return inventory.NewStockUseCase(s.StockLevelRepo(), s, s.ProductRepo(), s.BranchRepo(), exp), s, exp
}

func TestListStock_AdminVeTodaLaEmpresa(t *testing.T) {
	uc, _, _ := setupStock(t)

	out, err := uc.ListStock(context.Background(), admin(), dto.StockQuery{})
	require.NoError(t, err)
	require.Len(t, out.Items, 2, "no incluye filas de otra empresa")
	assert.Equal(t, "Arroz", out.Items[0].Product.Name)
	assert.False(t, out.Items[0].IsLowStock)
	assert.Equal(t, "Azúcar", out.Items[1].Product.Name)
	assert.True(t, out.Items[1].IsLowStock)
}

func TestListStock_UsuarioSoloSuSucursal(t *testing.T) {
	uc, _, _ := setupStock(t)
	user := entity.Actor{UserID: "U2", BusinessID: b1, BranchID: br2, Role: entity.RoleUser}

	out, err := uc.ListStock(context.Background(), user, dto.StockQuery{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, br2, out.Items[0].Branch.ID)

	out, err = uc.ListStock(context.Background(), user, dto.StockQuery{BranchID: br1})
	require.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestListStock_Filtros(t *testing.T) {
	uc, _, _ := setupStock(t)

	out, err := uc.ListStock(context.Background(), admin(), dto.StockQuery{LowOnly: true})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, "P2", out.Items[0].Product.ID)

	out, err = uc.ListStockByProductName(context.Background(), admin(), "arr", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, p1, out.Items[0].Product.ID)

	_, err = uc.ListStockByProductName(context.Background(), admin(), "", dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestListStock_LimiteEstrictoDeStockBajo(t *testing.T) {
	uc, s, _ := setupStock(t)
	s.SetStock(p1, br1, 10, 10)

	out, err := uc.ListStock(context.Background(), admin(), dto.StockQuery{ProductID: p1})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.False(t, out.Items[0].IsLowStock, "cantidad igual al mínimo no es stock bajo")
}

func TestSetMinimumStock(t *testing.T) {
	uc, s, _ := setupStock(t)

	resp, err := uc.SetMinimumStock(context.Background(), admin(), dto.SetMinimumStockRequest{ProductID: p1, BranchID: br2, MinimumStock: 4})
	require.NoError(t, err)
	assert.EqualValues(t, 0, resp.Quantity)
	assert.True(t, resp.IsLowStock)
	assert.EqualValues(t, 4, s.Stock(p1, br2).MinimumStock)

	user := entity.Actor{UserID: "U2", BusinessID: b1, BranchID: br2, Role: entity.RoleUser}
	_, err = uc.SetMinimumStock(context.Background(), user, dto.SetMinimumStockRequest{ProductID: p1, BranchID: br2, MinimumStock: 1})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.SetMinimumStock(context.Background(), admin(), dto.SetMinimumStockRequest{ProductID: "P-B2", BranchID: br2, MinimumStock: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportStock_MismoAlcance(t *testing.T) {
	uc, _, exp := setupStock(t)
	user := entity.Actor{UserID: "U2", BusinessID: b1, BranchID: br2, Role: entity.RoleUser}

	data, err := uc.ExportStock(context.Background(), user, dto.StockQuery{})
	require.NoError(t, err)
	assert.Equal(t, []byte("xlsx"), data)
	require.Len(t, exp.rows, 1)
	assert.Equal(t, br2, exp.rows[0].BranchID)
}
