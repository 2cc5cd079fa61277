package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0", formatMoney("0"))
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-1.500", formatMoney("-1500"))
}

func TestRenderMovementVoucher_GeneraPDF(t *testing.T) {
	price := decimal.NewFromInt(2500)
	mov := &repository.MovementDetail{
		Movement: entity.Movement{
			ID: "8f0e2c7a-0000-4000-8000-000000000001", MovementType: entity.MovementTypeSale,
			Quantity: 3, UnitPrice: &price, CreatedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		},
		ProductName: "Arroz", BranchName: "Centro",
		DocumentType: entity.DocumentTypeInvoice, DocumentNumber: "F-001", UserName: "Ana",
	}
	out, err := NewMarotoVoucherGenerator().RenderMovementVoucher(&entity.Business{Name: "Tienda"}, mov)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))
}

func TestRenderMovementVoucher_TrasladoSinPrecio(t *testing.T) {
	mov := &repository.MovementDetail{
		Movement:       entity.Movement{ID: "m2", MovementType: entity.MovementTypeTransfer, Quantity: 1},
		ProductName:    "Arroz",
		BranchName:     "Norte",
		BranchFromName: "Centro",
	}
	out, err := NewMarotoVoucherGenerator().RenderMovementVoucher(&entity.Business{Name: "Tienda"}, mov)
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}

func TestRenderMovementVoucher_SinEmpresa(t *testing.T) {
	_, err := NewMarotoVoucherGenerator().RenderMovementVoucher(nil, &repository.MovementDetail{})
	assert.Error(t, err)
}
