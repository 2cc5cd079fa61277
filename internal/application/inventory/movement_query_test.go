package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

type fakeBusinessRepo struct{}

func (fakeBusinessRepo) GetByID(_ context.Context, id string) (*entity.Business, error) {
	return &entity.Business{ID: id, Name: "Tienda Uno"}, nil
}

type fakeVoucher struct{ got *repository.MovementDetail }

func (f *fakeVoucher) RenderMovementVoucher(_ *entity.Business, d *repository.MovementDetail) ([]byte, error) {
	f.got = d
	return []byte("%PDF"), nil
}

func TestMovementQuery_HistorialYAlcance(t *testing.T) {
	uc, s := setup(t)
	s.SetStock(p1, br2, 10, 0)
	first, err := uc.RegisterMovement(context.Background(), admin(), sale(1))
	require.NoError(t, err)
	_, err = uc.RegisterMovement(context.Background(), admin(), transfer(br2, br1, 2))
	require.NoError(t, err)
	_, err = uc.RegisterMovement(context.Background(), admin(), purchase(br1, 3))
	require.NoError(t, err)

	voucher := &fakeVoucher{}
	q := inventory.NewMovementQueryUseCase(s.MovementRepo(), fakeBusinessRepo{}, voucher)

	all, err := q.ListMovements(context.Background(), admin(), dto.MovementQuery{})
	require.NoError(t, err)
	require.Len(t, all.Items, 3)
	assert.Equal(t, entity.MovementTypePurchase, all.Items[0].MovementType, "más reciente primero")

	user := entity.Actor{UserID: "U2", BusinessID: b1, BranchID: br2, Role: entity.RoleUser}
	own, err := q.ListMovements(context.Background(), user, dto.MovementQuery{})
	require.NoError(t, err)
	require.Len(t, own.Items, 1, "solo la transferencia toca Br2")
	assert.Equal(t, "Norte", own.Items[0].BranchFrom.Name)

	_, err = q.GetMovement(context.Background(), user, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	other := entity.Actor{UserID: "X", BusinessID: b2, Role: entity.RoleAdmin}
	_, err = q.GetMovement(context.Background(), other, first.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	pdf, err := q.MovementVoucherPDF(context.Background(), admin(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), pdf)
	require.NotNil(t, voucher.got)
	assert.Equal(t, "D-inv", voucher.got.DocumentNumber)
}
