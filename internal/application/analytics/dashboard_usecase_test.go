package analytics_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock-api/internal/application/analytics"
	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

type fakeCounts struct {
	mu     sync.Mutex
	calls  int
	during func()
}

func (f *fakeCounts) CountBranches(_ context.Context, _, scope string) (int, error) {
	f.mu.Lock()
	f.calls++
	hook := f.during
	f.during = nil
	f.mu.Unlock()
	if hook != nil {
		hook()
	}
	if scope != "" {
		return 1, nil
	}
	return 2, nil
}
func (f *fakeCounts) CountProducts(context.Context, string, string) (int, error) { return 3, nil }
func (f *fakeCounts) CountDocuments(context.Context, string) (int, error)        { return 4, nil }

// memCache replica el esquema de versiones por empresa del cache en Redis.
type memCache struct {
	mu          sync.Mutex
	data        map[string]*dto.DashboardDTO
	versions    map[string]int64
	invalidated []string
}

func memKey(businessID string, ver int64, scope string) string {
	return fmt.Sprintf("%s|%d|%s", businessID, ver, scope)
}

func (c *memCache) Get(_ context.Context, businessID, scope string) (*dto.DashboardDTO, int64, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ver := c.versions[businessID]
	v, ok := c.data[memKey(businessID, ver, scope)]
	return v, ver, ok, nil
}
func (c *memCache) Set(_ context.Context, businessID, scope string, ver int64, v *dto.DashboardDTO, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[memKey(businessID, ver, scope)] = v
	return nil
}
func (c *memCache) InvalidateBusiness(_ context.Context, businessID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.invalidated = append(c.invalidated, businessID)
	c.versions[businessID]++
	return nil
}

func setup() (*analytics.DashboardUseCase, *fakeCounts, *memCache) {
	s := inventorytest.New()
	s.AddProduct(&entity.Product{ID: "P1", BusinessID: "B1", Name: "Arroz"})
	s.AddBranch(&entity.Branch{ID: "Br1", BusinessID: "B1", Name: "Centro"})
	s.AddBranch(&entity.Branch{ID: "Br2", BusinessID: "B1", Name: "Norte"})
	s.SetStock("P1", "Br1", 2, 10)
	s.SetStock("P1", "Br2", 50, 10)
	for i := 0; i < 12; i++ {
		_ = s.MovementRepo().Create(context.Background(), &entity.Movement{
			ID: string(rune('a' + i)), BusinessID: "B1", MovementType: entity.MovementTypePurchase,
			ProductID: "P1", BranchID: "Br2", Quantity: 1,
		})
	}
	counts := &fakeCounts{}
	cache := &memCache{data: map[string]*dto.DashboardDTO{}, versions: map[string]int64{}}
	uc := analytics.NewDashboardUseCase(counts, s.StockLevelRepo(), s.MovementRepo(), cache, time.Minute, logger.NewNop())
	return uc, counts, cache
}

func TestGetDashboard_Admin(t *testing.T) {
	uc, _, _ := setup()
	admin := entity.Actor{UserID: "U1", BusinessID: "B1", Role: entity.RoleAdmin}

	out, err := uc.GetDashboard(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, out.Branches)
	assert.Equal(t, 3, out.Products)
	assert.Equal(t, 4, out.Documents)
	assert.Equal(t, 1, out.LowStock)
	assert.Len(t, out.RecentMovements, 10)
	assert.Equal(t, "l", out.RecentMovements[0].ID, "más reciente primero")
}

func TestGetDashboard_UsuarioAlcanceSucursal(t *testing.T) {
	uc, _, _ := setup()
	user := entity.Actor{UserID: "U2", BusinessID: "B1", BranchID: "Br1", Role: entity.RoleUser}

	out, err := uc.GetDashboard(context.Background(), user)
	require.NoError(t, err)
	assert.Equal(t, "Br1", out.BranchID)
	assert.Equal(t, 1, out.Branches)
	assert.Equal(t, 1, out.LowStock)
	assert.Empty(t, out.RecentMovements)
}

func TestGetDashboard_CacheEInvalidacion(t *testing.T) {
	uc, counts, cache := setup()
	admin := entity.Actor{UserID: "U1", BusinessID: "B1", Role: entity.RoleAdmin}

	_, err := uc.GetDashboard(context.Background(), admin)
	require.NoError(t, err)
	_, err = uc.GetDashboard(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 1, counts.calls, "la segunda lectura sale de cache")

	require.NoError(t, uc.OnMovementRegistered(context.Background(), &entity.Movement{BusinessID: "B1"}, nil))
	assert.Equal(t, []string{"B1"}, cache.invalidated)

	_, err = uc.GetDashboard(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.calls)
}

func TestGetDashboard_MovimientoDuranteLaConstruccionNoQuedaEnCache(t *testing.T) {
	uc, counts, _ := setup()
	admin := entity.Actor{UserID: "U1", BusinessID: "B1", Role: entity.RoleAdmin}
	counts.during = func() {
		_ = uc.OnMovementRegistered(context.Background(), &entity.Movement{BusinessID: "B1"}, nil)
	}

	_, err := uc.GetDashboard(context.Background(), admin)
	require.NoError(t, err)
	_, err = uc.GetDashboard(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.calls, "la vista previa al movimiento no debe servirse")

	_, err = uc.GetDashboard(context.Background(), admin)
	require.NoError(t, err)
	assert.Equal(t, 2, counts.calls)
}
