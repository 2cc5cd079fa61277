package cache

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
)

func newTestClient(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return client, mr
}

func TestTokenDenylist_RevocaHastaExpirar(t *testing.T) {
	client, mr := newTestClient(t)
	d := NewTokenDenylist(client)
	ctx := context.Background()

	revoked, err := d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, d.Revoke(ctx, "jti-1", time.Minute))
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	mr.FastForward(2 * time.Minute)
	revoked, err = d.IsRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestTokenDenylist_TTLNoPositivoNoEscribe(t *testing.T) {
	client, mr := newTestClient(t)
	d := NewTokenDenylist(client)

	require.NoError(t, d.Revoke(context.Background(), "jti-2", 0))
	assert.False(t, mr.Exists(denylistPrefix+"jti-2"))
}

func TestDashboardCache_GetSetEInvalidacion(t *testing.T) {
	client, _ := newTestClient(t)
	c := NewDashboardCache(client)
	ctx := context.Background()

	_, ver, ok, err := c.Get(ctx, "biz-1", "")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "biz-1", "", ver, &dto.DashboardDTO{Branches: 2, Products: 5, LowStock: 1}, time.Minute))
	require.NoError(t, c.Set(ctx, "biz-1", "br-1", ver, &dto.DashboardDTO{BranchID: "br-1", Branches: 1}, time.Minute))

	got, _, ok, err := c.Get(ctx, "biz-1", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.Branches)
	assert.Equal(t, 5, got.Products)

	scoped, _, ok, err := c.Get(ctx, "biz-1", "br-1")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "br-1", scoped.BranchID)

	require.NoError(t, c.InvalidateBusiness(ctx, "biz-1"))
	_, _, ok, err = c.Get(ctx, "biz-1", "")
	require.NoError(t, err)
	assert.False(t, ok)
	_, _, ok, err = c.Get(ctx, "biz-1", "br-1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDashboardCache_InvalidacionEntreGetYSetNoDejaVistaVieja(t *testing.T) {
	client, _ := newTestClient(t)
	c := NewDashboardCache(client)
	ctx := context.Background()

	_, ver, ok, err := c.Get(ctx, "B1", "")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, c.InvalidateBusiness(ctx, "B1"))
	require.NoError(t, c.Set(ctx, "B1", "", ver, &dto.DashboardDTO{Products: 99}, time.Minute))

	_, newVer, ok, err := c.Get(ctx, "B1", "")
	require.NoError(t, err)
	assert.False(t, ok, "la vista construida antes de invalidar no se sirve")
	assert.Equal(t, ver+1, newVer)
}

func TestDashboardCache_InvalidacionAisladaPorEmpresa(t *testing.T) {
	client, _ := newTestClient(t)
	c := NewDashboardCache(client)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "biz-1", "", 0, &dto.DashboardDTO{Products: 1}, time.Minute))
	require.NoError(t, c.Set(ctx, "biz-2", "", 0, &dto.DashboardDTO{Products: 2}, time.Minute))
	require.NoError(t, c.InvalidateBusiness(ctx, "biz-1"))

	got, _, ok, err := c.Get(ctx, "biz-2", "")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, got.Products)
}
