package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/control-stock-api/internal/application/analytics"
	"github.com/jhoicas/control-stock-api/internal/application/dto"
)

var _ analytics.DashboardCache = (*DashboardCache)(nil)

// DashboardCache guarda el tablero serializado en JSON. Las claves llevan la versión de la
// empresa; invalidar es incrementar esa versión y las entradas viejas expiran solas.
type DashboardCache struct {
	client *redis.Client
}

func NewDashboardCache(client *redis.Client) *DashboardCache {
	return &DashboardCache{client: client}
}

func versionKey(businessID string) string {
	return "dashboard:" + businessID + ":version"
}

func (c *DashboardCache) version(ctx context.Context, businessID string) (int64, error) {
	ver, err := c.client.Get(ctx, versionKey(businessID)).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("dashboard cache version: %w", err)
	}
	return ver, nil
}

func entryKey(businessID string, version int64, scope string) string {
	if scope == "" {
		scope = "all"
	}
	return fmt.Sprintf("dashboard:%s:v%d:%s", businessID, version, scope)
}

// Get devuelve el tablero cacheado y la versión de empresa leída; ok=false si no hay
// entrada vigente. Esa versión es la que debe pasarse a Set.
func (c *DashboardCache) Get(ctx context.Context, businessID, scope string) (*dto.DashboardDTO, int64, bool, error) {
	ver, err := c.version(ctx, businessID)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.client.Get(ctx, entryKey(businessID, ver, scope)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ver, false, nil
	}
	if err != nil {
		return nil, ver, false, fmt.Errorf("dashboard cache get: %w", err)
	}
	var out dto.DashboardDTO
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, ver, false, fmt.Errorf("dashboard cache decode: %w", err)
	}
	return &out, ver, true, nil
}

// Set guarda el tablero bajo la versión observada antes de construirlo. Si entre tanto
// hubo una invalidación la entrada queda en una versión vieja y nunca se sirve.
func (c *DashboardCache) Set(ctx context.Context, businessID, scope string, version int64, value *dto.DashboardDTO, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("dashboard cache encode: %w", err)
	}
	if err := c.client.Set(ctx, entryKey(businessID, version, scope), raw, ttl).Err(); err != nil {
		return fmt.Errorf("dashboard cache set: %w", err)
	}
	return nil
}

// InvalidateBusiness descarta todas las vistas cacheadas de la empresa.
func (c *DashboardCache) InvalidateBusiness(ctx context.Context, businessID string) error {
	if err := c.client.Incr(ctx, versionKey(businessID)).Err(); err != nil {
		return fmt.Errorf("dashboard cache invalidate: %w", err)
	}
	return nil
}
