package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/jhoicas/control-stock-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/control-stock-api/pkg/jwt"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testBusinessID = "00000000-0000-0000-0000-000000000002"
	testBranchID   = "00000000-0000-0000-0000-000000000003"
	testIssuer     = "control-stock-test"
	testExpMin     = 60
)

type fakeDenylist struct {
	revoked map[string]bool
	err     error
}

func (d *fakeDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	return d.revoked[jti], nil
}

func (d *fakeDenylist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	if d.revoked == nil {
		d.revoked = map[string]bool{}
	}
	d.revoked[jti] = true
	return nil
}

// buildTestApp app mínima: AuthMiddleware (+ RequireAdmin si adminOnly) y un handler que
// devuelve el actor cargado en locals.
func buildTestApp(denylist *fakeDenylist, adminOnly bool) *fiber.App {
	app := apphttp.NewApp("test", logger.NewNop())
	handlers := []fiber.Handler{apphttp.AuthMiddleware(testJWTSecret, denylist)}
	if adminOnly {
		handlers = append(handlers, apphttp.RequireAdmin())
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		actor, _ := apphttp.GetActor(c)
		return c.JSON(fiber.Map{"user_id": actor.UserID, "role": actor.Role, "branch_id": actor.BranchID})
	})
	app.Get("/protected", handlers...)
	return app
}

func tokenFor(t *testing.T, role string) (string, string) {
	t.Helper()
	tok, _, err := pkgjwt.Generate(testJWTSecret, testIssuer, testExpMin, pkgjwt.Identity{
		UserID:     testUserID,
		BusinessID: testBusinessID,
		BranchID:   testBranchID,
		Role:       role,
		CanSale:    true,
	})
	require.NoError(t, err)
	claims, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	return "Bearer " + tok, claims.ID
}

func doGet(t *testing.T, app *fiber.App, authHeader string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &body), string(raw))
	}
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// AuthMiddleware
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthMiddleware_TokenValidoCargaActor(t *testing.T) {
	app := buildTestApp(&fakeDenylist{}, false)
	header, _ := tokenFor(t, "user")

	status, body := doGet(t, app, header)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, testUserID, body["user_id"])
	assert.Equal(t, "user", body["role"])
	assert.Equal(t, testBranchID, body["branch_id"])
}

func TestAuthMiddleware_SinToken(t *testing.T) {
	status, body := doGet(t, buildTestApp(&fakeDenylist{}, false), "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "MISSING_TOKEN", body["code"])
}

func TestAuthMiddleware_FormatoInvalido(t *testing.T) {
	header, _ := tokenFor(t, "admin")
	app := buildTestApp(&fakeDenylist{}, false)

	for _, h := range []string{"Token abc", header[len("Bearer "):], "Bearer"} {
		status, _ := doGet(t, app, h)
		assert.Equal(t, fiber.StatusUnauthorized, status, h)
	}
}

func TestAuthMiddleware_FirmaIncorrecta(t *testing.T) {
	tok, _, err := pkgjwt.Generate("otro-secreto", testIssuer, testExpMin, pkgjwt.Identity{UserID: testUserID, BusinessID: testBusinessID, Role: "admin"})
	require.NoError(t, err)

	status, body := doGet(t, buildTestApp(&fakeDenylist{}, false), "Bearer "+tok)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_TOKEN", body["code"])
}

func TestAuthMiddleware_TokenRevocado(t *testing.T) {
	header, jti := tokenFor(t, "admin")
	denylist := &fakeDenylist{revoked: map[string]bool{jti: true}}

	status, body := doGet(t, buildTestApp(denylist, false), header)

	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "REVOKED_TOKEN", body["code"])
}

func TestAuthMiddleware_DenylistNoDisponible(t *testing.T) {
	header, _ := tokenFor(t, "admin")
	denylist := &fakeDenylist{err: errors.New("redis caído")}

	status, _ := doGet(t, buildTestApp(denylist, false), header)

	assert.Equal(t, fiber.StatusServiceUnavailable, status)
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAdmin
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAdmin(t *testing.T) {
	app := buildTestApp(&fakeDenylist{}, true)

	adminHeader, _ := tokenFor(t, "admin")
	status, _ := doGet(t, app, adminHeader)
	assert.Equal(t, fiber.StatusOK, status)

	userHeader, _ := tokenFor(t, "user")
	status, body := doGet(t, app, userHeader)
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, "FORBIDDEN", body["code"])
}
