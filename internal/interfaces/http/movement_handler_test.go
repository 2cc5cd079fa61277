package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/inventory"
	"github.com/jhoicas/control-stock-api/internal/application/inventory/inventorytest"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	apphttp "github.com/jhoicas/control-stock-api/internal/interfaces/http"
	"github.com/jhoicas/control-stock-api/pkg/logger"
)

const (
	productID  = "10000000-0000-0000-0000-000000000001"
	invoiceID  = "20000000-0000-0000-0000-000000000001"
	otherBizID = "00000000-0000-0000-0000-0000000000ff"
)

// movementApp monta POST /movements con el actor fijado en locals (sin JWT).
func movementApp(t *testing.T, actor entity.Actor) (*fiber.App, *inventorytest.Store) {
	t.Helper()
	s := inventorytest.New()
	s.AddProduct(&entity.Product{ID: productID, BusinessID: testBusinessID, Name: "Arroz"})
	s.AddBranch(&entity.Branch{ID: testBranchID, BusinessID: testBusinessID, Name: "Centro"})
	s.AddDocument(&entity.Document{ID: invoiceID, BusinessID: testBusinessID, DocumentType: entity.DocumentTypeInvoice, DocumentNumber: "F-001"})
	s.SetStock(productID, testBranchID, 10, 2)

	register := inventory.NewRegisterMovementUseCase(
		s, s.ProductRepo(), s.BranchRepo(), s.DocumentRepo(),
		inventory.Config{MaxRetries: 1, RetryBackoff: time.Millisecond},
		logger.NewNop(),
	)
	query := inventory.NewMovementQueryUseCase(s.MovementRepo(), nil, nil)
	h := apphttp.NewMovementHandler(register, query)

	app := apphttp.NewApp("test", logger.NewNop())
	app.Post("/movements", func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalActor, actor)
		return c.Next()
	}, h.Register)
	withActor := func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalActor, actor)
		return c.Next()
	}
	app.Get("/movements/:id", withActor, h.GetByID)
	app.Get("/movements/:id/voucher", withActor, h.Voucher)
	return app, s
}

func seller() entity.Actor {
	return entity.Actor{UserID: testUserID, BusinessID: testBusinessID, BranchID: testBranchID, Role: entity.RoleUser, CanSale: true}
}

func postMovement(t *testing.T, app *fiber.App, body string) (int, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/movements", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func saleBody(quantity string) string {
	return `{"movement_type":"sale","product_id":"` + productID + `","branch_id":"` + testBranchID +
		`","document_id":"` + invoiceID + `","quantity":` + quantity + `,"unit_price":"12.50"}`
}

func TestMovementHandler_VentaRegistrada(t *testing.T) {
	app, s := movementApp(t, seller())

	status, raw := postMovement(t, app, saleBody("4"))

	require.Equal(t, fiber.StatusCreated, status, string(raw))
	var out dto.MovementResponse
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, entity.MovementTypeSale, out.MovementType)
	assert.Equal(t, "Arroz", out.Product.Name)
	require.Len(t, out.StockLevels, 1)
	assert.Equal(t, int64(6), out.StockLevels[0].Quantity)
	assert.Equal(t, int64(6), s.Stock(productID, testBranchID).Quantity)
}

func TestMovementHandler_CuerpoInvalido(t *testing.T) {
	app, _ := movementApp(t, seller())

	status, raw := postMovement(t, app, `{"movement_type":"gift","product_id":"x"}`)
	assert.Equal(t, fiber.StatusBadRequest, status, string(raw))

	status, raw = postMovement(t, app, saleBody("0"))
	assert.Equal(t, fiber.StatusBadRequest, status, string(raw))
}

func TestMovementHandler_StockInsuficiente(t *testing.T) {
	app, s := movementApp(t, seller())

	status, raw := postMovement(t, app, saleBody("11"))

	assert.Equal(t, fiber.StatusConflict, status, string(raw))
	var body dto.ErrorResponse
	require.NoError(t, json.Unmarshal(raw, &body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Equal(t, int64(10), s.Stock(productID, testBranchID).Quantity)
	assert.Empty(t, s.Movements())
}

func TestMovementHandler_SinPermisoDeVenta(t *testing.T) {
	actor := seller()
	actor.CanSale = false
	app, _ := movementApp(t, actor)

	status, raw := postMovement(t, app, saleBody("1"))

	assert.Equal(t, fiber.StatusForbidden, status, string(raw))
}

func TestMovementHandler_ProductoDeOtraEmpresa(t *testing.T) {
	actor := seller()
	actor.BusinessID = otherBizID
	app, _ := movementApp(t, actor)

	status, raw := postMovement(t, app, saleBody("1"))

	assert.Equal(t, fiber.StatusNotFound, status, string(raw))
}

func TestMovementHandler_IDMalformadoEsNoEncontrado(t *testing.T) {
	app, _ := movementApp(t, seller())

	for _, path := range []string{
		"/movements/abc",
		"/movements/abc/voucher",
		"/movements/30000000-0000-0000-0000-000000000001",
	} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
		raw, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		assert.Equal(t, fiber.StatusNotFound, resp.StatusCode, path)
		var body dto.ErrorResponse
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "NOT_FOUND", body.Code, path)
	}
}

func TestMovementHandler_ConsultaMovimientoRegistrado(t *testing.T) {
	app, s := movementApp(t, seller())
	status, raw := postMovement(t, app, saleBody("1"))
	require.Equal(t, fiber.StatusCreated, status, string(raw))
	id := s.Movements()[0].ID

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/movements/"+id, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
