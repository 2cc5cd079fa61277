package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/usecase"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
)

var (
	adminB1 = entity.Actor{UserID: "admin-1", BusinessID: "B1", Role: entity.RoleAdmin}
	userB1  = entity.Actor{UserID: "user-1", BusinessID: "B1", BranchID: "Br1", Role: entity.RoleUser}
)

func newProductUseCase() (*usecase.ProductUseCase, *memProducts) {
	products := &memProducts{data: map[string]*entity.Product{}, withStock: map[string][]string{}}
	categories := &memCategories{data: map[string]*entity.Category{
		"C1":    {ID: "C1", BusinessID: "B1", Name: "Granos"},
		"C-ext": {ID: "C-ext", BusinessID: "B2", Name: "Ajena"},
	}}
	return usecase.NewProductUseCase(products, categories), products
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

func TestProduct_NombreSoloLetrasYEspacios(t *testing.T) {
	uc, _ := newProductUseCase()

	_, err := uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Café Molido", Price: decimal.NewFromInt(5)})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Пшеница"})
	require.NoError(t, err, "cualquier alfabeto")

	_, err = uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Arroz 500g"})
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "name", vErr.Field)
}

func TestProduct_PrecioNegativo(t *testing.T) {
	uc, _ := newProductUseCase()
	_, err := uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Sal", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProduct_CategoriaDeOtraEmpresa(t *testing.T) {
	uc, _ := newProductUseCase()
	_, err := uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Sal", CategoryID: "C-ext"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	resp, err := uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Sal", CategoryID: "C1"})
	require.NoError(t, err)
	assert.Equal(t, "C1", resp.CategoryID)
}

func TestProduct_SoloAdminModifica(t *testing.T) {
	uc, _ := newProductUseCase()
	_, err := uc.Create(context.Background(), userB1, dto.CreateProductRequest{Name: "Sal"})
	var pErr *domain.PermissionError
	require.ErrorAs(t, err, &pErr)
	assert.Equal(t, "admin", pErr.Capability)
}

func TestProduct_UsuarioListaSoloConStockEnSuSucursal(t *testing.T) {
	uc, repo := newProductUseCase()
	a, err := uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Arroz"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Frijol"})
	require.NoError(t, err)
	repo.withStock["Br1"] = []string{a.ID}

	all, err := uc.List(context.Background(), adminB1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)

	own, err := uc.List(context.Background(), userB1, 20, 0)
	require.NoError(t, err)
	require.Len(t, own.Items, 1)
	assert.Equal(t, "Arroz", own.Items[0].Name)
}

func TestProduct_OtraEmpresaNoEncontrado(t *testing.T) {
	uc, _ := newProductUseCase()
	p, err := uc.Create(context.Background(), adminB1, dto.CreateProductRequest{Name: "Arroz"})
	require.NoError(t, err)

	other := entity.Actor{UserID: "x", BusinessID: "B2", Role: entity.RoleAdmin}
	_, err = uc.GetByID(context.Background(), other, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, uc.Delete(context.Background(), other, p.ID), domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Documentos
// ──────────────────────────────────────────────────────────────────────────────

func TestDocument_DuplicadoEsErrorDeValidacion(t *testing.T) {
	uc := usecase.NewDocumentUseCase(&memDocuments{data: map[string]*entity.Document{}})
	in := dto.CreateDocumentRequest{DocumentType: entity.DocumentTypeInvoice, DocumentNumber: "F-001"}

	doc, err := uc.Create(context.Background(), userB1, in)
	require.NoError(t, err)
	assert.Equal(t, "user-1", doc.CreatedBy)

	_, err = uc.Create(context.Background(), adminB1, in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "document_number", vErr.Field)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	in.DocumentType = entity.DocumentTypeCreditNote
	_, err = uc.Create(context.Background(), adminB1, in)
	assert.NoError(t, err, "mismo número con otro tipo es válido")
}

func TestDocument_BorrarSoloAdmin(t *testing.T) {
	uc := usecase.NewDocumentUseCase(&memDocuments{data: map[string]*entity.Document{}})
	doc, err := uc.Create(context.Background(), adminB1, dto.CreateDocumentRequest{DocumentType: entity.DocumentTypePurchaseOrder, DocumentNumber: "PO-002"})
	require.NoError(t, err)

	assert.ErrorIs(t, uc.Delete(context.Background(), userB1, doc.ID), domain.ErrForbidden)
	assert.NoError(t, uc.Delete(context.Background(), adminB1, doc.ID))
}

// ──────────────────────────────────────────────────────────────────────────────
// Sucursales
// ──────────────────────────────────────────────────────────────────────────────

func TestBranch_UsuarioVeSoloSuSucursal(t *testing.T) {
	branches := newMemBranches(
		&entity.Branch{ID: "Br1", BusinessID: "B1", Name: "Centro"},
		&entity.Branch{ID: "Br2", BusinessID: "B1", Name: "Norte"},
	)
	uc := usecase.NewBranchUseCase(branches)

	list, err := uc.List(context.Background(), userB1, 20, 0)
	require.NoError(t, err)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "Br1", list.Items[0].ID)

	_, err = uc.GetByID(context.Background(), userB1, "Br2")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Create(context.Background(), userB1, dto.CreateBranchRequest{Name: "Sur"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Usuarios
// ──────────────────────────────────────────────────────────────────────────────

func newUserUseCase() (*usecase.UserUseCase, *memUsers) {
	users := &memUsers{data: map[string]*entity.User{}}
	branches := newMemBranches(
		&entity.Branch{ID: "Br1", BusinessID: "B1"},
		&entity.Branch{ID: "Br-ext", BusinessID: "B2"},
	)
	return usecase.NewUserUseCase(users, branches), users
}

func TestUser_ReglasDeSucursalPorRol(t *testing.T) {
	uc, users := newUserUseCase()
	base := dto.CreateUserRequest{Name: "Ana", Email: "ana@x.com", Username: "ana", Password: "secreto123", Role: entity.RoleUser}

	_, err := uc.CreateByAdmin(context.Background(), adminB1, base)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "user sin sucursal")

	withForeign := base
	withForeign.BranchID = "Br-ext"
	_, err = uc.CreateByAdmin(context.Background(), adminB1, withForeign)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	adminWithBranch := base
	adminWithBranch.Role, adminWithBranch.BranchID = entity.RoleAdmin, "Br1"
	_, err = uc.CreateByAdmin(context.Background(), adminB1, adminWithBranch)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "admin con sucursal")

	ok := base
	ok.BranchID, ok.CanSale = "Br1", true
	resp, err := uc.CreateByAdmin(context.Background(), adminB1, ok)
	require.NoError(t, err)
	assert.Equal(t, "B1", resp.BusinessID)
	assert.True(t, resp.CanSale)
	assert.NotEqual(t, "secreto123", users.data[resp.ID].PasswordHash)

	_, err = uc.CreateByAdmin(context.Background(), userB1, ok)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUser_ListadoPorRol(t *testing.T) {
	uc, users := newUserUseCase()
	users.data["admin-1"] = &entity.User{ID: "admin-1", BusinessID: "B1", Role: entity.RoleAdmin, Email: "a@x", Username: "a"}
	users.data["user-1"] = &entity.User{ID: "user-1", BusinessID: "B1", BranchID: "Br1", Role: entity.RoleUser, Email: "u@x", Username: "u"}
	users.data["other"] = &entity.User{ID: "other", BusinessID: "B2", Role: entity.RoleAdmin, Email: "o@x", Username: "o"}

	all, err := uc.List(context.Background(), adminB1, 20, 0)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	self, err := uc.List(context.Background(), userB1, 20, 0)
	require.NoError(t, err)
	require.Len(t, self, 1)
	assert.Equal(t, "user-1", self[0].ID)
}
