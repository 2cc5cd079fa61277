package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/control-stock-api/internal/application/auth"
	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
	"github.com/jhoicas/control-stock-api/pkg/jwt"
)

const secret = "test-secret"

type memStore struct {
	mu         sync.Mutex
	businesses map[string]*entity.Business
	users      map[string]*entity.User
	failUser   bool
}

func newMemStore() *memStore {
	return &memStore{businesses: map[string]*entity.Business{}, users: map[string]*entity.User{}}
}

type businessRepo struct{ m *memStore }

func (r businessRepo) Create(_ context.Context, b *entity.Business) error {
	r.m.businesses[b.ID] = b
	return nil
}
func (r businessRepo) GetByID(_ context.Context, id string) (*entity.Business, error) {
	return r.m.businesses[id], nil
}
func (r businessRepo) Update(context.Context, *entity.Business) error { return nil }

type userRepo struct{ m *memStore }

func (r userRepo) Create(_ context.Context, u *entity.User) error {
	if r.m.failUser {
		return domain.ErrEmailAlreadyExists
	}
	r.m.users[u.ID] = u
	return nil
}
func (r userRepo) GetByID(_ context.Context, id string) (*entity.User, error) { return r.m.users[id], nil }
func (r userRepo) GetByLogin(_ context.Context, login string) (*entity.User, error) {
	for _, u := range r.m.users {
		if u.Email == login || u.Username == login {
			return u, nil
		}
	}
	return nil, nil
}
func (r userRepo) ListByBusiness(context.Context, string, int, int) ([]*entity.User, error) {
	return nil, nil
}

// RunRegistration aplica los cambios solo si fn no falla.
func (m *memStore) RunRegistration(ctx context.Context, fn func(context.Context, repository.BusinessRepository, repository.UserRepository) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	staged := &memStore{businesses: map[string]*entity.Business{}, users: map[string]*entity.User{}, failUser: m.failUser}
	if err := fn(ctx, businessRepo{staged}, userRepo{staged}); err != nil {
		return err
	}
	for k, v := range staged.businesses {
		m.businesses[k] = v
	}
	for k, v := range staged.users {
		m.users[k] = v
	}
	return nil
}

type memDenylist struct {
	revoked map[string]time.Duration
}

func (d *memDenylist) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	d.revoked[jti] = ttl
	return nil
}
func (d *memDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := d.revoked[jti]
	return ok, nil
}

func newAuth(store *memStore, deny *memDenylist) *auth.AuthUseCase {
	return auth.NewAuthUseCase(userRepo{store}, store, deny, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"})
}

func registerRequest() dto.RegisterAdminRequest {
	return dto.RegisterAdminRequest{
		BusinessName: "Tienda Uno", Name: "Admin", Email: "Admin@Tienda.com",
		Username: "admin", Password: "secreto123", Password2: "secreto123",
	}
}

func TestRegisterAdmin_CreaEmpresaYAdmin(t *testing.T) {
	store := newMemStore()
	uc := newAuth(store, &memDenylist{revoked: map[string]time.Duration{}})

	resp, err := uc.RegisterAdmin(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)
	assert.Empty(t, resp.BranchID)
	assert.True(t, resp.CanPurchase && resp.CanSale && resp.CanAdjust && resp.CanTransfer)
	assert.Equal(t, "admin@tienda.com", resp.Email)
	require.Contains(t, store.businesses, resp.BusinessID)
	assert.Equal(t, "Tienda Uno", store.businesses[resp.BusinessID].Name)
}

func TestRegisterAdmin_PasswordsDistintos(t *testing.T) {
	uc := newAuth(newMemStore(), nil)
	in := registerRequest()
	in.Password2 = "otra"
	_, err := uc.RegisterAdmin(context.Background(), in)
	var vErr *domain.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "password2", vErr.Field)
}

func TestRegisterAdmin_FalloNoDejaEmpresaHuerfana(t *testing.T) {
	store := newMemStore()
	store.failUser = true
	uc := newAuth(store, nil)

	_, err := uc.RegisterAdmin(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
	assert.Empty(t, store.businesses)
}

func TestLogin_PorEmailOUsername(t *testing.T) {
	store := newMemStore()
	uc := newAuth(store, nil)
	_, err := uc.RegisterAdmin(context.Background(), registerRequest())
	require.NoError(t, err)

	for _, login := range []string{"ADMIN@tienda.com", "admin"} {
		resp, err := uc.Login(context.Background(), dto.LoginRequest{Login: login, Password: "secreto123"})
		require.NoError(t, err, login)

		claims, err := jwt.Parse(secret, resp.Token)
		require.NoError(t, err)
		assert.Equal(t, resp.User.ID, claims.UserID)
		assert.Equal(t, resp.User.BusinessID, claims.BusinessID)
		assert.True(t, claims.CanTransfer)
	}
}

func TestLogin_CredencialesIncorrectas(t *testing.T) {
	store := newMemStore()
	uc := newAuth(store, nil)
	_, err := uc.RegisterAdmin(context.Background(), registerRequest())
	require.NoError(t, err)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Login: "admin", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Login: "nadie", Password: "secreto123"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "no se distingue usuario inexistente")
}

func TestLogout_RevocaHastaExpirar(t *testing.T) {
	deny := &memDenylist{revoked: map[string]time.Duration{}}
	uc := newAuth(newMemStore(), deny)

	require.NoError(t, uc.Logout(context.Background(), "jti-1", time.Now().Add(10*time.Minute)))
	ttl, ok := deny.revoked["jti-1"]
	require.True(t, ok)
	assert.InDelta(t, (10 * time.Minute).Seconds(), ttl.Seconds(), 5)

	require.NoError(t, uc.Logout(context.Background(), "jti-2", time.Now().Add(-time.Minute)))
	assert.NotContains(t, deny.revoked, "jti-2", "un token ya expirado no necesita denylist")
}
