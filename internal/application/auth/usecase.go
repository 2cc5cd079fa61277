package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/application/usecase"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
	"github.com/jhoicas/control-stock-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// RegistrationTxRunner crea empresa y administrador en una sola transacción.
type RegistrationTxRunner interface {
	RunRegistration(ctx context.Context, fn func(
		ctx context.Context,
		businessRepo repository.BusinessRepository,
		userRepo repository.UserRepository,
	) error) error
}

// TokenDenylist tokens revocados (logout) hasta su expiración.
type TokenDenylist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// AuthUseCase casos de uso de autenticación: registro, login y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	txRunner RegistrationTxRunner
	denylist TokenDenylist
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, txRunner RegistrationTxRunner, denylist TokenDenylist, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, txRunner: txRunner, denylist: denylist, jwtCfg: jwtCfg}
}

// RegisterAdmin crea una empresa nueva y su administrador con las cuatro capacidades.
func (uc *AuthUseCase) RegisterAdmin(ctx context.Context, in dto.RegisterAdminRequest) (*dto.UserResponse, error) {
	if in.Password != in.Password2 {
		return nil, domain.NewValidationError("password2", "Las contraseñas no coinciden")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	business := &entity.Business{
		ID:        uuid.New().String(),
		Name:      in.BusinessName,
		CreatedAt: now,
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		BusinessID:   business.ID,
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
		CanPurchase:  true,
		CanSale:      true,
		CanAdjust:    true,
		CanTransfer:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.RunRegistration(ctx, func(ctx context.Context, businessRepo repository.BusinessRepository, userRepo repository.UserRepository) error {
		if err := businessRepo.Create(ctx, business); err != nil {
			return err
		}
		return userRepo.Create(ctx, user)
	})
	if err != nil {
		return nil, err
	}
	return usecase.ToUserResponse(user), nil
}

// Login verifica email o username + password, genera JWT y retorna token + usuario.
// Usuario inexistente y password incorrecta devuelven el mismo error.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	login := strings.TrimSpace(in.Login)
	if strings.Contains(login, "@") {
		login = strings.ToLower(login)
	}
	user, err := uc.userRepo.GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	token, expiresAt, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Identity{
		UserID:      user.ID,
		BusinessID:  user.BusinessID,
		BranchID:    user.BranchID,
		Role:        user.Role,
		CanPurchase: user.CanPurchase,
		CanSale:     user.CanSale,
		CanAdjust:   user.CanAdjust,
		CanTransfer: user.CanTransfer,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      *usecase.ToUserResponse(user),
	}, nil
}

// Logout revoca el token (jti) hasta su expiración natural.
func (uc *AuthUseCase) Logout(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return domain.ErrUnauthorized
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return uc.denylist.Revoke(ctx, jti, ttl)
}
