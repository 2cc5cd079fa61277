package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/control-stock-api/internal/application/dto"
	"github.com/jhoicas/control-stock-api/internal/domain"
	"github.com/jhoicas/control-stock-api/internal/domain/entity"
	"github.com/jhoicas/control-stock-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios de una empresa.
type UserUseCase struct {
	repo       repository.UserRepository
	branchRepo repository.BranchRepository
}

// NewUserUseCase construye el caso de uso con los puertos de persistencia.
func NewUserUseCase(repo repository.UserRepository, branchRepo repository.BranchRepository) *UserUseCase {
	return &UserUseCase{repo: repo, branchRepo: branchRepo}
}

// CreateByAdmin un admin crea un usuario en su empresa. Rol user exige sucursal de la
// misma empresa; rol admin no puede tener sucursal.
func (uc *UserUseCase) CreateByAdmin(ctx context.Context, actor entity.Actor, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if err := requireAdmin(actor, "crear usuarios"); err != nil {
		return nil, err
	}
	switch in.Role {
	case entity.RoleUser:
		if in.BranchID == "" {
			return nil, domain.NewValidationError("branch_id", "Los usuarios con rol user deben tener una sucursal asignada")
		}
		branch, err := uc.branchRepo.GetByID(ctx, in.BranchID)
		if err != nil {
			return nil, err
		}
		if branch == nil || branch.BusinessID != actor.BusinessID {
			return nil, domain.NewNotFoundError("sucursal", "branch_id")
		}
	case entity.RoleAdmin:
		if in.BranchID != "" {
			return nil, domain.NewValidationError("branch_id", "Los administradores no pueden tener sucursal asignada")
		}
	default:
		return nil, domain.NewValidationError("role", "rol inválido")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		BusinessID:   actor.BusinessID,
		BranchID:     in.BranchID,
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		Username:     strings.TrimSpace(in.Username),
		PasswordHash: string(hash),
		Role:         in.Role,
		CanPurchase:  in.CanPurchase,
		CanSale:      in.CanSale,
		CanAdjust:    in.CanAdjust,
		CanTransfer:  in.CanTransfer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return ToUserResponse(user), nil
}

// List admin ve todos los usuarios de su empresa; user solo se ve a sí mismo.
func (uc *UserUseCase) List(ctx context.Context, actor entity.Actor, limit, offset int) ([]dto.UserResponse, error) {
	if !actor.IsAdmin() {
		me, err := uc.GetMe(ctx, actor)
		if err != nil {
			return nil, err
		}
		return []dto.UserResponse{*me}, nil
	}
	list, err := uc.repo.ListByBusiness(ctx, actor.BusinessID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *ToUserResponse(u))
	}
	return items, nil
}

// GetMe perfil del actor autenticado.
func (uc *UserUseCase) GetMe(ctx context.Context, actor entity.Actor) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.BusinessID != actor.BusinessID {
		return nil, domain.ErrUserNotFound
	}
	return ToUserResponse(user), nil
}

// ToUserResponse mapea la entidad sin exponer el hash.
func ToUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:          u.ID,
		BusinessID:  u.BusinessID,
		BranchID:    u.BranchID,
		Name:        u.Name,
		Email:       u.Email,
		Username:    u.Username,
		Role:        u.Role,
		CanPurchase: u.CanPurchase,
		CanSale:     u.CanSale,
		CanAdjust:   u.CanAdjust,
		CanTransfer: u.CanTransfer,
		CreatedAt:   u.CreatedAt,
	}
}
