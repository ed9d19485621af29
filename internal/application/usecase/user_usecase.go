package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios.
type UserUseCase struct {
	repo   repository.UserRepository
	access *access.Resolver
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository, resolver *access.Resolver) *UserUseCase {
	return &UserUseCase{repo: repo, access: resolver}
}

// Me devuelve el usuario autenticado.
func (uc *UserUseCase) Me(ctx context.Context, actor access.Actor) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("obtener usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return auth.ToUserResponse(user), nil
}

// Agents lista los reportes directos de un gerente (un nivel).
func (uc *UserUseCase) Agents(ctx context.Context, actor access.Actor, managerID string) ([]dto.UserResponse, error) {
	if err := uc.access.CanManageAgent(ctx, actor, managerID); err != nil {
		return nil, err
	}
	ids, err := uc.access.AgentsManagedBy(ctx, managerID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(ids))
	for _, id := range ids {
		u, err := uc.repo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("obtener agente %s: %w", id, err)
		}
		if u != nil {
			out = append(out, *auth.ToUserResponse(u))
		}
	}
	return out, nil
}
