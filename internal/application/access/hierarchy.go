// Package access resuelve quién puede ver qué: la jerarquía gerente → agentes
// y el alcance (Scope) de lectura de cada rol.
package access

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// Actor identidad autenticada que origina la petición.
type Actor struct {
	UserID string
	Role   string
}

// IsAdmin indica si el actor es administrador.
func (a Actor) IsAdmin() bool { return a.Role == entity.RoleAdmin }

// IsManager indica si el actor es gerente.
func (a Actor) IsManager() bool { return a.Role == entity.RoleManager }

// Resolver calcula alcances a partir de la jerarquía de usuarios.
type Resolver struct {
	users repository.UserRepository
}

// NewResolver construye el resolver.
func NewResolver(users repository.UserRepository) *Resolver {
	return &Resolver{users: users}
}

// AgentsManagedBy devuelve los IDs de los reportes directos del gerente.
// Solo se recorre un nivel: la base de datos no impide ciclos en ManagerID.
// El propio gerente nunca se incluye, aunque figure como su propio reporte.
func (r *Resolver) AgentsManagedBy(ctx context.Context, managerID string) ([]string, error) {
	reports, err := r.users.ListByManager(ctx, managerID)
	if err != nil {
		return nil, fmt.Errorf("agentes del gerente %s: %w", managerID, err)
	}
	seen := make(map[string]struct{}, len(reports))
	ids := make([]string, 0, len(reports))
	for _, u := range reports {
		if u.ID == managerID {
			continue
		}
		if _, dup := seen[u.ID]; dup {
			continue
		}
		seen[u.ID] = struct{}{}
		ids = append(ids, u.ID)
	}
	return ids, nil
}

// ScopeFor admin: todo; manager: él mismo y sus agentes directos; agent: él mismo.
func (r *Resolver) ScopeFor(ctx context.Context, a Actor) (repository.Scope, error) {
	switch a.Role {
	case entity.RoleAdmin:
		return repository.Scope{Unrestricted: true}, nil
	case entity.RoleManager:
		agents, err := r.AgentsManagedBy(ctx, a.UserID)
		if err != nil {
			return repository.Scope{}, err
		}
		return repository.Scope{UserIDs: append([]string{a.UserID}, agents...)}, nil
	case entity.RoleAgent:
		return repository.Scope{UserIDs: []string{a.UserID}}, nil
	default:
		return repository.Scope{}, domain.ErrForbidden
	}
}

// CanView verifica que el recurso asignado a ownerID esté dentro del alcance del actor.
func (r *Resolver) CanView(ctx context.Context, a Actor, ownerID string) error {
	scope, err := r.ScopeFor(ctx, a)
	if err != nil {
		return err
	}
	if !scope.Allows(ownerID) {
		return domain.ErrForbidden
	}
	return nil
}

// CanManageAgent verifica que el actor pueda ver métricas del agente:
// admin siempre, gerente sobre sí mismo y sus reportes directos.
func (r *Resolver) CanManageAgent(ctx context.Context, a Actor, agentID string) error {
	if a.UserID == agentID || a.IsAdmin() {
		return nil
	}
	if !a.IsManager() {
		return domain.ErrForbidden
	}
	return r.CanView(ctx, a, agentID)
}
