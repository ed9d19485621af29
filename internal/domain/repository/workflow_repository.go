package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// LeadFilter filtros del listado de leads.
type LeadFilter struct {
	Scope  Scope
	Status string
	Search string
	ListOptions
}

// LeadRepository define el puerto de persistencia para Lead.
type LeadRepository interface {
	Create(ctx context.Context, lead *entity.Lead) error
	GetByID(ctx context.Context, id string) (*entity.Lead, error)
	Update(ctx context.Context, lead *entity.Lead) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f LeadFilter) ([]entity.Lead, int, error)
}

// TaskFilter filtros del listado de tareas.
type TaskFilter struct {
	Scope    Scope
	Status   string
	Priority string
	LeadID   string
	CardCode string
	ListOptions
}

// TaskRepository define el puerto de persistencia para Task.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error
	GetByID(ctx context.Context, id string) (*entity.Task, error)
	Update(ctx context.Context, task *entity.Task) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f TaskFilter) ([]entity.Task, int, error)
}

// DealFilter filtros del listado de negocios.
type DealFilter struct {
	Scope    Scope
	Stage    string
	CardCode string
	ListOptions
}

// DealRepository define el puerto de persistencia para Deal.
type DealRepository interface {
	Create(ctx context.Context, deal *entity.Deal) error
	GetByID(ctx context.Context, id string) (*entity.Deal, error)
	Update(ctx context.Context, deal *entity.Deal) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f DealFilter) ([]entity.Deal, int, error)
}
