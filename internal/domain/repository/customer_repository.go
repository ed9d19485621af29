package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// CustomerFilter filtros del listado de clientes.
type CustomerFilter struct {
	Scope  Scope
	Status string
	Search string // nombre o CardCode, parcial
	ListOptions
}

// CustomerRepository define el puerto de persistencia para Customer.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	// GetByCode devuelve nil, nil si no existe.
	GetByCode(ctx context.Context, cardCode string) (*entity.Customer, error)
	List(ctx context.Context, f CustomerFilter) ([]entity.Customer, int, error)
	// ListByScope devuelve todos los clientes visibles, sin paginar (entrada de los scorers).
	ListByScope(ctx context.Context, scope Scope) ([]entity.Customer, error)
	ListByAssignee(ctx context.Context, userID string) ([]entity.Customer, error)
}
