package usecase

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// CustomerSortFields campos ordenables del listado de clientes.
var CustomerSortFields = map[string]string{
	"cardCode":  "card_code",
	"name":      "name",
	"createdAt": "created_at",
	"status":    "status",
}

// CustomerUseCase consulta de clientes según el alcance del actor.
type CustomerUseCase struct {
	repo   repository.CustomerRepository
	access *access.Resolver
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(repo repository.CustomerRepository, resolver *access.Resolver) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, access: resolver}
}

// List lista clientes visibles, paginados.
func (uc *CustomerUseCase) List(ctx context.Context, actor access.Actor, in dto.CustomerListRequest) ([]dto.CustomerResponse, *dto.Pagination, error) {
	opts, err := in.ListOptions(CustomerSortFields, "name")
	if err != nil {
		return nil, nil, err
	}
	scope, err := uc.access.ScopeFor(ctx, actor)
	if err != nil {
		return nil, nil, err
	}
	list, total, err := uc.repo.List(ctx, repository.CustomerFilter{
		Scope: scope, Status: in.Status, Search: in.Search, ListOptions: opts,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]dto.CustomerResponse, 0, len(list))
	for i := range list {
		out = append(out, toCustomerResponse(&list[i]))
	}
	return out, dto.NewPagination(opts.Page, opts.Limit, total), nil
}

// Get devuelve un cliente si está dentro del alcance.
func (uc *CustomerUseCase) Get(ctx context.Context, actor access.Actor, cardCode string) (*dto.CustomerResponse, error) {
	c, err := uc.repo.GetByCode(ctx, cardCode)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.access.CanView(ctx, actor, c.AssignedTo); err != nil {
		return nil, err
	}
	out := toCustomerResponse(c)
	return &out, nil
}

func toCustomerResponse(c *entity.Customer) dto.CustomerResponse {
	return dto.CustomerResponse{
		CardCode:   c.CardCode,
		Name:       c.Name,
		AssignedTo: c.AssignedTo,
		Status:     c.Status,
		Email:      c.Email,
		Phone:      c.Phone,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}
