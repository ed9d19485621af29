package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// DealSortFields campos ordenables del listado de negocios.
var DealSortFields = map[string]string{
	"createdAt": "created_at",
	"closeDate": "close_date",
	"value":     "value",
	"stage":     "stage",
	"title":     "title",
}

// DealUseCase pipeline de negocios.
type DealUseCase struct {
	deals repository.DealRepository
	deps  Deps
}

// NewDealUseCase construye el caso de uso.
func NewDealUseCase(deals repository.DealRepository, deps Deps) *DealUseCase {
	return &DealUseCase{deals: deals, deps: deps.withDefaults()}
}

// Create abre un negocio en la etapa indicada (prospecting por defecto).
func (uc *DealUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateDealRequest) (*dto.DealResponse, error) {
	if in.Value.IsNegative() {
		return nil, fmt.Errorf("%w: el valor no puede ser negativo", domain.ErrInvalidInput)
	}
	assignee, err := uc.deps.resolveAssignee(ctx, actor, in.AssignedTo)
	if err != nil {
		return nil, err
	}
	stage := in.Stage
	if stage == "" {
		stage = entity.DealStageProspecting
	}
	now := uc.deps.Clock.Now()
	deal := &entity.Deal{
		ID:         uuid.New().String(),
		Title:      in.Title,
		CardCode:   in.CardCode,
		LeadID:     in.LeadID,
		Value:      in.Value,
		Stage:      stage,
		CloseDate:  in.CloseDate,
		AssignedTo: assignee,
		CreatedBy:  actor.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.deals.Create(ctx, deal); err != nil {
		return nil, fmt.Errorf("crear negocio: %w", err)
	}
	out := toDealResponse(deal)
	return &out, nil
}

// Get devuelve un negocio visible para el actor.
func (uc *DealUseCase) Get(ctx context.Context, actor access.Actor, id string) (*dto.DealResponse, error) {
	deal, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toDealResponse(deal)
	return &out, nil
}

// Update aplica los campos presentes en la petición.
func (uc *DealUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateDealRequest) (*dto.DealResponse, error) {
	deal, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		deal.Title = *in.Title
	}
	if in.Value != nil {
		if in.Value.IsNegative() {
			return nil, fmt.Errorf("%w: el valor no puede ser negativo", domain.ErrInvalidInput)
		}
		deal.Value = *in.Value
	}
	if in.Stage != nil {
		deal.Stage = *in.Stage
	}
	if in.CloseDate != nil {
		deal.CloseDate = in.CloseDate
	}
	if in.AssignedTo != nil && *in.AssignedTo != deal.AssignedTo {
		if deal.AssignedTo, err = uc.deps.resolveAssignee(ctx, actor, *in.AssignedTo); err != nil {
			return nil, err
		}
	}
	deal.UpdatedAt = uc.deps.Clock.Now()
	if err := uc.deals.Update(ctx, deal); err != nil {
		return nil, fmt.Errorf("actualizar negocio: %w", err)
	}
	out := toDealResponse(deal)
	return &out, nil
}

// Delete elimina un negocio visible para el actor.
func (uc *DealUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.deals.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar negocio: %w", err)
	}
	return nil
}

// List lista los negocios del alcance del actor.
func (uc *DealUseCase) List(ctx context.Context, actor access.Actor, in dto.DealListRequest) ([]dto.DealResponse, *dto.Pagination, error) {
	opts, err := in.ListOptions(DealSortFields, "created_at")
	if err != nil {
		return nil, nil, err
	}
	scope, err := uc.deps.Access.ScopeFor(ctx, actor)
	if err != nil {
		return nil, nil, err
	}
	rows, total, err := uc.deals.List(ctx, repository.DealFilter{
		Scope: scope, Stage: in.Stage, CardCode: in.CardCode, ListOptions: opts,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listar negocios: %w", err)
	}
	out := make([]dto.DealResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toDealResponse(&rows[i]))
	}
	return out, dto.NewPagination(opts.Page, opts.Limit, total), nil
}

func (uc *DealUseCase) load(ctx context.Context, actor access.Actor, id string) (*entity.Deal, error) {
	deal, err := uc.deals.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener negocio: %w", err)
	}
	if deal == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.deps.canSee(ctx, actor, deal.AssignedTo, deal.CreatedBy); err != nil {
		return nil, err
	}
	return deal, nil
}

func toDealResponse(d *entity.Deal) dto.DealResponse {
	return dto.DealResponse{
		ID:         d.ID,
		Title:      d.Title,
		CardCode:   d.CardCode,
		LeadID:     d.LeadID,
		Value:      d.Value,
		Stage:      d.Stage,
		CloseDate:  d.CloseDate,
		AssignedTo: d.AssignedTo,
		CreatedBy:  d.CreatedBy,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}
