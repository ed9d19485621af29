package workflow

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/approval"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// QuotationSortFields campos ordenables del listado de cotizaciones.
var QuotationSortFields = map[string]string{
	"createdAt": "created_at",
	"docDate":   "doc_date",
	"docNum":    "doc_num",
	"docTotal":  "doc_total",
	"status":    "status",
}

// QuotationUseCase cotizaciones y su aprobación.
type QuotationUseCase struct {
	quotations repository.QuotationRepository
	customers  repository.CustomerRepository
	deps       Deps
}

// NewQuotationUseCase construye el caso de uso.
func NewQuotationUseCase(quotations repository.QuotationRepository, customers repository.CustomerRepository, deps Deps) *QuotationUseCase {
	return &QuotationUseCase{quotations: quotations, customers: customers, deps: deps.withDefaults()}
}

// Create registra una cotización pendiente para un cliente visible.
func (uc *QuotationUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateQuotationRequest) (*dto.QuotationResponse, error) {
	if !in.DocTotal.IsPositive() {
		return nil, fmt.Errorf("%w: el total debe ser mayor que cero", domain.ErrInvalidInput)
	}
	customer, err := uc.customers.GetByCode(ctx, in.CardCode)
	if err != nil {
		return nil, fmt.Errorf("obtener cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.deps.Access.CanView(ctx, actor, customer.AssignedTo); err != nil {
		return nil, err
	}

	now := uc.deps.Clock.Now()
	q := &entity.Quotation{
		ID:        uuid.New().String(),
		DocNum:    in.DocNum,
		CardCode:  customer.CardCode,
		DocDate:   in.DocDate,
		DocTotal:  in.DocTotal,
		Status:    approval.StatusPending,
		CreatedBy: actor.UserID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.quotations.Create(ctx, q); err != nil {
		return nil, fmt.Errorf("crear cotización: %w", err)
	}
	out := toQuotationResponse(q)
	return &out, nil
}

// Get devuelve una cotización visible para el actor.
func (uc *QuotationUseCase) Get(ctx context.Context, actor access.Actor, id string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.deps.Access.CanView(ctx, actor, q.CreatedBy); err != nil {
		return nil, err
	}
	out := toQuotationResponse(q)
	return &out, nil
}

// List lista las cotizaciones creadas dentro del alcance del actor.
func (uc *QuotationUseCase) List(ctx context.Context, actor access.Actor, in dto.QuotationListRequest) ([]dto.QuotationResponse, *dto.Pagination, error) {
	opts, err := in.ListOptions(QuotationSortFields, "created_at")
	if err != nil {
		return nil, nil, err
	}
	scope, err := uc.deps.Access.ScopeFor(ctx, actor)
	if err != nil {
		return nil, nil, err
	}
	rows, total, err := uc.quotations.List(ctx, repository.QuotationFilter{
		Scope: scope, Status: in.Status, CardCode: in.CardCode, ListOptions: opts,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listar cotizaciones: %w", err)
	}
	out := make([]dto.QuotationResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toQuotationResponse(&rows[i]))
	}
	return out, dto.NewPagination(opts.Page, opts.Limit, total), nil
}

// Submit el creador envía la cotización a aprobación.
func (uc *QuotationUseCase) Submit(ctx context.Context, actor access.Actor, id string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if q.CreatedBy != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if err := approval.Transition(q.Status, approval.StatusPendingApproval); err != nil {
		return nil, err
	}
	q.Status = approval.StatusPendingApproval
	q.UpdatedAt = uc.deps.Clock.Now()
	if err := uc.quotations.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("enviar cotización: %w", err)
	}
	uc.notifyManager(ctx, actor, q)
	out := toQuotationResponse(q)
	return &out, nil
}

// Approve un gerente o admin aprueba la cotización.
func (uc *QuotationUseCase) Approve(ctx context.Context, actor access.Actor, id string) (*dto.QuotationResponse, error) {
	return uc.decide(ctx, actor, id, approval.StatusCompleted, "")
}

// Reject un gerente o admin rechaza la cotización con un motivo.
func (uc *QuotationUseCase) Reject(ctx context.Context, actor access.Actor, id string, in dto.RejectRequest) (*dto.QuotationResponse, error) {
	return uc.decide(ctx, actor, id, approval.StatusRejected, in.Reason)
}

func (uc *QuotationUseCase) decide(ctx context.Context, actor access.Actor, id, to, reason string) (*dto.QuotationResponse, error) {
	q, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.deps.canApprove(ctx, actor, q.CreatedBy); err != nil {
		return nil, err
	}
	if err := approval.Transition(q.Status, to); err != nil {
		return nil, err
	}
	q.Status = to
	q.ApprovedBy = actor.UserID
	q.RejectionReason = reason
	q.UpdatedAt = uc.deps.Clock.Now()
	if err := uc.quotations.Update(ctx, q); err != nil {
		return nil, fmt.Errorf("resolver cotización: %w", err)
	}
	event := EventQuotationApproved
	if to == approval.StatusRejected {
		event = EventQuotationRejected
	}
	uc.deps.Notifier.Notify(ctx, Event{
		Type: event, EntityID: q.ID, ActorID: actor.UserID, UserID: q.CreatedBy,
		Message: reason, OccurredAt: q.UpdatedAt,
	})
	out := toQuotationResponse(q)
	return &out, nil
}

// notifyManager avisa al gerente del creador, si lo tiene.
func (uc *QuotationUseCase) notifyManager(ctx context.Context, actor access.Actor, q *entity.Quotation) {
	creator, err := uc.deps.Users.GetByID(ctx, actor.UserID)
	if err != nil || creator == nil || creator.ManagerID == "" {
		return
	}
	uc.deps.Notifier.Notify(ctx, Event{
		Type: EventQuotationSubmitted, EntityID: q.ID, ActorID: actor.UserID, UserID: creator.ManagerID,
		Message: q.CardCode, OccurredAt: q.UpdatedAt,
	})
}

func (uc *QuotationUseCase) load(ctx context.Context, id string) (*entity.Quotation, error) {
	q, err := uc.quotations.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener cotización: %w", err)
	}
	if q == nil {
		return nil, domain.ErrNotFound
	}
	return q, nil
}

func toQuotationResponse(q *entity.Quotation) dto.QuotationResponse {
	return dto.QuotationResponse{
		ID:              q.ID,
		DocNum:          q.DocNum,
		CardCode:        q.CardCode,
		DocDate:         q.DocDate,
		DocTotal:        q.DocTotal,
		Status:          q.Status,
		CreatedBy:       q.CreatedBy,
		ApprovedBy:      q.ApprovedBy,
		RejectionReason: q.RejectionReason,
		CreatedAt:       q.CreatedAt,
		UpdatedAt:       q.UpdatedAt,
	}
}
