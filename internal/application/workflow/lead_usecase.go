package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/approval"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// LeadSortFields campos ordenables del listado de leads.
var LeadSortFields = map[string]string{
	"createdAt": "created_at",
	"updatedAt": "updated_at",
	"name":      "name",
	"status":    "status",
}

// LeadUseCase alta, consulta y mantenimiento de leads.
type LeadUseCase struct {
	leads        repository.LeadRepository
	tasks        repository.TaskRepository
	deps         Deps
	followUpDays int
}

// NewLeadUseCase construye el caso de uso. followUpDays es el plazo de la tarea
// de seguimiento creada junto con un lead asignado.
func NewLeadUseCase(leads repository.LeadRepository, tasks repository.TaskRepository, deps Deps, followUpDays int) *LeadUseCase {
	return &LeadUseCase{leads: leads, tasks: tasks, deps: deps.withDefaults(), followUpDays: followUpDays}
}

// Create persiste el lead. Si queda asignado a alguien se crea además una tarea
// de seguimiento pendiente para esa persona.
func (uc *LeadUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateLeadRequest) (*dto.CreateLeadResponse, error) {
	assignee := in.AssignedTo
	if assignee == "" && actor.Role == entity.RoleAgent {
		assignee = actor.UserID
	}
	if assignee != "" {
		var err error
		if assignee, err = uc.deps.resolveAssignee(ctx, actor, assignee); err != nil {
			return nil, err
		}
	}

	now := uc.deps.Clock.Now()
	lead := &entity.Lead{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Company:    in.Company,
		Email:      in.Email,
		Phone:      in.Phone,
		Source:     in.Source,
		Status:     entity.LeadStatusNew,
		AssignedTo: assignee,
		CreatedBy:  actor.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.leads.Create(ctx, lead); err != nil {
		return nil, fmt.Errorf("crear lead: %w", err)
	}
	out := &dto.CreateLeadResponse{Lead: toLeadResponse(lead)}
	if assignee == "" {
		return out, nil
	}

	task := &entity.Task{
		ID:          uuid.New().String(),
		Title:       fmt.Sprintf("Seguimiento: %s", lead.Name),
		Description: "Primer contacto con el lead recién asignado",
		Status:      approval.StatusPending,
		Priority:    entity.TaskPriorityMedium,
		DueDate:     followUpDue(now, uc.followUpDays),
		AssignedTo:  assignee,
		CreatedBy:   actor.UserID,
		LeadID:      lead.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("crear tarea de seguimiento: %w", err)
	}
	tr := toTaskResponse(task)
	out.FollowUpTask = &tr

	uc.deps.Notifier.Notify(ctx, Event{
		Type: EventLeadAssigned, EntityID: lead.ID, ActorID: actor.UserID, UserID: assignee,
		Message: lead.Name, OccurredAt: now,
	})
	return out, nil
}

// Get devuelve un lead visible para el actor.
func (uc *LeadUseCase) Get(ctx context.Context, actor access.Actor, id string) (*dto.LeadResponse, error) {
	lead, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toLeadResponse(lead)
	return &out, nil
}

// Update aplica los campos presentes en la petición.
func (uc *LeadUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateLeadRequest) (*dto.LeadResponse, error) {
	lead, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		lead.Name = *in.Name
	}
	if in.Company != nil {
		lead.Company = *in.Company
	}
	if in.Email != nil {
		lead.Email = *in.Email
	}
	if in.Phone != nil {
		lead.Phone = *in.Phone
	}
	if in.Status != nil {
		lead.Status = *in.Status
	}
	reassigned := false
	if in.AssignedTo != nil && *in.AssignedTo != lead.AssignedTo {
		assignee, err := uc.deps.resolveAssignee(ctx, actor, *in.AssignedTo)
		if err != nil {
			return nil, err
		}
		lead.AssignedTo = assignee
		reassigned = true
	}
	lead.UpdatedAt = uc.deps.Clock.Now()
	if err := uc.leads.Update(ctx, lead); err != nil {
		return nil, fmt.Errorf("actualizar lead: %w", err)
	}
	if reassigned {
		uc.deps.Notifier.Notify(ctx, Event{
			Type: EventLeadAssigned, EntityID: lead.ID, ActorID: actor.UserID, UserID: lead.AssignedTo,
			Message: lead.Name, OccurredAt: lead.UpdatedAt,
		})
	}
	out := toLeadResponse(lead)
	return &out, nil
}

// Delete elimina un lead visible para el actor.
func (uc *LeadUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.leads.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar lead: %w", err)
	}
	return nil
}

// List lista los leads del alcance del actor.
func (uc *LeadUseCase) List(ctx context.Context, actor access.Actor, in dto.LeadListRequest) ([]dto.LeadResponse, *dto.Pagination, error) {
	opts, err := in.ListOptions(LeadSortFields, "created_at")
	if err != nil {
		return nil, nil, err
	}
	scope, err := uc.deps.Access.ScopeFor(ctx, actor)
	if err != nil {
		return nil, nil, err
	}
	rows, total, err := uc.leads.List(ctx, repository.LeadFilter{
		Scope: scope, Status: in.Status, Search: in.Search, ListOptions: opts,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listar leads: %w", err)
	}
	out := make([]dto.LeadResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toLeadResponse(&rows[i]))
	}
	return out, dto.NewPagination(opts.Page, opts.Limit, total), nil
}

func (uc *LeadUseCase) load(ctx context.Context, actor access.Actor, id string) (*entity.Lead, error) {
	lead, err := uc.leads.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener lead: %w", err)
	}
	if lead == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.deps.canSee(ctx, actor, lead.AssignedTo, lead.CreatedBy); err != nil {
		return nil, err
	}
	return lead, nil
}

func toLeadResponse(l *entity.Lead) dto.LeadResponse {
	return dto.LeadResponse{
		ID:         l.ID,
		Name:       l.Name,
		Company:    l.Company,
		Email:      l.Email,
		Phone:      l.Phone,
		Source:     l.Source,
		Status:     l.Status,
		AssignedTo: l.AssignedTo,
		CreatedBy:  l.CreatedBy,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
	}
}

// followUpDue vencimiento de la tarea automática.
func followUpDue(now time.Time, days int) time.Time { return now.AddDate(0, 0, days) }
