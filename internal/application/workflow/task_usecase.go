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

// TaskSortFields campos ordenables del listado de tareas.
var TaskSortFields = map[string]string{
	"createdAt": "created_at",
	"dueDate":   "due_date",
	"priority":  "priority",
	"status":    "status",
	"title":     "title",
}

// TaskUseCase tareas de seguimiento y su flujo de aprobación.
type TaskUseCase struct {
	tasks repository.TaskRepository
	deps  Deps
}

// NewTaskUseCase construye el caso de uso.
func NewTaskUseCase(tasks repository.TaskRepository, deps Deps) *TaskUseCase {
	return &TaskUseCase{tasks: tasks, deps: deps.withDefaults()}
}

// Create crea una tarea pendiente. Sin asignado explícito queda para el actor.
func (uc *TaskUseCase) Create(ctx context.Context, actor access.Actor, in dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	assignee, err := uc.deps.resolveAssignee(ctx, actor, in.AssignedTo)
	if err != nil {
		return nil, err
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.TaskPriorityMedium
	}
	now := uc.deps.Clock.Now()
	task := &entity.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Status:      approval.StatusPending,
		Priority:    priority,
		DueDate:     in.DueDate,
		AssignedTo:  assignee,
		CreatedBy:   actor.UserID,
		LeadID:      in.LeadID,
		CardCode:    in.CardCode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tasks.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("crear tarea: %w", err)
	}
	if assignee != actor.UserID {
		uc.deps.Notifier.Notify(ctx, Event{
			Type: EventTaskAssigned, EntityID: task.ID, ActorID: actor.UserID, UserID: assignee,
			Message: task.Title, OccurredAt: now,
		})
	}
	out := toTaskResponse(task)
	return &out, nil
}

// Get devuelve una tarea visible para el actor.
func (uc *TaskUseCase) Get(ctx context.Context, actor access.Actor, id string) (*dto.TaskResponse, error) {
	task, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	out := toTaskResponse(task)
	return &out, nil
}

// Update modifica los datos de una tarea que aún no está cerrada.
func (uc *TaskUseCase) Update(ctx context.Context, actor access.Actor, id string, in dto.UpdateTaskRequest) (*dto.TaskResponse, error) {
	task, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if approval.IsFinal(task.Status) {
		return nil, fmt.Errorf("%w: la tarea está %s", domain.ErrInvalidTransition, task.Status)
	}
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDate != nil {
		task.DueDate = *in.DueDate
	}
	reassigned := false
	if in.AssignedTo != nil && *in.AssignedTo != task.AssignedTo {
		assignee, err := uc.deps.resolveAssignee(ctx, actor, *in.AssignedTo)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = assignee
		reassigned = true
	}
	task.UpdatedAt = uc.deps.Clock.Now()
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("actualizar tarea: %w", err)
	}
	if reassigned {
		uc.deps.Notifier.Notify(ctx, Event{
			Type: EventTaskAssigned, EntityID: task.ID, ActorID: actor.UserID, UserID: task.AssignedTo,
			Message: task.Title, OccurredAt: task.UpdatedAt,
		})
	}
	out := toTaskResponse(task)
	return &out, nil
}

// Delete elimina una tarea visible para el actor.
func (uc *TaskUseCase) Delete(ctx context.Context, actor access.Actor, id string) error {
	if _, err := uc.load(ctx, actor, id); err != nil {
		return err
	}
	if err := uc.tasks.Delete(ctx, id); err != nil {
		return fmt.Errorf("eliminar tarea: %w", err)
	}
	return nil
}

// List lista las tareas del alcance del actor.
func (uc *TaskUseCase) List(ctx context.Context, actor access.Actor, in dto.TaskListRequest) ([]dto.TaskResponse, *dto.Pagination, error) {
	opts, err := in.ListOptions(TaskSortFields, "due_date")
	if err != nil {
		return nil, nil, err
	}
	scope, err := uc.deps.Access.ScopeFor(ctx, actor)
	if err != nil {
		return nil, nil, err
	}
	rows, total, err := uc.tasks.List(ctx, repository.TaskFilter{
		Scope: scope, Status: in.Status, Priority: in.Priority,
		LeadID: in.LeadID, CardCode: in.CardCode, ListOptions: opts,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("listar tareas: %w", err)
	}
	out := make([]dto.TaskResponse, 0, len(rows))
	for i := range rows {
		out = append(out, toTaskResponse(&rows[i]))
	}
	return out, dto.NewPagination(opts.Page, opts.Limit, total), nil
}

// Submit el asignado envía la tarea a aprobación.
func (uc *TaskUseCase) Submit(ctx context.Context, actor access.Actor, id string) (*dto.TaskResponse, error) {
	task, err := uc.load(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if task.AssignedTo != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if err := approval.Transition(task.Status, approval.StatusPendingApproval); err != nil {
		return nil, err
	}
	task.Status = approval.StatusPendingApproval
	task.RejectionReason = ""
	task.UpdatedAt = uc.deps.Clock.Now()
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("enviar tarea: %w", err)
	}
	if task.CreatedBy != actor.UserID {
		uc.deps.Notifier.Notify(ctx, Event{
			Type: EventTaskSubmitted, EntityID: task.ID, ActorID: actor.UserID, UserID: task.CreatedBy,
			Message: task.Title, OccurredAt: task.UpdatedAt,
		})
	}
	out := toTaskResponse(task)
	return &out, nil
}

// Approve un gerente o admin cierra la tarea como completada.
func (uc *TaskUseCase) Approve(ctx context.Context, actor access.Actor, id string) (*dto.TaskResponse, error) {
	return uc.decide(ctx, actor, id, approval.StatusCompleted, "")
}

// Reject un gerente o admin rechaza la tarea con un motivo.
func (uc *TaskUseCase) Reject(ctx context.Context, actor access.Actor, id string, in dto.RejectRequest) (*dto.TaskResponse, error) {
	return uc.decide(ctx, actor, id, approval.StatusRejected, in.Reason)
}

func (uc *TaskUseCase) decide(ctx context.Context, actor access.Actor, id, to, reason string) (*dto.TaskResponse, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener tarea: %w", err)
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.deps.canApprove(ctx, actor, task.AssignedTo); err != nil {
		return nil, err
	}
	if err := approval.Transition(task.Status, to); err != nil {
		return nil, err
	}

	now := uc.deps.Clock.Now()
	task.Status = to
	task.ApprovedBy = actor.UserID
	task.UpdatedAt = now
	event := EventTaskRejected
	if to == approval.StatusCompleted {
		task.CompletedAt = &now
		event = EventTaskApproved
	} else {
		task.RejectionReason = reason
	}
	if err := uc.tasks.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("resolver tarea: %w", err)
	}
	uc.deps.Notifier.Notify(ctx, Event{
		Type: event, EntityID: task.ID, ActorID: actor.UserID, UserID: task.AssignedTo,
		Message: reason, OccurredAt: now,
	})
	out := toTaskResponse(task)
	return &out, nil
}

func (uc *TaskUseCase) load(ctx context.Context, actor access.Actor, id string) (*entity.Task, error) {
	task, err := uc.tasks.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("obtener tarea: %w", err)
	}
	if task == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.deps.canSee(ctx, actor, task.AssignedTo, task.CreatedBy); err != nil {
		return nil, err
	}
	return task, nil
}

func toTaskResponse(t *entity.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:              t.ID,
		Title:           t.Title,
		Description:     t.Description,
		Status:          t.Status,
		Priority:        t.Priority,
		DueDate:         t.DueDate,
		AssignedTo:      t.AssignedTo,
		CreatedBy:       t.CreatedBy,
		LeadID:          t.LeadID,
		CardCode:        t.CardCode,
		ApprovedBy:      t.ApprovedBy,
		RejectionReason: t.RejectionReason,
		CompletedAt:     t.CompletedAt,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
	}
}
