package workflow

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/approval"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

func seedTask(tasks *fakeTasks, status string) {
	tasks.byID["t1"] = &entity.Task{
		ID: "t1", Title: "Llamar", Status: status, Priority: entity.TaskPriorityHigh,
		AssignedTo: "a1", CreatedBy: "m1", DueDate: testNow,
	}
}

func TestTaskCreate_Defaults(t *testing.T) {
	deps, notifier := newDeps()
	tasks := newFakeTasks()
	uc := NewTaskUseCase(tasks, deps)

	out, err := uc.Create(context.Background(), actor("a1", entity.RoleAgent), dto.CreateTaskRequest{
		Title: "Visitar", DueDate: testNow.AddDate(0, 0, 1),
	})

	require.NoError(t, err)
	assert.Equal(t, "a1", out.AssignedTo)
	assert.Equal(t, approval.StatusPending, out.Status)
	assert.Equal(t, entity.TaskPriorityMedium, out.Priority)
	assert.Empty(t, notifier.events, "asignarse a sí mismo no notifica")
}

func TestTaskCreate_AgentCannotAssignOthers(t *testing.T) {
	deps, _ := newDeps()
	uc := NewTaskUseCase(newFakeTasks(), deps)

	_, err := uc.Create(context.Background(), actor("a1", entity.RoleAgent), dto.CreateTaskRequest{
		Title: "X", DueDate: testNow, AssignedTo: "a2",
	})

	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestTaskApprovalFlow(t *testing.T) {
	deps, notifier := newDeps()
	tasks := newFakeTasks()
	seedTask(tasks, approval.StatusPending)
	uc := NewTaskUseCase(tasks, deps)
	ctx := context.Background()

	// el gerente no puede aprobar algo que no fue enviado
	_, err := uc.Approve(ctx, actor("m1", entity.RoleManager), "t1")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	// solo el asignado envía
	_, err = uc.Submit(ctx, actor("m1", entity.RoleManager), "t1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err := uc.Submit(ctx, actor("a1", entity.RoleAgent), "t1")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusPendingApproval, out.Status)

	_, err = uc.Approve(ctx, actor("a1", entity.RoleAgent), "t1")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = uc.Approve(ctx, actor("m2", entity.RoleManager), "t1")
	assert.ErrorIs(t, err, domain.ErrForbidden)

	out, err = uc.Approve(ctx, actor("m1", entity.RoleManager), "t1")
	require.NoError(t, err)
	assert.Equal(t, approval.StatusCompleted, out.Status)
	assert.Equal(t, "m1", out.ApprovedBy)
	require.NotNil(t, out.CompletedAt)
	assert.Equal(t, testNow, *out.CompletedAt)

	_, err = uc.Reject(ctx, actor("m1", entity.RoleManager), "t1", dto.RejectRequest{Reason: "tarde"})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	assert.Equal(t, []string{EventTaskSubmitted, EventTaskApproved}, notifier.types())
}

func TestTaskReject(t *testing.T) {
	deps, notifier := newDeps()
	tasks := newFakeTasks()
	seedTask(tasks, approval.StatusPendingApproval)
	uc := NewTaskUseCase(tasks, deps)

	out, err := uc.Reject(context.Background(), actor("admin", entity.RoleAdmin), "t1", dto.RejectRequest{Reason: "sin evidencia"})

	require.NoError(t, err)
	assert.Equal(t, approval.StatusRejected, out.Status)
	assert.Equal(t, "sin evidencia", out.RejectionReason)
	assert.Nil(t, out.CompletedAt)
	require.Len(t, notifier.events, 1)
	assert.Equal(t, "a1", notifier.events[0].UserID)
}

func TestTaskUpdate_ClosedTaskIsImmutable(t *testing.T) {
	deps, _ := newDeps()
	tasks := newFakeTasks()
	seedTask(tasks, approval.StatusCompleted)
	uc := NewTaskUseCase(tasks, deps)

	title := "nuevo"
	_, err := uc.Update(context.Background(), actor("a1", entity.RoleAgent), "t1", dto.UpdateTaskRequest{Title: &title})

	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestTaskList_UsesActorScope(t *testing.T) {
	deps, _ := newDeps()
	tasks := newFakeTasks()
	seedTask(tasks, approval.StatusPending)
	tasks.byID["t2"] = &entity.Task{ID: "t2", AssignedTo: "a3", CreatedBy: "m2"}
	uc := NewTaskUseCase(tasks, deps)

	out, page, err := uc.List(context.Background(), actor("m1", entity.RoleManager), dto.TaskListRequest{
		PageRequest: dto.PageRequest{Page: 1, Limit: 10, SortBy: "dueDate", SortOrder: "desc"},
	})

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "t1", out[0].ID)
	assert.Equal(t, 1, page.TotalItems)
	require.Len(t, tasks.filters, 1)
	assert.Equal(t, "due_date", tasks.filters[0].SortBy)
	assert.True(t, tasks.filters[0].SortDesc)
}
