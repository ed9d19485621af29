package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/workflow"
)

// TaskHandler CRUD de tareas y su flujo de aprobación.
type TaskHandler struct {
	uc *workflow.TaskUseCase
}

// NewTaskHandler construye el handler.
func NewTaskHandler(uc *workflow.TaskUseCase) *TaskHandler {
	return &TaskHandler{uc: uc}
}

// Create godoc
// @Summary      Crear tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTaskRequest  true  "tarea"
// @Success      201  {object}  dto.APIResponse{data=dto.TaskResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/tasks [post]
func (h *TaskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTaskRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.OK(out))
}

// List godoc
// @Summary      Listar tareas
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Tamaño de página (1-100)"
// @Param        sortBy     query  string  false  "dueDate | createdAt | priority | status | title"
// @Param        sortOrder  query  string  false  "asc | desc"
// @Param        status     query  string  false  "pending | pending_approval | completed | rejected"
// @Param        priority   query  string  false  "low | medium | high"
// @Param        leadId     query  string  false  "Lead"
// @Param        cardCode   query  string  false  "Cliente"
// @Success      200  {object}  dto.APIResponse{data=[]dto.TaskResponse}
// @Router       /api/tasks [get]
func (h *TaskHandler) List(c *fiber.Ctx) error {
	in := dto.TaskListRequest{PageRequest: defaultPage()}
	if err := bindQuery(c, &in); err != nil {
		return err
	}
	list, page, err := h.uc.List(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.Paged(list, page))
}

// Get godoc
// @Summary      Detalle de tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.APIResponse{data=dto.TaskResponse}
// @Router       /api/tasks/{id} [get]
func (h *TaskHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Update godoc
// @Summary      Actualizar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "ID"
// @Param        body  body  dto.UpdateTaskRequest  true  "campos a modificar"
// @Success      200  {object}  dto.APIResponse{data=dto.TaskResponse}
// @Router       /api/tasks/{id} [put]
func (h *TaskHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTaskRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Delete godoc
// @Summary      Eliminar tarea
// @Tags         tasks
// @Security     Bearer
// @Param        id   path  string  true  "ID"
// @Success      204
// @Router       /api/tasks/{id} [delete]
func (h *TaskHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), actorFrom(c), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Submit godoc
// @Summary      Enviar tarea a aprobación
// @Description  Solo el asignado; pending → pending_approval.
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.APIResponse{data=dto.TaskResponse}
// @Failure      400  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/tasks/{id}/submit [post]
func (h *TaskHandler) Submit(c *fiber.Ctx) error {
	out, err := h.uc.Submit(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Approve godoc
// @Summary      Aprobar tarea
// @Tags         tasks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID"
// @Success      200  {object}  dto.APIResponse{data=dto.TaskResponse}
// @Failure      400  {object}  dto.APIResponse
// @Failure      403  {object}  dto.APIResponse
// @Router       /api/tasks/{id}/approve [post]
func (h *TaskHandler) Approve(c *fiber.Ctx) error {
	out, err := h.uc.Approve(c.UserContext(), actorFrom(c), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}

// Reject godoc
// @Summary      Rechazar tarea
// @Tags         tasks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string             true  "ID"
// @Param        body  body  dto.RejectRequest  true  "motivo"
// @Success      200  {object}  dto.APIResponse{data=dto.TaskResponse}
// @Failure      400  {object}  dto.APIResponse
// @Router       /api/tasks/{id}/reject [post]
func (h *TaskHandler) Reject(c *fiber.Ctx) error {
	var in dto.RejectRequest
	if err := bindBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Reject(c.UserContext(), actorFrom(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(dto.OK(out))
}
