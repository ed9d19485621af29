// Package workflow contiene los casos de uso de escritura sobre leads, tareas,
// negocios y cotizaciones, incluido el flujo de aprobación.
package workflow

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

// Tipos de evento publicados al servicio de notificaciones.
const (
	EventLeadAssigned       = "lead.assigned"
	EventTaskAssigned       = "task.assigned"
	EventTaskSubmitted      = "task.submitted"
	EventTaskApproved       = "task.approved"
	EventTaskRejected       = "task.rejected"
	EventQuotationSubmitted = "quotation.submitted"
	EventQuotationApproved  = "quotation.approved"
	EventQuotationRejected  = "quotation.rejected"
)

// Event notificación de un cambio relevante para un usuario.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	ActorID    string    `json:"actorId"`
	UserID     string    `json:"userId"` // destinatario
	Message    string    `json:"message,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Notifier publica eventos. Las fallas de envío no abortan la operación.
type Notifier interface {
	Notify(ctx context.Context, e Event)
}

// NopNotifier descarta los eventos (sin broker configurado).
type NopNotifier struct{}

// Notify implementa Notifier.
func (NopNotifier) Notify(context.Context, Event) {}

// Deps dependencias comunes de los casos de uso de workflow.
type Deps struct {
	Users    repository.UserRepository
	Access   *access.Resolver
	Notifier Notifier
	Clock    scoring.Clock
}

func (d Deps) withDefaults() Deps {
	if d.Notifier == nil {
		d.Notifier = NopNotifier{}
	}
	if d.Clock == nil {
		d.Clock = scoring.SystemClock{}
	}
	return d
}

// validateAssignee verifica que userID exista y tenga un rol asignable.
func (d Deps) validateAssignee(ctx context.Context, userID string) error {
	u, err := d.Users.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("validar asignado: %w", err)
	}
	if !u.CanBeAssigned() {
		return domain.ErrInvalidAssignee
	}
	return nil
}

// resolveAssignee usa el actor como asignado por defecto y valida que el
// asignado quede dentro de su alcance.
func (d Deps) resolveAssignee(ctx context.Context, actor access.Actor, requested string) (string, error) {
	if requested == "" {
		requested = actor.UserID
	}
	if err := d.validateAssignee(ctx, requested); err != nil {
		return "", err
	}
	if err := d.Access.CanView(ctx, actor, requested); err != nil {
		return "", err
	}
	return requested, nil
}

// canSee visible si el dueño o el creador caen en el alcance del actor.
func (d Deps) canSee(ctx context.Context, actor access.Actor, ownerID, creatorID string) error {
	scope, err := d.Access.ScopeFor(ctx, actor)
	if err != nil {
		return err
	}
	if scope.Allows(ownerID) || scope.Allows(creatorID) {
		return nil
	}
	return domain.ErrForbidden
}

// canApprove solo gerentes (sobre su equipo) y admins aprueban o rechazan.
func (d Deps) canApprove(ctx context.Context, actor access.Actor, ownerID string) error {
	if !actor.IsAdmin() && !actor.IsManager() {
		return domain.ErrForbidden
	}
	return d.Access.CanView(ctx, actor, ownerID)
}
