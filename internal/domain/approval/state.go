// Package approval define la máquina de estados compartida por tareas y cotizaciones:
//
//	pending → pending_approval → {completed, rejected}
package approval

import (
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/domain"
)

// Estados del flujo de aprobación.
const (
	StatusPending         = "pending"
	StatusPendingApproval = "pending_approval"
	StatusCompleted       = "completed"
	StatusRejected        = "rejected"
)

// transitions estados destino permitidos por estado origen.
var transitions = map[string][]string{
	StatusPending:         {StatusPendingApproval},
	StatusPendingApproval: {StatusCompleted, StatusRejected},
}

// IsValidStatus indica si s pertenece al conjunto de estados.
func IsValidStatus(s string) bool {
	switch s {
	case StatusPending, StatusPendingApproval, StatusCompleted, StatusRejected:
		return true
	}
	return false
}

// CanTransition informa si from → to está permitido.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition valida from → to y devuelve domain.ErrInvalidTransition si no aplica.
func Transition(from, to string) error {
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s → %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// IsFinal indica si el estado ya no admite transiciones.
func IsFinal(s string) bool {
	return len(transitions[s]) == 0
}
