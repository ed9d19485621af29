package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

// Estados de usuario.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema (agente, gerente o administrador).
// ManagerID apunta a otro User; la base de datos no impide ciclos.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, manager, agent
	ManagerID    string // vacío si no reporta a nadie
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanBeAssigned indica si el usuario puede ser dueño de leads, tareas, negocios o clientes.
func (u *User) CanBeAssigned() bool {
	return u != nil && u.Status == UserStatusActive &&
		(u.Role == RoleAgent || u.Role == RoleManager)
}
