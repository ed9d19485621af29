package entity

import "time"

// Estados de cliente.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer representa un socio de negocio (cliente) sincronizado desde el ERP.
// CardCode es la clave única que referencian facturas, pagos, pedidos y cotizaciones.
type Customer struct {
	CardCode   string
	Name       string
	AssignedTo string // UserID del agente dueño de la cuenta; vacío si no está asignado
	Status     string // active, inactive
	Email      string
	Phone      string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
