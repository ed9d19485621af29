package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrder representa un pedido de venta del ERP.
type SalesOrder struct {
	DocEntry int64
	DocNum   int64
	CardCode string
	DocDate  time.Time
	DocTotal decimal.Decimal
	Status   string // open, closed, cancelled
}

// Quotation representa una cotización sujeta al flujo de aprobación.
type Quotation struct {
	ID              string
	DocNum          int64
	CardCode        string
	DocDate         time.Time
	DocTotal        decimal.Decimal
	Status          string // ver approval.Status*
	CreatedBy       string
	ApprovedBy      string
	RejectionReason string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Call registra una llamada comercial de un agente a un cliente.
type Call struct {
	ID              string
	CardCode        string
	AgentID         string
	CallDate        time.Time
	DurationMinutes int
	Outcome         string // answered, no_answer, callback, closed
	Notes           string
}
