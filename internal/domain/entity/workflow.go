package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de lead.
const (
	LeadStatusNew       = "new"
	LeadStatusContacted = "contacted"
	LeadStatusQualified = "qualified"
	LeadStatusConverted = "converted"
	LeadStatusLost      = "lost"
)

// Lead representa un prospecto comercial.
type Lead struct {
	ID         string
	Name       string
	Company    string
	Email      string
	Phone      string
	Source     string
	Status     string
	AssignedTo string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Prioridades de tarea.
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// Task representa una tarea de seguimiento. Status sigue el flujo de approval.
type Task struct {
	ID              string
	Title           string
	Description     string
	Status          string
	Priority        string
	DueDate         time.Time
	AssignedTo      string
	CreatedBy       string
	LeadID          string // opcional
	CardCode        string // opcional
	ApprovedBy      string
	RejectionReason string
	CompletedAt     *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Etapas de negocio (pipeline).
const (
	DealStageProspecting   = "prospecting"
	DealStageQualification = "qualification"
	DealStageProposal      = "proposal"
	DealStageNegotiation   = "negotiation"
	DealStageWon           = "won"
	DealStageLost          = "lost"
)

// Deal representa una oportunidad de negocio en el pipeline.
type Deal struct {
	ID         string
	Title      string
	CardCode   string // opcional si aún es un lead
	LeadID     string // opcional
	Value      decimal.Decimal
	Stage      string
	CloseDate  *time.Time
	AssignedTo string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IsOpen indica si el negocio sigue en el pipeline.
func (d Deal) IsOpen() bool {
	return d.Stage != DealStageWon && d.Stage != DealStageLost
}
