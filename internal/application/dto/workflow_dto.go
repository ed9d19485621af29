package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateLeadRequest entrada para crear un lead.
type CreateLeadRequest struct {
	Name       string `json:"name" validate:"required,max=200"`
	Company    string `json:"company" validate:"omitempty,max=200"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=50"`
	Source     string `json:"source" validate:"omitempty,max=100"`
	AssignedTo string `json:"assignedTo" validate:"omitempty"`
}

// UpdateLeadRequest campos modificables de un lead (nil = sin cambio).
type UpdateLeadRequest struct {
	Name       *string `json:"name" validate:"omitempty,max=200"`
	Company    *string `json:"company" validate:"omitempty,max=200"`
	Email      *string `json:"email" validate:"omitempty,email"`
	Phone      *string `json:"phone" validate:"omitempty,max=50"`
	Status     *string `json:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	AssignedTo *string `json:"assignedTo"`
}

// LeadListRequest filtros de GET /leads.
type LeadListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=new contacted qualified converted lost"`
	Search string `query:"search"`
}

// CreateTaskRequest entrada para crear una tarea.
type CreateTaskRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Description string    `json:"description" validate:"omitempty,max=2000"`
	Priority    string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     time.Time `json:"dueDate" validate:"required"`
	AssignedTo  string    `json:"assignedTo" validate:"omitempty"`
	LeadID      string    `json:"leadId" validate:"omitempty"`
	CardCode    string    `json:"cardCode" validate:"omitempty"`
}

// UpdateTaskRequest campos modificables de una tarea. El estado solo cambia
// por los endpoints de aprobación.
type UpdateTaskRequest struct {
	Title       *string    `json:"title" validate:"omitempty,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Priority    *string    `json:"priority" validate:"omitempty,oneof=low medium high"`
	DueDate     *time.Time `json:"dueDate"`
	AssignedTo  *string    `json:"assignedTo"`
}

// TaskListRequest filtros de GET /tasks.
type TaskListRequest struct {
	PageRequest
	Status   string `query:"status" validate:"omitempty,oneof=pending pending_approval completed rejected"`
	Priority string `query:"priority" validate:"omitempty,oneof=low medium high"`
	LeadID   string `query:"leadId"`
	CardCode string `query:"cardCode"`
}

// CreateDealRequest entrada para crear un negocio.
type CreateDealRequest struct {
	Title      string          `json:"title" validate:"required,max=200"`
	CardCode   string          `json:"cardCode" validate:"omitempty"`
	LeadID     string          `json:"leadId" validate:"omitempty"`
	Value      decimal.Decimal `json:"value"`
	Stage      string          `json:"stage" validate:"omitempty,oneof=prospecting qualification proposal negotiation won lost"`
	CloseDate  *time.Time      `json:"closeDate"`
	AssignedTo string          `json:"assignedTo" validate:"omitempty"`
}

// UpdateDealRequest campos modificables de un negocio.
type UpdateDealRequest struct {
	Title      *string          `json:"title" validate:"omitempty,max=200"`
	Value      *decimal.Decimal `json:"value"`
	Stage      *string          `json:"stage" validate:"omitempty,oneof=prospecting qualification proposal negotiation won lost"`
	CloseDate  *time.Time       `json:"closeDate"`
	AssignedTo *string          `json:"assignedTo"`
}

// DealListRequest filtros de GET /deals.
type DealListRequest struct {
	PageRequest
	Stage    string `query:"stage" validate:"omitempty,oneof=prospecting qualification proposal negotiation won lost"`
	CardCode string `query:"cardCode"`
}

// CreateQuotationRequest entrada para crear una cotización.
type CreateQuotationRequest struct {
	CardCode string          `json:"cardCode" validate:"required"`
	DocNum   int64           `json:"docNum" validate:"omitempty,min=1"`
	DocDate  time.Time       `json:"docDate" validate:"required"`
	DocTotal decimal.Decimal `json:"docTotal"`
}

// QuotationListRequest filtros de GET /quotations.
type QuotationListRequest struct {
	PageRequest
	Status   string `query:"status" validate:"omitempty,oneof=pending pending_approval completed rejected"`
	CardCode string `query:"cardCode"`
}

// RejectRequest motivo de rechazo en el flujo de aprobación.
type RejectRequest struct {
	Reason string `json:"reason" validate:"required,max=500"`
}

// CustomerListRequest filtros de GET /customers.
type CustomerListRequest struct {
	PageRequest
	Status string `query:"status" validate:"omitempty,oneof=active inactive"`
	Search string `query:"search"`
}

// DocumentListRequest filtros de GET /invoices y GET /payments.
type DocumentListRequest struct {
	PageRequest
	CardCode string `query:"cardCode"`
	From     string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To       string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}
