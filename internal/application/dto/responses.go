package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// LeadResponse salida de un lead.
type LeadResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Company    string    `json:"company,omitempty"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	Source     string    `json:"source,omitempty"`
	Status     string    `json:"status"`
	AssignedTo string    `json:"assignedTo,omitempty"`
	CreatedBy  string    `json:"createdBy"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CreateLeadResponse lead creado y, si corresponde, su tarea de seguimiento.
type CreateLeadResponse struct {
	Lead         LeadResponse  `json:"lead"`
	FollowUpTask *TaskResponse `json:"followUpTask,omitempty"`
}

// TaskResponse salida de una tarea.
type TaskResponse struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Description     string     `json:"description,omitempty"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	DueDate         time.Time  `json:"dueDate"`
	AssignedTo      string     `json:"assignedTo"`
	CreatedBy       string     `json:"createdBy"`
	LeadID          string     `json:"leadId,omitempty"`
	CardCode        string     `json:"cardCode,omitempty"`
	ApprovedBy      string     `json:"approvedBy,omitempty"`
	RejectionReason string     `json:"rejectionReason,omitempty"`
	CompletedAt     *time.Time `json:"completedAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// DealResponse salida de un negocio.
type DealResponse struct {
	ID         string          `json:"id"`
	Title      string          `json:"title"`
	CardCode   string          `json:"cardCode,omitempty"`
	LeadID     string          `json:"leadId,omitempty"`
	Value      decimal.Decimal `json:"value"`
	Stage      string          `json:"stage"`
	CloseDate  *time.Time      `json:"closeDate,omitempty"`
	AssignedTo string          `json:"assignedTo"`
	CreatedBy  string          `json:"createdBy"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// QuotationResponse salida de una cotización.
type QuotationResponse struct {
	ID              string          `json:"id"`
	DocNum          int64           `json:"docNum"`
	CardCode        string          `json:"cardCode"`
	DocDate         time.Time       `json:"docDate"`
	DocTotal        decimal.Decimal `json:"docTotal"`
	Status          string          `json:"status"`
	CreatedBy       string          `json:"createdBy"`
	ApprovedBy      string          `json:"approvedBy,omitempty"`
	RejectionReason string          `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	CardCode   string    `json:"cardCode"`
	Name       string    `json:"name"`
	AssignedTo string    `json:"assignedTo,omitempty"`
	Status     string    `json:"status"`
	Email      string    `json:"email,omitempty"`
	Phone      string    `json:"phone,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// InvoiceResponse cabecera de factura en listados.
type InvoiceResponse struct {
	DocEntry   int64           `json:"docEntry"`
	DocNum     int64           `json:"docNum"`
	CardCode   string          `json:"cardCode"`
	DocDate    time.Time       `json:"docDate"`
	DocTotal   decimal.Decimal `json:"docTotal"`
	VatSum     decimal.Decimal `json:"vatSum"`
	PaidToDate decimal.Decimal `json:"paidToDate"`
}

// PaymentResponse recibo de pago en listados.
type PaymentResponse struct {
	DocEntry    int64           `json:"docEntry"`
	DocNum      int64           `json:"docNum"`
	CardCode    string          `json:"cardCode"`
	DocDate     time.Time       `json:"docDate"`
	CashSum     decimal.Decimal `json:"cashSum"`
	TransferSum decimal.Decimal `json:"transferSum"`
	CheckSum    decimal.Decimal `json:"checkSum"`
	CreditSum   decimal.Decimal `json:"creditSum"`
	Total       decimal.Decimal `json:"total"`
}
