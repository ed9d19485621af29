package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// KPIs del día y del mes en curso, top clientes del mes y trabajo abierto.
type DashboardSummaryDTO struct {
	// Métricas del día actual (00:00 – 23:59)
	TodaySales    decimal.Decimal `json:"todaySales"`
	TodayInvoices int             `json:"todayInvoices"`

	// Métricas del mes en curso (día 1 – hoy)
	MonthlySales    decimal.Decimal `json:"monthlySales"`
	MonthlyInvoices int             `json:"monthlyInvoices"`
	AvgTicket       decimal.Decimal `json:"avgTicket"`

	TopCustomers []TopCustomerDTO `json:"topCustomers"`

	OpenTasks        int             `json:"openTasks"`
	OverdueTasks     int             `json:"overdueTasks"`
	PendingApprovals int             `json:"pendingApprovals"`
	OpenDeals        int             `json:"openDeals"`
	PipelineValue    decimal.Decimal `json:"pipelineValue"`
	NewLeads         int             `json:"newLeads"`

	DateLabel string `json:"dateLabel"` // ej: "Febrero 2026"
}

// TopCustomerDTO cliente del widget de top ventas.
type TopCustomerDTO struct {
	CardCode     string          `json:"cardCode"`
	Name         string          `json:"name"`
	InvoiceCount int             `json:"invoiceCount"`
	TotalSales   decimal.Decimal `json:"totalSales"`
	SharePercent decimal.Decimal `json:"sharePercent"` // sobre las ventas del mes
}
