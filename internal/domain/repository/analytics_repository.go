package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CustomerSalesResult ventas agregadas de un cliente en un período.
type CustomerSalesResult struct {
	CardCode     string
	Name         string
	InvoiceCount int
	TotalSales   decimal.Decimal
}

// WorkloadResult trabajo abierto dentro del alcance.
type WorkloadResult struct {
	OpenTasks        int
	OverdueTasks     int
	PendingApprovals int // tareas + cotizaciones en pending_approval
	OpenDeals        int
	PipelineValue    decimal.Decimal
	NewLeads         int
}

// AnalyticsRepository consultas agregadas de solo lectura para el dashboard.
type AnalyticsRepository interface {
	// GetSalesMetrics devuelve el total bruto facturado y la cantidad de facturas
	// en el rango. Usa COALESCE para devolver cero si no hay facturas.
	GetSalesMetrics(ctx context.Context, scope Scope, startDate, endDate time.Time) (revenue decimal.Decimal, count int, err error)

	// GetTopCustomers devuelve los `limit` clientes con mayor facturación en el período.
	GetTopCustomers(ctx context.Context, scope Scope, startDate, endDate time.Time, limit int) ([]CustomerSalesResult, error)

	// GetWorkload cuenta tareas, aprobaciones, negocios y leads abiertos a la fecha now.
	GetWorkload(ctx context.Context, scope Scope, now time.Time) (WorkloadResult, error)
}
