// Package analytics contiene los casos de uso de lectura: dashboard,
// recomendaciones, journey del cliente, desempeño de agentes e insights.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

const dashboardTopCustomers = 5 // número de clientes en el widget del dashboard

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera el resumen comercial del día y del mes en curso.
//
// Fuente de datos: AnalyticsRepository (consultas read-only).
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	access        *access.Resolver
	clock         scoring.Clock
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, resolver *access.Resolver, clock scoring.Clock) *DashboardUseCase {
	if clock == nil {
		clock = scoring.SystemClock{}
	}
	return &DashboardUseCase{analyticsRepo: analyticsRepo, access: resolver, clock: clock}
}

// GetSummary construye el DashboardSummaryDTO para el alcance del actor.
//
// Cuatro llamadas en paralelo:
//  1. GetSalesMetrics(hoy)
//  2. GetSalesMetrics(mes)
//  3. GetTopCustomers(mes, top 5)
//  4. GetWorkload(ahora)
func (uc *DashboardUseCase) GetSummary(ctx context.Context, actor access.Actor) (*dto.DashboardSummaryDTO, error) {
	scope, err := uc.access.ScopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()

	// Hoy: 00:00:00.000 – 23:59:59.999
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	todayEnd := todayStart.Add(24*time.Hour - time.Nanosecond)
	// Mes en curso: día 1 a las 00:00 – hoy a las 23:59:59
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	type metricsResult struct {
		revenue decimal.Decimal
		count   int
		err     error
	}
	type topResult struct {
		rows []repository.CustomerSalesResult
		err  error
	}
	type workloadResult struct {
		w   repository.WorkloadResult
		err error
	}

	todayCh := make(chan metricsResult, 1)
	monthCh := make(chan metricsResult, 1)
	topCh := make(chan topResult, 1)
	workCh := make(chan workloadResult, 1)

	go func() {
		rev, n, err := uc.analyticsRepo.GetSalesMetrics(ctx, scope, todayStart, todayEnd)
		todayCh <- metricsResult{rev, n, err}
	}()
	go func() {
		rev, n, err := uc.analyticsRepo.GetSalesMetrics(ctx, scope, monthStart, todayEnd)
		monthCh <- metricsResult{rev, n, err}
	}()
	go func() {
		rows, err := uc.analyticsRepo.GetTopCustomers(ctx, scope, monthStart, todayEnd, dashboardTopCustomers)
		topCh <- topResult{rows, err}
	}()
	go func() {
		w, err := uc.analyticsRepo.GetWorkload(ctx, scope, now)
		workCh <- workloadResult{w, err}
	}()

	today := <-todayCh
	month := <-monthCh
	top := <-topCh
	work := <-workCh

	if today.err != nil {
		return nil, fmt.Errorf("dashboard: métricas de hoy: %w", today.err)
	}
	if month.err != nil {
		return nil, fmt.Errorf("dashboard: métricas del mes: %w", month.err)
	}
	if top.err != nil {
		return nil, fmt.Errorf("dashboard: top clientes: %w", top.err)
	}
	if work.err != nil {
		return nil, fmt.Errorf("dashboard: trabajo abierto: %w", work.err)
	}

	avgTicket := decimal.Zero
	if month.count > 0 {
		avgTicket = month.revenue.Div(decimal.NewFromInt(int64(month.count))).Round(2)
	}
	topCustomers := make([]dto.TopCustomerDTO, 0, len(top.rows))
	for _, row := range top.rows {
		share := decimal.Zero
		if !month.revenue.IsZero() {
			share = row.TotalSales.Div(month.revenue).Mul(hundred).Round(2)
		}
		topCustomers = append(topCustomers, dto.TopCustomerDTO{
			CardCode:     row.CardCode,
			Name:         row.Name,
			InvoiceCount: row.InvoiceCount,
			TotalSales:   row.TotalSales.Round(2),
			SharePercent: share,
		})
	}

	return &dto.DashboardSummaryDTO{
		TodaySales:       today.revenue.Round(2),
		TodayInvoices:    today.count,
		MonthlySales:     month.revenue.Round(2),
		MonthlyInvoices:  month.count,
		AvgTicket:        avgTicket,
		TopCustomers:     topCustomers,
		OpenTasks:        work.w.OpenTasks,
		OverdueTasks:     work.w.OverdueTasks,
		PendingApprovals: work.w.PendingApprovals,
		OpenDeals:        work.w.OpenDeals,
		PipelineValue:    work.w.PipelineValue.Round(2),
		NewLeads:         work.w.NewLeads,
		DateLabel:        monthLabel(now),
	}, nil
}

// monthLabel devuelve una etiqueta legible del mes, ej: "Febrero 2026".
func monthLabel(t time.Time) string {
	months := [...]string{
		"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
		"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
	}
	return fmt.Sprintf("%s %d", months[t.Month()-1], t.Year())
}
