package postgres

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard comercial.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// GetSalesMetrics devuelve el total bruto facturado y la cantidad de facturas del período.
// Usa COALESCE para devolver cero si no hay filas (período sin ventas).
func (r *AnalyticsRepo) GetSalesMetrics(
	ctx context.Context,
	scope repository.Scope,
	startDate, endDate time.Time,
) (revenue decimal.Decimal, n int, err error) {
	b := psql.Select("COALESCE(SUM(doc_total), 0)", "COUNT(*)").From("invoices").
		Where(sq.Expr("doc_date BETWEEN ? AND ?", startDate, endDate))
	query, args, err := withCustomerScope(b, scope).ToSql()
	if err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesMetrics build: %w", err)
	}
	if err := r.q.QueryRow(ctx, query, args...).Scan(&revenue, &n); err != nil {
		return decimal.Zero, 0, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return revenue, n, nil
}

// GetTopCustomers devuelve los `limit` clientes con mayor facturación en el período.
func (r *AnalyticsRepo) GetTopCustomers(
	ctx context.Context,
	scope repository.Scope,
	startDate, endDate time.Time,
	limit int,
) ([]repository.CustomerSalesResult, error) {
	b := psql.Select("c.card_code", "c.name", "COUNT(i.doc_entry)", "SUM(i.doc_total) AS total_sales").
		From("invoices i").
		Join("customers c ON c.card_code = i.card_code").
		Where(sq.Expr("i.doc_date BETWEEN ? AND ?", startDate, endDate)).
		GroupBy("c.card_code", "c.name").
		OrderBy("total_sales DESC", "c.card_code").
		Limit(uint64(limit))
	b = withScope(b, "c.assigned_to", scope)

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopCustomers build: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetTopCustomers: %w", err)
	}
	defer rows.Close()

	var results []repository.CustomerSalesResult
	for rows.Next() {
		var row repository.CustomerSalesResult
		if err := rows.Scan(&row.CardCode, &row.Name, &row.InvoiceCount, &row.TotalSales); err != nil {
			return nil, fmt.Errorf("analytics.GetTopCustomers scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// GetWorkload cuenta el trabajo abierto del alcance a la fecha now.
// Tareas, leads y negocios se filtran por asignado o creador; cotizaciones por creador.
func (r *AnalyticsRepo) GetWorkload(ctx context.Context, scope repository.Scope, now time.Time) (repository.WorkloadResult, error) {
	var w repository.WorkloadResult

	tasks := withOwnerScope(psql.Select(
		"COUNT(*) FILTER (WHERE status IN ('pending', 'pending_approval'))",
	).Column(sq.Expr("COUNT(*) FILTER (WHERE status = 'pending' AND due_date < ?)", now)).
		Column("COUNT(*) FILTER (WHERE status = 'pending_approval')").
		From("tasks"), scope)
	var taskApprovals int
	if err := r.scan(ctx, tasks, &w.OpenTasks, &w.OverdueTasks, &taskApprovals); err != nil {
		return w, fmt.Errorf("analytics.GetWorkload tasks: %w", err)
	}

	quotes := withScope(psql.Select("COUNT(*)").From("quotations").
		Where(sq.Eq{"status": "pending_approval"}), "created_by", scope)
	var quoteApprovals int
	if err := r.scan(ctx, quotes, &quoteApprovals); err != nil {
		return w, fmt.Errorf("analytics.GetWorkload quotations: %w", err)
	}
	w.PendingApprovals = taskApprovals + quoteApprovals

	deals := withOwnerScope(psql.Select(
		"COUNT(*)", "COALESCE(SUM(value), 0)",
	).From("deals").Where(sq.NotEq{"stage": []string{"won", "lost"}}), scope)
	if err := r.scan(ctx, deals, &w.OpenDeals, &w.PipelineValue); err != nil {
		return w, fmt.Errorf("analytics.GetWorkload deals: %w", err)
	}

	leads := withOwnerScope(psql.Select("COUNT(*)").From("leads").Where(sq.Eq{"status": "new"}), scope)
	if err := r.scan(ctx, leads, &w.NewLeads); err != nil {
		return w, fmt.Errorf("analytics.GetWorkload leads: %w", err)
	}
	return w, nil
}

func (r *AnalyticsRepo) scan(ctx context.Context, b sq.SelectBuilder, dest ...any) error {
	query, args, err := b.ToSql()
	if err != nil {
		return err
	}
	return r.q.QueryRow(ctx, query, args...).Scan(dest...)
}
