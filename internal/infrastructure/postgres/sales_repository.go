package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var (
	_ repository.OrderRepository     = (*OrderRepo)(nil)
	_ repository.CallRepository      = (*CallRepo)(nil)
	_ repository.QuotationRepository = (*QuotationRepo)(nil)
)

// OrderRepo lectura de pedidos de venta.
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador.
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// ListByCustomers pedidos de los clientes dados.
func (r *OrderRepo) ListByCustomers(ctx context.Context, cardCodes []string, dr repository.DateRange) ([]entity.SalesOrder, error) {
	if len(cardCodes) == 0 {
		return []entity.SalesOrder{}, nil
	}
	b := psql.Select("doc_entry", "doc_num", "card_code", "doc_date", "doc_total", "status").
		From("sales_orders").Where(sq.Eq{"card_code": cardCodes})
	query, args, err := withRange(b, "doc_date", dr).OrderBy("doc_date DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list orders: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	list := make([]entity.SalesOrder, 0)
	for rows.Next() {
		var o entity.SalesOrder
		if err := rows.Scan(&o.DocEntry, &o.DocNum, &o.CardCode, &o.DocDate, &o.DocTotal, &o.Status); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
	}
	return list, rows.Err()
}

// CallRepo lectura de llamadas comerciales.
type CallRepo struct {
	q Querier
}

// NewCallRepository construye el adaptador.
func NewCallRepository(q Querier) *CallRepo {
	return &CallRepo{q: q}
}

// ListByAgent llamadas de un agente en el rango.
func (r *CallRepo) ListByAgent(ctx context.Context, agentID string, dr repository.DateRange) ([]entity.Call, error) {
	b := psql.Select("id::text", "card_code", "agent_id::text", "call_date", "duration_minutes", "outcome", "notes").
		From("calls").Where(sq.Eq{"agent_id": agentID})
	query, args, err := withRange(b, "call_date", dr).OrderBy("call_date DESC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list calls: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list calls: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Call, 0)
	for rows.Next() {
		var c entity.Call
		if err := rows.Scan(&c.ID, &c.CardCode, &c.AgentID, &c.CallDate, &c.DurationMinutes, &c.Outcome, &c.Notes); err != nil {
			return nil, fmt.Errorf("scan call: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

var quotationColumns = []string{
	"id::text", "doc_num", "card_code", "doc_date", "doc_total", "status", "created_by::text",
	"COALESCE(approved_by::text, '')", "rejection_reason", "created_at", "updated_at",
}

// QuotationRepo persistencia de cotizaciones.
type QuotationRepo struct {
	q Querier
}

// NewQuotationRepository construye el adaptador.
func NewQuotationRepository(q Querier) *QuotationRepo {
	return &QuotationRepo{q: q}
}

// Create persiste una cotización.
func (r *QuotationRepo) Create(ctx context.Context, qt *entity.Quotation) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quotations (id, doc_num, card_code, doc_date, doc_total, status, created_by, approved_by, rejection_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		qt.ID, qt.DocNum, qt.CardCode, qt.DocDate, qt.DocTotal, qt.Status, qt.CreatedBy,
		nullable(qt.ApprovedBy), qt.RejectionReason, qt.CreatedAt, qt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quotation: %w", err)
	}
	return nil
}

// GetByID devuelve nil, nil si no existe.
func (r *QuotationRepo) GetByID(ctx context.Context, id string) (*entity.Quotation, error) {
	query, args, err := psql.Select(quotationColumns...).From("quotations").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get quotation: %w", err)
	}
	qt, err := scanQuotation(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRow(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quotation: %w", err)
	}
	return qt, nil
}

// Update guarda estado y campos de aprobación.
func (r *QuotationRepo) Update(ctx context.Context, qt *entity.Quotation) error {
	_, err := r.q.Exec(ctx, `
		UPDATE quotations SET doc_num = $2, doc_date = $3, doc_total = $4, status = $5,
			approved_by = $6, rejection_reason = $7, updated_at = $8
		WHERE id = $1`,
		qt.ID, qt.DocNum, qt.DocDate, qt.DocTotal, qt.Status, nullable(qt.ApprovedBy), qt.RejectionReason, qt.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update quotation: %w", err)
	}
	return nil
}

// List listado paginado de cotizaciones creadas dentro del alcance.
func (r *QuotationRepo) List(ctx context.Context, f repository.QuotationFilter) ([]entity.Quotation, int, error) {
	filter := func(b sq.SelectBuilder) sq.SelectBuilder {
		b = withScope(b, "created_by", f.Scope)
		if f.Status != "" {
			b = b.Where(sq.Eq{"status": f.Status})
		}
		if f.CardCode != "" {
			b = b.Where(sq.Eq{"card_code": f.CardCode})
		}
		return b
	}
	total, err := count(ctx, r.q, filter(psql.Select("count(*)").From("quotations")))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Quotation{}, 0, nil
	}
	list, err := r.query(ctx, withPage(filter(psql.Select(quotationColumns...).From("quotations")), f.ListOptions, "id"))
	return list, total, err
}

// ListByCreator cotizaciones de un usuario en el rango.
func (r *QuotationRepo) ListByCreator(ctx context.Context, userID string, dr repository.DateRange) ([]entity.Quotation, error) {
	b := psql.Select(quotationColumns...).From("quotations").Where(sq.Eq{"created_by": userID})
	return r.query(ctx, withRange(b, "doc_date", dr).OrderBy("doc_date DESC"))
}

func (r *QuotationRepo) query(ctx context.Context, b sq.SelectBuilder) ([]entity.Quotation, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list quotations: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quotations: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Quotation, 0)
	for rows.Next() {
		qt, err := scanQuotation(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quotation: %w", err)
		}
		list = append(list, *qt)
	}
	return list, rows.Err()
}

func scanQuotation(row pgx.Row) (*entity.Quotation, error) {
	var qt entity.Quotation
	if err := row.Scan(
		&qt.ID, &qt.DocNum, &qt.CardCode, &qt.DocDate, &qt.DocTotal, &qt.Status, &qt.CreatedBy,
		&qt.ApprovedBy, &qt.RejectionReason, &qt.CreatedAt, &qt.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &qt, nil
}
