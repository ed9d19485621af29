package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.InvoiceRepository = (*InvoiceRepo)(nil)

var invoiceColumns = []string{
	"doc_entry", "doc_num", "card_code", "doc_date", "doc_total", "vat_sum", "paid_to_date", "created_at",
}

// InvoiceRepo implementación de InvoiceRepository (usable con pool o tx).
type InvoiceRepo struct {
	q Querier
}

// NewInvoiceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInvoiceRepository(q Querier) *InvoiceRepo {
	return &InvoiceRepo{q: q}
}

// CreateBatch inserta cabeceras y líneas en una transacción; si algo falla no queda nada.
func (r *InvoiceRepo) CreateBatch(ctx context.Context, invoices []entity.Invoice) error {
	if len(invoices) == 0 {
		return nil
	}
	db, ok := r.q.(beginner)
	if !ok {
		return fmt.Errorf("create invoices: el querier no admite transacciones")
	}

	batch := &pgx.Batch{}
	for _, inv := range invoices {
		batch.Queue(`
			INSERT INTO invoices (doc_entry, doc_num, card_code, doc_date, doc_total, vat_sum, paid_to_date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			inv.DocEntry, inv.DocNum, inv.CardCode, inv.DocDate, inv.DocTotal, inv.VatSum, inv.PaidToDate,
		)
		for _, l := range inv.Lines {
			batch.Queue(`
				INSERT INTO invoice_lines (doc_entry, line_num, item_code, description, quantity, price, line_total)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				inv.DocEntry, l.LineNum, l.ItemCode, l.Description, l.Quantity, l.Price, l.LineTotal,
			)
		}
	}
	return NewTxRunner(db).Run(ctx, func(tx pgx.Tx) error {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert invoices: %w", domain.ErrDuplicate)
			}
			return fmt.Errorf("insert invoices: %w", err)
		}
		return nil
	})
}

// ExistingDocEntries devuelve cuáles de los DocEntry ya están guardados.
func (r *InvoiceRepo) ExistingDocEntries(ctx context.Context, docEntries []int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	if len(docEntries) == 0 {
		return out, nil
	}
	rows, err := r.q.Query(ctx, `SELECT doc_entry FROM invoices WHERE doc_entry = ANY($1)`, docEntries)
	if err != nil {
		return nil, fmt.Errorf("existing invoices: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var e int64
		if err := rows.Scan(&e); err != nil {
			return nil, fmt.Errorf("scan doc_entry: %w", err)
		}
		out[e] = true
	}
	return out, rows.Err()
}

// ListByCustomers cabeceras de los clientes dados, fecha descendente.
func (r *InvoiceRepo) ListByCustomers(ctx context.Context, cardCodes []string, dr repository.DateRange) ([]entity.Invoice, error) {
	if len(cardCodes) == 0 {
		return []entity.Invoice{}, nil
	}
	b := psql.Select(invoiceColumns...).From("invoices").Where(sq.Eq{"card_code": cardCodes})
	b = withRange(b, "doc_date", dr).OrderBy("doc_date DESC", "doc_entry DESC")
	return r.query(ctx, b)
}

// ListWithLines facturas de un cliente con sus líneas.
func (r *InvoiceRepo) ListWithLines(ctx context.Context, cardCode string, dr repository.DateRange) ([]entity.Invoice, error) {
	b := psql.Select(invoiceColumns...).From("invoices").Where(sq.Eq{"card_code": cardCode})
	b = withRange(b, "doc_date", dr).OrderBy("doc_date DESC", "doc_entry DESC")
	invoices, err := r.query(ctx, b)
	if err != nil || len(invoices) == 0 {
		return invoices, err
	}

	entries := make([]int64, len(invoices))
	index := make(map[int64]int, len(invoices))
	for i, inv := range invoices {
		entries[i] = inv.DocEntry
		index[inv.DocEntry] = i
	}
	rows, err := r.q.Query(ctx, `
		SELECT doc_entry, line_num, item_code, description, quantity, price, line_total
		FROM invoice_lines WHERE doc_entry = ANY($1)
		ORDER BY doc_entry, line_num`, entries)
	if err != nil {
		return nil, fmt.Errorf("list invoice lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.InvoiceLine
		if err := rows.Scan(&l.DocEntry, &l.LineNum, &l.ItemCode, &l.Description, &l.Quantity, &l.Price, &l.LineTotal); err != nil {
			return nil, fmt.Errorf("scan invoice line: %w", err)
		}
		i := index[l.DocEntry]
		invoices[i].Lines = append(invoices[i].Lines, l)
	}
	return invoices, rows.Err()
}

// List listado paginado de cabeceras dentro del alcance.
func (r *InvoiceRepo) List(ctx context.Context, f repository.DocumentFilter) ([]entity.Invoice, int, error) {
	total, err := count(ctx, r.q, documentFilter(psql.Select("count(*)").From("invoices"), f))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Invoice{}, 0, nil
	}
	b := withPage(documentFilter(psql.Select(invoiceColumns...).From("invoices"), f), f.ListOptions, "doc_entry")
	list, err := r.query(ctx, b)
	return list, total, err
}

func (r *InvoiceRepo) query(ctx context.Context, b sq.SelectBuilder) ([]entity.Invoice, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list invoices: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Invoice, 0)
	for rows.Next() {
		var inv entity.Invoice
		if err := rows.Scan(
			&inv.DocEntry, &inv.DocNum, &inv.CardCode, &inv.DocDate,
			&inv.DocTotal, &inv.VatSum, &inv.PaidToDate, &inv.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan invoice: %w", err)
		}
		list = append(list, inv)
	}
	return list, rows.Err()
}

// documentFilter filtros comunes de facturas y pagos.
func documentFilter(b sq.SelectBuilder, f repository.DocumentFilter) sq.SelectBuilder {
	b = withCustomerScope(b, f.Scope)
	if f.CardCode != "" {
		b = b.Where(sq.Eq{"card_code": f.CardCode})
	}
	return withRange(b, "doc_date", f.Range)
}
