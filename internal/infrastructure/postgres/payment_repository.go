package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

var paymentColumns = []string{
	"doc_entry", "doc_num", "card_code", "doc_date", "cash_sum", "transfer_sum", "check_sum", "credit_sum", "created_at",
}

// PaymentRepo lectura de recibos de pago y sus enlaces a facturas.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador.
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// ListByCustomers pagos de los clientes dados, fecha descendente.
func (r *PaymentRepo) ListByCustomers(ctx context.Context, cardCodes []string, dr repository.DateRange) ([]entity.Payment, error) {
	if len(cardCodes) == 0 {
		return []entity.Payment{}, nil
	}
	b := psql.Select(paymentColumns...).From("payments").Where(sq.Eq{"card_code": cardCodes})
	b = withRange(b, "doc_date", dr).OrderBy("doc_date DESC", "doc_entry DESC")
	return r.query(ctx, b)
}

// LinksByCustomer enlaces pago-factura del cliente, filtrados por fecha de pago.
func (r *PaymentRepo) LinksByCustomer(ctx context.Context, cardCode string, dr repository.DateRange) ([]entity.PaymentLink, error) {
	b := psql.Select(
		"pi.payment_doc_entry", "pi.invoice_doc_entry", "p.doc_date", "i.doc_date", "pi.applied_amount",
	).
		From("payment_invoices pi").
		Join("payments p ON p.doc_entry = pi.payment_doc_entry").
		Join("invoices i ON i.doc_entry = pi.invoice_doc_entry").
		Where(sq.Eq{"p.card_code": cardCode})
	b = withRange(b, "p.doc_date", dr).OrderBy("p.doc_date", "pi.payment_doc_entry")

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build payment links: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("payment links: %w", err)
	}
	defer rows.Close()
	links := make([]entity.PaymentLink, 0)
	for rows.Next() {
		var l entity.PaymentLink
		if err := rows.Scan(&l.PaymentDocEntry, &l.InvoiceDocEntry, &l.PaymentDate, &l.InvoiceDate, &l.AppliedAmount); err != nil {
			return nil, fmt.Errorf("scan payment link: %w", err)
		}
		links = append(links, l)
	}
	return links, rows.Err()
}

// List listado paginado dentro del alcance.
func (r *PaymentRepo) List(ctx context.Context, f repository.DocumentFilter) ([]entity.Payment, int, error) {
	total, err := count(ctx, r.q, documentFilter(psql.Select("count(*)").From("payments"), f))
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []entity.Payment{}, 0, nil
	}
	b := withPage(documentFilter(psql.Select(paymentColumns...).From("payments"), f), f.ListOptions, "doc_entry")
	list, err := r.query(ctx, b)
	return list, total, err
}

func (r *PaymentRepo) query(ctx context.Context, b sq.SelectBuilder) ([]entity.Payment, error) {
	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list payments: %w", err)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	list := make([]entity.Payment, 0)
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(
			&p.DocEntry, &p.DocNum, &p.CardCode, &p.DocDate,
			&p.CashSum, &p.TransferSum, &p.CheckSum, &p.CreditSum, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}
