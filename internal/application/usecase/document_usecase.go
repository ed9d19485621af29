package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// DocumentSortFields campos ordenables de facturas y pagos.
var DocumentSortFields = map[string]string{
	"docDate":  "doc_date",
	"docNum":   "doc_num",
	"cardCode": "card_code",
}

// DocumentUseCase listados paginados de facturas y pagos.
type DocumentUseCase struct {
	invoices repository.InvoiceRepository
	payments repository.PaymentRepository
	access   *access.Resolver
}

// NewDocumentUseCase construye el caso de uso.
func NewDocumentUseCase(invoices repository.InvoiceRepository, payments repository.PaymentRepository, resolver *access.Resolver) *DocumentUseCase {
	return &DocumentUseCase{invoices: invoices, payments: payments, access: resolver}
}

// Invoices lista cabeceras de factura de los clientes visibles.
func (uc *DocumentUseCase) Invoices(ctx context.Context, actor access.Actor, in dto.DocumentListRequest) ([]dto.InvoiceResponse, *dto.Pagination, error) {
	f, err := uc.filter(ctx, actor, in)
	if err != nil {
		return nil, nil, err
	}
	list, total, err := uc.invoices.List(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("listar facturas: %w", err)
	}
	out := make([]dto.InvoiceResponse, 0, len(list))
	for _, inv := range list {
		out = append(out, dto.InvoiceResponse{
			DocEntry:   inv.DocEntry,
			DocNum:     inv.DocNum,
			CardCode:   inv.CardCode,
			DocDate:    inv.DocDate,
			DocTotal:   inv.DocTotal,
			VatSum:     inv.VatSum,
			PaidToDate: inv.PaidToDate,
		})
	}
	return out, dto.NewPagination(f.Page, f.Limit, total), nil
}

// Payments lista recibos de pago de los clientes visibles.
func (uc *DocumentUseCase) Payments(ctx context.Context, actor access.Actor, in dto.DocumentListRequest) ([]dto.PaymentResponse, *dto.Pagination, error) {
	f, err := uc.filter(ctx, actor, in)
	if err != nil {
		return nil, nil, err
	}
	list, total, err := uc.payments.List(ctx, f)
	if err != nil {
		return nil, nil, fmt.Errorf("listar pagos: %w", err)
	}
	out := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.PaymentResponse{
			DocEntry:    p.DocEntry,
			DocNum:      p.DocNum,
			CardCode:    p.CardCode,
			DocDate:     p.DocDate,
			CashSum:     p.CashSum,
			TransferSum: p.TransferSum,
			CheckSum:    p.CheckSum,
			CreditSum:   p.CreditSum,
			Total:       p.Total(),
		})
	}
	return out, dto.NewPagination(f.Page, f.Limit, total), nil
}

func (uc *DocumentUseCase) filter(ctx context.Context, actor access.Actor, in dto.DocumentListRequest) (repository.DocumentFilter, error) {
	opts, err := in.ListOptions(DocumentSortFields, "doc_date")
	if err != nil {
		return repository.DocumentFilter{}, err
	}
	if in.SortBy == "" {
		opts.SortDesc = true
	}
	r, err := ParseDateRange(in.From, in.To)
	if err != nil {
		return repository.DocumentFilter{}, err
	}
	scope, err := uc.access.ScopeFor(ctx, actor)
	if err != nil {
		return repository.DocumentFilter{}, err
	}
	return repository.DocumentFilter{Scope: scope, CardCode: in.CardCode, Range: r, ListOptions: opts}, nil
}

// ParseDateRange interpreta from/to (YYYY-MM-DD). To incluye el día completo.
func ParseDateRange(from, to string) (repository.DateRange, error) {
	var r repository.DateRange
	if from != "" {
		t, err := time.Parse(time.DateOnly, from)
		if err != nil {
			return r, fmt.Errorf("%w: from %q", domain.ErrInvalidInput, from)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.Parse(time.DateOnly, to)
		if err != nil {
			return r, fmt.Errorf("%w: to %q", domain.ErrInvalidInput, to)
		}
		r.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	if !r.From.IsZero() && !r.To.IsZero() && r.To.Before(r.From) {
		return r, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	return r, nil
}
