package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

// InsightsUseCase resume el historial visible en tarjetas de KPI.
type InsightsUseCase struct {
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	payments  repository.PaymentRepository
	access    *access.Resolver
	engine    *scoring.Engine
}

// NewInsightsUseCase construye el caso de uso.
func NewInsightsUseCase(
	customers repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	resolver *access.Resolver,
	engine *scoring.Engine,
) *InsightsUseCase {
	return &InsightsUseCase{customers: customers, invoices: invoices, payments: payments, access: resolver, engine: engine}
}

// Insights calcula tarjetas y datos destacados para la ventana r.
// Las facturas se leen completas: la tendencia necesita la ventana anterior y
// los datos destacados usan el valor histórico.
func (uc *InsightsUseCase) Insights(ctx context.Context, actor access.Actor, r repository.DateRange) (*scoring.BusinessInsights, error) {
	scope, err := uc.access.ScopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customers.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("insights: clientes: %w", err)
	}

	in := scoring.InsightsInput{Customers: customers, From: r.From, To: r.To}
	if len(customers) > 0 {
		codes := cardCodes(customers)

		type invoicesResult struct {
			rows []entity.Invoice
			err  error
		}
		type paymentsResult struct {
			rows []entity.Payment
			err  error
		}
		invCh := make(chan invoicesResult, 1)
		payCh := make(chan paymentsResult, 1)
		go func() {
			rows, err := uc.invoices.ListByCustomers(ctx, codes, repository.DateRange{})
			invCh <- invoicesResult{rows, err}
		}()
		go func() {
			rows, err := uc.payments.ListByCustomers(ctx, codes, r)
			payCh <- paymentsResult{rows, err}
		}()
		inv := <-invCh
		pay := <-payCh
		if inv.err != nil {
			return nil, fmt.Errorf("insights: facturas: %w", inv.err)
		}
		if pay.err != nil {
			return nil, fmt.Errorf("insights: pagos: %w", pay.err)
		}
		in.Invoices = inv.rows
		in.Payments = pay.rows
	}

	out := uc.engine.BusinessInsights(in)
	return &out, nil
}
