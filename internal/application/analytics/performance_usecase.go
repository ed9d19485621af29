package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

// PerformanceUseCase calcula el desempeño de un agente.
type PerformanceUseCase struct {
	users      repository.UserRepository
	customers  repository.CustomerRepository
	invoices   repository.InvoiceRepository
	orders     repository.OrderRepository
	quotations repository.QuotationRepository
	calls      repository.CallRepository
	access     *access.Resolver
	engine     *scoring.Engine
}

// NewPerformanceUseCase construye el caso de uso.
func NewPerformanceUseCase(
	users repository.UserRepository,
	customers repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	orders repository.OrderRepository,
	quotations repository.QuotationRepository,
	calls repository.CallRepository,
	resolver *access.Resolver,
	engine *scoring.Engine,
) *PerformanceUseCase {
	return &PerformanceUseCase{
		users:      users,
		customers:  customers,
		invoices:   invoices,
		orders:     orders,
		quotations: quotations,
		calls:      calls,
		access:     resolver,
		engine:     engine,
	}
}

// AgentPerformance métricas del agente en el rango. El actor debe ser el propio
// agente, su gerente directo o un admin.
func (uc *PerformanceUseCase) AgentPerformance(
	ctx context.Context,
	actor access.Actor,
	agentID string,
	r repository.DateRange,
) (*scoring.AgentPerformance, error) {
	if err := uc.access.CanManageAgent(ctx, actor, agentID); err != nil {
		return nil, err
	}
	agent, err := uc.users.GetByID(ctx, agentID)
	if err != nil {
		return nil, fmt.Errorf("desempeño: agente: %w", err)
	}
	if agent == nil {
		return nil, domain.ErrNotFound
	}

	// ── Fase 1: clientes, cotizaciones y llamadas en paralelo ────────────────
	type customersResult struct {
		rows []entity.Customer
		err  error
	}
	type quotationsResult struct {
		rows []entity.Quotation
		err  error
	}
	type callsResult struct {
		rows []entity.Call
		err  error
	}
	custCh := make(chan customersResult, 1)
	quoteCh := make(chan quotationsResult, 1)
	callCh := make(chan callsResult, 1)

	go func() {
		rows, err := uc.customers.ListByAssignee(ctx, agentID)
		custCh <- customersResult{rows, err}
	}()
	go func() {
		rows, err := uc.quotations.ListByCreator(ctx, agentID, r)
		quoteCh <- quotationsResult{rows, err}
	}()
	go func() {
		rows, err := uc.calls.ListByAgent(ctx, agentID, r)
		callCh <- callsResult{rows, err}
	}()

	cust := <-custCh
	quotes := <-quoteCh
	calls := <-callCh
	if cust.err != nil {
		return nil, fmt.Errorf("desempeño: clientes: %w", cust.err)
	}
	if quotes.err != nil {
		return nil, fmt.Errorf("desempeño: cotizaciones: %w", quotes.err)
	}
	if calls.err != nil {
		return nil, fmt.Errorf("desempeño: llamadas: %w", calls.err)
	}

	activity := scoring.AgentActivity{
		AsOf:       r.To,
		Agent:      *agent,
		Customers:  cust.rows,
		Quotations: quotes.rows,
		Calls:      calls.rows,
	}

	// ── Fase 2: facturas y pedidos de esos clientes ──────────────────────────
	if len(cust.rows) > 0 {
		codes := cardCodes(cust.rows)
		type invoicesResult struct {
			rows []entity.Invoice
			err  error
		}
		type ordersResult struct {
			rows []entity.SalesOrder
			err  error
		}
		invCh := make(chan invoicesResult, 1)
		ordCh := make(chan ordersResult, 1)
		go func() {
			rows, err := uc.invoices.ListByCustomers(ctx, codes, r)
			invCh <- invoicesResult{rows, err}
		}()
		go func() {
			rows, err := uc.orders.ListByCustomers(ctx, codes, r)
			ordCh <- ordersResult{rows, err}
		}()
		inv := <-invCh
		ord := <-ordCh
		if inv.err != nil {
			return nil, fmt.Errorf("desempeño: facturas: %w", inv.err)
		}
		if ord.err != nil {
			return nil, fmt.Errorf("desempeño: pedidos: %w", ord.err)
		}
		activity.Invoices = inv.rows
		activity.Orders = ord.rows
	}

	perf := uc.engine.AgentPerformance(activity)
	return &perf, nil
}
