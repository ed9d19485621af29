package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

// StatementRenderer genera el estado de cuenta (PDF) a partir del journey.
type StatementRenderer interface {
	RenderStatement(customer *entity.Customer, journey *dto.JourneyResponse) ([]byte, error)
}

// JourneyUseCase combina facturas, pagos y enlaces de un cliente.
type JourneyUseCase struct {
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	payments  repository.PaymentRepository
	access    *access.Resolver
	engine    *scoring.Engine
	renderer  StatementRenderer
}

// NewJourneyUseCase construye el caso de uso. renderer puede ser nil si no se
// expone el estado de cuenta.
func NewJourneyUseCase(
	customers repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	payments repository.PaymentRepository,
	resolver *access.Resolver,
	engine *scoring.Engine,
	renderer StatementRenderer,
) *JourneyUseCase {
	return &JourneyUseCase{
		customers: customers,
		invoices:  invoices,
		payments:  payments,
		access:    resolver,
		engine:    engine,
		renderer:  renderer,
	}
}

// Journey calcula las métricas y la serie de actividad del cliente en el rango.
func (uc *JourneyUseCase) Journey(
	ctx context.Context,
	actor access.Actor,
	cardCode string,
	r repository.DateRange,
	period scoring.Period,
) (*dto.JourneyResponse, error) {
	customer, err := uc.visibleCustomer(ctx, actor, cardCode)
	if err != nil {
		return nil, err
	}
	return uc.build(ctx, customer, r, period)
}

func (uc *JourneyUseCase) build(
	ctx context.Context,
	customer *entity.Customer,
	r repository.DateRange,
	period scoring.Period,
) (*dto.JourneyResponse, error) {
	cardCode := customer.CardCode

	// ── Tres lecturas en paralelo ─────────────────────────────────────────────
	type invoicesResult struct {
		rows []entity.Invoice
		err  error
	}
	type paymentsResult struct {
		rows []entity.Payment
		err  error
	}
	type linksResult struct {
		rows []entity.PaymentLink
		err  error
	}
	invCh := make(chan invoicesResult, 1)
	payCh := make(chan paymentsResult, 1)
	linkCh := make(chan linksResult, 1)

	go func() {
		rows, err := uc.invoices.ListWithLines(ctx, cardCode, r)
		invCh <- invoicesResult{rows, err}
	}()
	go func() {
		rows, err := uc.payments.ListByCustomers(ctx, []string{cardCode}, r)
		payCh <- paymentsResult{rows, err}
	}()
	go func() {
		rows, err := uc.payments.LinksByCustomer(ctx, cardCode, r)
		linkCh <- linksResult{rows, err}
	}()

	inv := <-invCh
	pay := <-payCh
	links := <-linkCh

	if inv.err != nil {
		return nil, fmt.Errorf("journey: facturas: %w", inv.err)
	}
	if pay.err != nil {
		return nil, fmt.Errorf("journey: pagos: %w", pay.err)
	}
	if links.err != nil {
		return nil, fmt.Errorf("journey: enlaces de pago: %w", links.err)
	}

	out := &dto.JourneyResponse{
		CardCode:     customer.CardCode,
		CustomerName: customer.Name,
		Period:       period,
		Metrics: uc.engine.Journey(scoring.JourneyInput{
			Invoices: inv.rows,
			Payments: pay.rows,
			Links:    links.rows,
		}),
		Series: scoring.ActivitySeries(period, inv.rows, pay.rows),
	}
	if !r.From.IsZero() {
		out.From = &r.From
	}
	if !r.To.IsZero() {
		out.To = &r.To
	}
	return out, nil
}

// Statement genera el PDF del estado de cuenta del cliente.
func (uc *JourneyUseCase) Statement(ctx context.Context, actor access.Actor, cardCode string, r repository.DateRange) ([]byte, error) {
	if uc.renderer == nil {
		return nil, fmt.Errorf("estado de cuenta no disponible")
	}
	customer, err := uc.visibleCustomer(ctx, actor, cardCode)
	if err != nil {
		return nil, err
	}
	journey, err := uc.build(ctx, customer, r, scoring.PeriodMonthly)
	if err != nil {
		return nil, err
	}
	pdf, err := uc.renderer.RenderStatement(customer, journey)
	if err != nil {
		return nil, fmt.Errorf("estado de cuenta %s: %w", cardCode, err)
	}
	return pdf, nil
}

func (uc *JourneyUseCase) visibleCustomer(ctx context.Context, actor access.Actor, cardCode string) (*entity.Customer, error) {
	customer, err := uc.customers.GetByCode(ctx, cardCode)
	if err != nil {
		return nil, fmt.Errorf("journey: cliente: %w", err)
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.access.CanView(ctx, actor, customer.AssignedTo); err != nil {
		return nil, err
	}
	return customer, nil
}
