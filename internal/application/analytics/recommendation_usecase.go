package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

// RecommendationUseCase arma los feeds de potencial y upsell del alcance del actor.
type RecommendationUseCase struct {
	customers repository.CustomerRepository
	invoices  repository.InvoiceRepository
	access    *access.Resolver
	engine    *scoring.Engine
}

// NewRecommendationUseCase construye el caso de uso.
func NewRecommendationUseCase(
	customers repository.CustomerRepository,
	invoices repository.InvoiceRepository,
	resolver *access.Resolver,
	engine *scoring.Engine,
) *RecommendationUseCase {
	return &RecommendationUseCase{customers: customers, invoices: invoices, access: resolver, engine: engine}
}

// Potential devuelve los limit clientes con mejor puntaje de potencial.
func (uc *RecommendationUseCase) Potential(ctx context.Context, actor access.Actor, limit int) ([]scoring.PotentialScore, error) {
	histories, err := uc.histories(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("recomendaciones de potencial: %w", err)
	}
	return uc.engine.RankPotential(histories, limit), nil
}

// Upsell devuelve las limit mejores oportunidades de upsell / venta cruzada.
func (uc *RecommendationUseCase) Upsell(ctx context.Context, actor access.Actor, limit int) ([]scoring.UpsellOpportunity, error) {
	histories, err := uc.histories(ctx, actor)
	if err != nil {
		return nil, fmt.Errorf("recomendaciones de upsell: %w", err)
	}
	return uc.engine.RankUpsell(histories, limit), nil
}

// histories lee los clientes visibles y todo su historial de facturas.
func (uc *RecommendationUseCase) histories(ctx context.Context, actor access.Actor) ([]scoring.CustomerHistory, error) {
	scope, err := uc.access.ScopeFor(ctx, actor)
	if err != nil {
		return nil, err
	}
	customers, err := uc.customers.ListByScope(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("clientes: %w", err)
	}
	if len(customers) == 0 {
		return nil, nil
	}
	invoices, err := uc.invoices.ListByCustomers(ctx, cardCodes(customers), repository.DateRange{})
	if err != nil {
		return nil, fmt.Errorf("facturas: %w", err)
	}
	return groupHistories(customers, invoices), nil
}

func cardCodes(customers []entity.Customer) []string {
	codes := make([]string, 0, len(customers))
	for _, c := range customers {
		codes = append(codes, c.CardCode)
	}
	return codes
}

// groupHistories asocia cada factura a su cliente; el orden de clientes se conserva.
func groupHistories(customers []entity.Customer, invoices []entity.Invoice) []scoring.CustomerHistory {
	byCode := make(map[string][]entity.Invoice, len(customers))
	for _, inv := range invoices {
		byCode[inv.CardCode] = append(byCode[inv.CardCode], inv)
	}
	out := make([]scoring.CustomerHistory, 0, len(customers))
	for _, c := range customers {
		out = append(out, scoring.CustomerHistory{Customer: c, Invoices: byCode[c.CardCode]})
	}
	return out
}
