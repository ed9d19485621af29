package scoring

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Tipos de oportunidad de upsell / venta cruzada.
const (
	OpportunityReorder         = "Regular Reorder"
	OpportunityCrossSell       = "Cross-sell Opportunity"
	OpportunityPremiumUpsell   = "Premium Upsell"
	OpportunityStandardUpsell  = "Standard Upsell"
	OpportunityVolumeUpsell    = "Volume Upsell"
	OpportunityGrowthExpansion = "Growth Account Expansion"
	OpportunityAccountRecovery = "Account Recovery"
)

// OpportunityInput datos que deciden el tipo de oportunidad.
type OpportunityInput struct {
	IsDueForOrder      bool
	AvgOrderValue      decimal.Decimal
	PurchaseGrowthRate decimal.NullDecimal // inválido si hay menos de GrowthMinInvoices facturas
}

// Opportunity tipo de oportunidad y valor esperado.
type Opportunity struct {
	Type          string
	ExpectedValue decimal.Decimal
}

// OpportunityRules cadena ordenada de reglas; gana la última que aplica.
// El orden es parte del comportamiento: base por pedido pendiente, luego tramo
// de ticket promedio, luego tendencia de crecimiento.
func OpportunityRules(p Policy) []Rule[OpportunityInput, Opportunity] {
	times := func(m float64) func(OpportunityInput) decimal.Decimal {
		return func(in OpportunityInput) decimal.Decimal { return in.AvgOrderValue.Mul(dec(m)) }
	}
	outcome := func(kind string, value func(OpportunityInput) decimal.Decimal) func(OpportunityInput) Opportunity {
		return func(in OpportunityInput) Opportunity {
			return Opportunity{Type: kind, ExpectedValue: value(in).Round(2)}
		}
	}
	high, mid := dec(p.HighValueOrderThreshold), dec(p.MidValueOrderThreshold)
	growth, decline := dec(p.GrowthExpansionPct), dec(p.DeclineRecoveryPct)

	return []Rule[OpportunityInput, Opportunity]{
		{
			Name: "due-for-order",
			When: func(in OpportunityInput) bool { return in.IsDueForOrder },
			Then: outcome(OpportunityReorder, times(p.ReorderMultiplier)),
		},
		{
			Name: "not-due",
			When: func(in OpportunityInput) bool { return !in.IsDueForOrder },
			Then: outcome(OpportunityCrossSell, times(p.CrossSellMultiplier)),
		},
		{
			Name: "high-ticket",
			When: func(in OpportunityInput) bool { return in.AvgOrderValue.GreaterThan(high) },
			Then: outcome(OpportunityPremiumUpsell, times(p.PremiumUpsellMultiplier)),
		},
		{
			Name: "mid-ticket",
			When: func(in OpportunityInput) bool {
				return in.AvgOrderValue.GreaterThan(mid) && !in.AvgOrderValue.GreaterThan(high)
			},
			Then: outcome(OpportunityStandardUpsell, times(p.StandardUpsellMultiplier)),
		},
		{
			Name: "low-ticket",
			When: func(in OpportunityInput) bool { return !in.AvgOrderValue.GreaterThan(mid) },
			Then: outcome(OpportunityVolumeUpsell, times(p.VolumeUpsellMultiplier)),
		},
		{
			Name: "growing",
			When: func(in OpportunityInput) bool {
				return in.PurchaseGrowthRate.Valid && in.PurchaseGrowthRate.Decimal.GreaterThan(growth)
			},
			Then: outcome(OpportunityGrowthExpansion, times(p.GrowthMultiplier)),
		},
		{
			Name: "declining",
			When: func(in OpportunityInput) bool {
				return in.PurchaseGrowthRate.Valid && in.PurchaseGrowthRate.Decimal.LessThan(decline)
			},
			Then: outcome(OpportunityAccountRecovery, func(in OpportunityInput) decimal.Decimal {
				return decimal.Max(in.AvgOrderValue.Mul(dec(p.RecoveryMultiplier)), dec(p.RecoveryFloor))
			}),
		},
	}
}

// ClassifyOpportunity aplica OpportunityRules con la política del motor.
func (e *Engine) ClassifyOpportunity(in OpportunityInput) Opportunity {
	return LastMatch(OpportunityRules(e.policy), in, Opportunity{ExpectedValue: decimal.Zero})
}

// UpsellOpportunity resultado del deriver de upsell para un cliente.
type UpsellOpportunity struct {
	CardCode             string              `json:"cardCode"`
	CustomerName         string              `json:"customerName"`
	AssignedTo           string              `json:"assignedTo,omitempty"`
	InvoiceCount         int                 `json:"invoiceCount"`
	AvgOrderValue        decimal.Decimal     `json:"avgOrderValue"`
	AvgDaysBetweenOrders float64             `json:"avgDaysBetweenOrders"`
	DaysSinceLastOrder   int                 `json:"daysSinceLastOrder"`
	LastOrderDate        time.Time           `json:"lastOrderDate"`
	IsDueForOrder        bool                `json:"isDueForOrder"`
	PurchaseGrowthRate   decimal.NullDecimal `json:"purchaseGrowthRate"`
	OpportunityType      string              `json:"opportunityType"`
	ExpectedValue        decimal.Decimal     `json:"expectedValue"`
}

// DeriveUpsell evalúa si el cliente tiene una oportunidad de upsell.
// Devuelve false si tiene menos de 2 facturas o si su última compra supera
// MaxDaysSinceLastOrder días.
func (e *Engine) DeriveUpsell(h CustomerHistory) (UpsellOpportunity, bool) {
	p := e.policy
	if len(h.Invoices) < 2 {
		return UpsellOpportunity{}, false
	}
	asc := sortedByDate(h.Invoices)
	n := len(asc)
	last := asc[n-1].DocDate
	daysSince := DaysBetween(last, e.clock.Now())
	if daysSince > p.MaxDaysSinceLastOrder {
		return UpsellOpportunity{}, false
	}
	gaps := gapsInDays(asc)
	if len(gaps) == 0 {
		return UpsellOpportunity{}, false
	}
	avgGap := meanInts(gaps)
	avgOrder := ratio(sumGross(asc), decimal.NewFromInt(int64(n))).Round(2)

	in := OpportunityInput{
		IsDueForOrder: float64(daysSince) >= avgGap*p.DueFactor,
		AvgOrderValue: avgOrder,
	}
	if n >= p.GrowthMinInvoices {
		in.PurchaseGrowthRate = decimal.NewNullDecimal(growthRate(asc))
	}
	opp := e.ClassifyOpportunity(in)

	return UpsellOpportunity{
		CardCode:             h.Customer.CardCode,
		CustomerName:         h.Customer.Name,
		AssignedTo:           h.Customer.AssignedTo,
		InvoiceCount:         n,
		AvgOrderValue:        avgOrder,
		AvgDaysBetweenOrders: avgGap,
		DaysSinceLastOrder:   daysSince,
		LastOrderDate:        last,
		IsDueForOrder:        in.IsDueForOrder,
		PurchaseGrowthRate:   in.PurchaseGrowthRate,
		OpportunityType:      opp.Type,
		ExpectedValue:        opp.ExpectedValue,
	}, true
}

// growthRate variación porcentual entre el promedio de la mitad más reciente
// (tamaño ceil(n/2)) y el promedio de la mitad más antigua.
func growthRate(asc []entity.Invoice) decimal.Decimal {
	n := len(asc)
	recentSize := (n + 1) / 2
	older := asc[:n-recentSize]
	recent := asc[n-recentSize:]
	recentAvg := ratio(sumGross(recent), decimal.NewFromInt(int64(len(recent))))
	olderAvg := ratio(sumGross(older), decimal.NewFromInt(int64(len(older))))
	return percentage(recentAvg.Sub(olderAvg), olderAvg)
}

// RankUpsell deriva las oportunidades, ordena primero las de pedido pendiente y
// luego por valor esperado descendente, y devuelve las topN primeras.
func (e *Engine) RankUpsell(histories []CustomerHistory, topN int) []UpsellOpportunity {
	if topN <= 0 {
		topN = e.policy.DefaultTopN
	}
	out := make([]UpsellOpportunity, 0, len(histories))
	for _, h := range histories {
		if opp, ok := e.DeriveUpsell(h); ok {
			out = append(out, opp)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IsDueForOrder != out[j].IsDueForOrder {
			return out[i].IsDueForOrder
		}
		return out[i].ExpectedValue.GreaterThan(out[j].ExpectedValue)
	})
	if len(out) > topN {
		out = out[:topN]
	}
	return out
}
