package scoring

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/approval"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Niveles de desempeño del agente.
const (
	TierTop              = "Top Performer"
	TierSolid            = "Solid Performer"
	TierAverage          = "Average Performer"
	TierNeedsImprovement = "Needs Improvement"
)

// tierRecommendations recomendaciones fijas por nivel.
var tierRecommendations = map[string][]string{
	TierTop: {
		"Share closing techniques with the team",
		"Focus on strategic and high-value accounts",
		"Mentor agents in lower tiers",
	},
	TierSolid: {
		"Identify upsell opportunities in the current portfolio",
		"Increase visit frequency to top customers",
		"Set a stretch goal for next month",
	},
	TierAverage: {
		"Prioritise customers due for reorder",
		"Review pricing and discount strategy",
		"Schedule weekly pipeline reviews with your manager",
	},
	TierNeedsImprovement: {
		"Schedule coaching sessions with your manager",
		"Reactivate lapsed customers with win-back campaigns",
		"Increase daily call volume",
		"Review product knowledge training",
	},
}

// Recommendations devuelve una copia de las recomendaciones del nivel.
func Recommendations(tier string) []string {
	src := tierRecommendations[tier]
	out := make([]string, len(src))
	copy(out, src)
	return out
}

// AgentActivity datos del agente ya leídos para la ventana solicitada.
// Invoices y Orders pertenecen a los clientes asignados. AsOf es el cierre de
// la ventana: las ventas recientes y la velocidad se miden hacia atrás desde
// ahí. Cero equivale a hoy.
type AgentActivity struct {
	AsOf       time.Time
	Agent      entity.User
	Customers  []entity.Customer
	Invoices   []entity.Invoice
	Orders     []entity.SalesOrder
	Quotations []entity.Quotation
	Calls      []entity.Call
}

// AgentPerformance resultado del scorer de desempeño.
type AgentPerformance struct {
	AgentID                 string          `json:"agentId"`
	AgentName               string          `json:"agentName"`
	AssignedCustomers       int             `json:"assignedCustomers"`
	InvoicedCustomers       int             `json:"invoicedCustomers"`
	ConversionRate          decimal.Decimal `json:"conversionRate"`
	InvoiceCount            int             `json:"invoiceCount"`
	TotalSales              decimal.Decimal `json:"totalSales"`
	AvgDealSize             decimal.Decimal `json:"avgDealSize"`
	SalesVelocity           decimal.Decimal `json:"salesVelocity"`
	RecentSales             decimal.Decimal `json:"recentSales"`
	OrderCount              int             `json:"orderCount"`
	OrderTotal              decimal.Decimal `json:"orderTotal"`
	QuotationCount          int             `json:"quotationCount"`
	ApprovedQuotations      int             `json:"approvedQuotations"`
	QuotationConversionRate decimal.Decimal `json:"quotationConversionRate"`
	CallCount               int             `json:"callCount"`
	CallMinutes             int             `json:"callMinutes"`
	Tier                    string          `json:"tier"`
	Recommendations         []string        `json:"recommendations"`
	Insights                []string        `json:"insights"`
}

// PerformanceTierRules cadena ascendente de umbrales de ventas recientes;
// gana la última que aplica.
func PerformanceTierRules(p Policy) []Rule[decimal.Decimal, string] {
	above := func(threshold float64) func(decimal.Decimal) bool {
		t := dec(threshold)
		return func(sales decimal.Decimal) bool { return sales.GreaterThan(t) }
	}
	tier := func(name string) func(decimal.Decimal) string {
		return func(decimal.Decimal) string { return name }
	}
	return []Rule[decimal.Decimal, string]{
		{Name: "average", When: above(p.AveragePerformerSales), Then: tier(TierAverage)},
		{Name: "solid", When: above(p.SolidPerformerSales), Then: tier(TierSolid)},
		{Name: "top", When: above(p.TopPerformerSales), Then: tier(TierTop)},
	}
}

// ClassifyPerformanceTier nivel según las ventas recientes.
func (e *Engine) ClassifyPerformanceTier(recentSales decimal.Decimal) string {
	return LastMatch(PerformanceTierRules(e.policy), recentSales, TierNeedsImprovement)
}

// AgentPerformance calcula conversión, ticket promedio, velocidad, ventas
// recientes, nivel, recomendaciones e insights del agente.
func (e *Engine) AgentPerformance(a AgentActivity) AgentPerformance {
	p := e.policy
	now := e.clock.Now()
	if !a.AsOf.IsZero() && a.AsOf.Before(now) {
		now = a.AsOf
	}
	recentFrom := civilDate(now).AddDate(0, 0, -p.RecentSalesDays)
	velocityFrom := civilDate(now).AddDate(0, -p.VelocityMonths, 0)

	invoiced := make(map[string]struct{})
	total, recent := decimal.Zero, decimal.Zero
	velocityCount := 0
	for _, inv := range a.Invoices {
		invoiced[inv.CardCode] = struct{}{}
		total = total.Add(inv.DocTotal)
		if !inv.DocDate.Before(recentFrom) {
			recent = recent.Add(inv.DocTotal)
		}
		if !inv.DocDate.Before(velocityFrom) {
			velocityCount++
		}
	}
	// solo cuentan como convertidos los clientes que siguen asignados
	converted := 0
	for _, c := range a.Customers {
		if _, ok := invoiced[c.CardCode]; ok {
			converted++
		}
	}

	orderTotal := decimal.Zero
	for _, o := range a.Orders {
		orderTotal = orderTotal.Add(o.DocTotal)
	}
	approved := 0
	for _, q := range a.Quotations {
		if q.Status == approval.StatusCompleted {
			approved++
		}
	}
	minutes := 0
	for _, c := range a.Calls {
		minutes += c.DurationMinutes
	}

	out := AgentPerformance{
		AgentID:                 a.Agent.ID,
		AgentName:               a.Agent.Name,
		AssignedCustomers:       len(a.Customers),
		InvoicedCustomers:       converted,
		ConversionRate:          percentage(decimal.NewFromInt(int64(converted)), decimal.NewFromInt(int64(len(a.Customers)))),
		InvoiceCount:            len(a.Invoices),
		TotalSales:              total.Round(2),
		AvgDealSize:             ratio(total, decimal.NewFromInt(int64(len(a.Invoices)))).Round(2),
		SalesVelocity:           ratio(decimal.NewFromInt(int64(velocityCount)), decimal.NewFromInt(int64(p.VelocityMonths))).Round(2),
		RecentSales:             recent.Round(2),
		OrderCount:              len(a.Orders),
		OrderTotal:              orderTotal.Round(2),
		QuotationCount:          len(a.Quotations),
		ApprovedQuotations:      approved,
		QuotationConversionRate: percentage(decimal.NewFromInt(int64(approved)), decimal.NewFromInt(int64(len(a.Quotations)))),
		CallCount:               len(a.Calls),
		CallMinutes:             minutes,
	}
	out.Tier = e.ClassifyPerformanceTier(out.RecentSales)
	out.Recommendations = Recommendations(out.Tier)
	out.Insights = e.performanceInsights(out)
	return out
}

// performanceInsights chequeos independientes; pueden aplicar varios a la vez.
func (e *Engine) performanceInsights(perf AgentPerformance) []string {
	p := e.policy
	insights := make([]string, 0, 4)
	switch {
	case perf.AssignedCustomers > 0 && perf.ConversionRate.LessThan(dec(p.LowConversionRate)):
		insights = append(insights, "Low conversion rate: most assigned customers have not purchased in this period")
	case perf.ConversionRate.GreaterThan(dec(p.HighConversionRate)):
		insights = append(insights, "Strong conversion rate across the assigned portfolio")
	}
	if perf.InvoiceCount > 0 && perf.AvgDealSize.LessThan(dec(p.SmallDealSize)) {
		insights = append(insights, "Average deal size is small: consider bundling or upselling")
	}
	if perf.SalesVelocity.LessThan(dec(p.LowVelocity)) {
		insights = append(insights, "Low sales velocity: fewer than expected invoices per month")
	}
	switch {
	case perf.AssignedCustomers > p.HighCustomerLoad:
		insights = append(insights, "High customer load: consider redistributing accounts")
	case perf.AssignedCustomers < p.LowCustomerLoad:
		insights = append(insights, "Small customer portfolio: room to take on more accounts")
	}
	return insights
}
