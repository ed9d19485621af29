package scoring

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Claves de las tarjetas de insights.
const (
	CardEngagement     = "customer_engagement"
	CardAvgOrderValue  = "avg_order_value"
	CardRevenueTrend   = "revenue_trend"
	CardCollectionRate = "collection_rate"
)

// Direcciones de tendencia.
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// defaultInsightsWindowDays ventana usada cuando no se indica fecha de inicio.
const defaultInsightsWindowDays = 30

// InsightsInput clientes con su historial completo y la ventana a resumir.
// From/To vacíos usan los últimos 30 días hasta hoy.
type InsightsInput struct {
	Customers []entity.Customer
	Invoices  []entity.Invoice
	Payments  []entity.Payment
	From      time.Time
	To        time.Time
}

// InsightCard tarjeta de KPI legible.
type InsightCard struct {
	Key         string          `json:"key"`
	Title       string          `json:"title"`
	Value       decimal.Decimal `json:"value"`
	Unit        string          `json:"unit"`
	Comparison  decimal.Decimal `json:"comparison"`
	Trend       string          `json:"trend"`
	Description string          `json:"description"`
	Placeholder bool            `json:"placeholder"` // true si la comparación es sintética
}

// KeyFacts datos destacados del historial.
type KeyFacts struct {
	TopCustomerCode    string          `json:"topCustomerCode,omitempty"`
	TopCustomerName    string          `json:"topCustomerName,omitempty"`
	TopCustomerValue   decimal.Decimal `json:"topCustomerValue"`
	BestMonth          string          `json:"bestMonth,omitempty"`
	BestMonthRevenue   decimal.Decimal `json:"bestMonthRevenue"`
	TopPaymentMethod   string          `json:"topPaymentMethod,omitempty"`
	TotalCustomers     int             `json:"totalCustomers"`
	ActiveCustomers    int             `json:"activeCustomers"`
	WindowInvoiceCount int             `json:"windowInvoiceCount"`
	WindowRevenue      decimal.Decimal `json:"windowRevenue"`
}

// BusinessInsights resultado del resumidor de KPIs.
type BusinessInsights struct {
	From     time.Time     `json:"from"`
	To       time.Time     `json:"to"`
	Cards    []InsightCard `json:"cards"`
	KeyFacts KeyFacts      `json:"keyFacts"`
}

// BusinessInsights reduce clientes, facturas y pagos a tarjetas de KPI y datos
// destacados. Los montos son brutos (DocTotal).
func (e *Engine) BusinessInsights(in InsightsInput) BusinessInsights {
	p := e.policy
	to := in.To
	if to.IsZero() {
		to = e.clock.Now()
	}
	from := in.From
	if from.IsZero() {
		from = civilDate(to).AddDate(0, 0, -defaultInsightsWindowDays)
	}
	span := to.Sub(from)
	prevFrom, prevTo := from.Add(-span), from.Add(-time.Nanosecond)

	current := make([]entity.Invoice, 0, len(in.Invoices))
	previousRevenue := decimal.Zero
	engaged := make(map[string]struct{})
	for _, inv := range in.Invoices {
		switch {
		case inWindow(inv.DocDate, from, to):
			current = append(current, inv)
			engaged[inv.CardCode] = struct{}{}
		case inWindow(inv.DocDate, prevFrom, prevTo):
			previousRevenue = previousRevenue.Add(inv.DocTotal)
		}
	}
	revenue := sumGross(current)
	paid := decimal.Zero
	for _, inv := range current {
		paid = paid.Add(decimal.Min(inv.PaidToDate, inv.DocTotal))
	}
	activeCustomers := 0
	for _, c := range in.Customers {
		if _, ok := engaged[c.CardCode]; ok {
			activeCustomers++
		}
	}

	aov := ratio(revenue, decimal.NewFromInt(int64(len(current)))).Round(2)
	benchmark := aov.Mul(dec(p.BenchmarkFactor)).Round(2)

	out := BusinessInsights{From: from, To: to}
	out.Cards = []InsightCard{
		{
			Key:         CardEngagement,
			Title:       "Customer engagement",
			Value:       percentage(decimal.NewFromInt(int64(activeCustomers)), decimal.NewFromInt(int64(len(in.Customers)))),
			Unit:        "%",
			Comparison:  decimal.Zero,
			Trend:       TrendStable,
			Description: "Share of customers with at least one invoice in the period",
		},
		{
			Key:         CardAvgOrderValue,
			Title:       "Average order value",
			Value:       aov,
			Unit:        "currency",
			Comparison:  benchmark,
			Trend:       compareTrend(aov, benchmark),
			Description: "Average invoice total compared with the industry benchmark",
			Placeholder: true,
		},
		e.revenueTrendCard(revenue, previousRevenue),
		{
			Key:         CardCollectionRate,
			Title:       "Collection rate",
			Value:       percentage(paid, revenue),
			Unit:        "%",
			Comparison:  decimal.Zero,
			Trend:       TrendStable,
			Description: "Share of invoiced amount already collected",
		},
	}

	out.KeyFacts = keyFacts(in)
	out.KeyFacts.TotalCustomers = len(in.Customers)
	out.KeyFacts.ActiveCustomers = activeCustomers
	out.KeyFacts.WindowInvoiceCount = len(current)
	out.KeyFacts.WindowRevenue = revenue.Round(2)
	return out
}

func (e *Engine) revenueTrendCard(current, previous decimal.Decimal) InsightCard {
	change := percentage(current.Sub(previous), previous)
	band := dec(e.policy.TrendBandPct)
	trend := TrendStable
	switch {
	case previous.IsZero():
		if current.IsPositive() {
			trend = TrendUp
		}
	case change.GreaterThan(band):
		trend = TrendUp
	case change.LessThan(band.Neg()):
		trend = TrendDown
	}
	return InsightCard{
		Key:         CardRevenueTrend,
		Title:       "Revenue trend",
		Value:       current.Round(2),
		Unit:        "currency",
		Comparison:  change,
		Trend:       trend,
		Description: "Revenue in the period compared with the previous period of equal length",
	}
}

func compareTrend(value, reference decimal.Decimal) string {
	switch value.Cmp(reference) {
	case 1:
		return TrendUp
	case -1:
		return TrendDown
	}
	return TrendStable
}

// keyFacts mejor cliente por valor histórico, mejor mes y medio de pago principal.
func keyFacts(in InsightsInput) KeyFacts {
	kf := KeyFacts{TopCustomerValue: decimal.Zero, BestMonthRevenue: decimal.Zero}

	byCustomer := make(map[string]decimal.Decimal)
	byMonth := make(map[string]decimal.Decimal)
	for _, inv := range in.Invoices {
		byCustomer[inv.CardCode] = byCustomer[inv.CardCode].Add(inv.DocTotal)
		k := BucketKey(PeriodMonthly, inv.DocDate)
		byMonth[k] = byMonth[k].Add(inv.DocTotal)
	}

	codes := make([]string, 0, len(byCustomer))
	for code := range byCustomer {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	for _, code := range codes {
		if v := byCustomer[code]; v.GreaterThan(kf.TopCustomerValue) {
			kf.TopCustomerCode, kf.TopCustomerValue = code, v
		}
	}
	kf.TopCustomerValue = kf.TopCustomerValue.Round(2)
	for _, c := range in.Customers {
		if c.CardCode == kf.TopCustomerCode {
			kf.TopCustomerName = c.Name
			break
		}
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		if v := byMonth[m]; v.GreaterThan(kf.BestMonthRevenue) {
			kf.BestMonth, kf.BestMonthRevenue = m, v
		}
	}
	kf.BestMonthRevenue = kf.BestMonthRevenue.Round(2)

	best := decimal.Zero
	for _, d := range methodDistribution(in.Payments) {
		if d.Amount.GreaterThan(best) {
			kf.TopPaymentMethod, best = d.Method, d.Amount
		}
	}
	return kf
}
