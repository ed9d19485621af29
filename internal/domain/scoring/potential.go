package scoring

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Etiquetas de oportunidad del scorer de potencial.
const (
	TagRecentlyActive  = "Recently Active: Upsell Ready"
	TagReEngagement    = "Re-engagement Campaign"
	TagWinBack         = "Win-back Campaign"
	TagHighValue       = "High-Value Customer"
	TagHighAnnualValue = "High Annual Potential"
)

// PotentialScore resultado del scorer RFM para un cliente.
// PotentialScore es invertido: menor es mejor.
type PotentialScore struct {
	CardCode              string          `json:"cardCode"`
	CustomerName          string          `json:"customerName"`
	AssignedTo            string          `json:"assignedTo,omitempty"`
	InvoiceCount          int             `json:"invoiceCount"`
	TotalSpend            decimal.Decimal `json:"totalSpend"`
	AvgOrderValue         decimal.Decimal `json:"avgOrderValue"`
	PurchaseFrequencyDays float64         `json:"purchaseFrequencyDays"`
	RecencyDays           int             `json:"recencyDays"`
	EstimatedAnnualValue  decimal.Decimal `json:"estimatedAnnualValue"`
	PotentialScore        decimal.Decimal `json:"potentialScore"`
	LastPurchaseDate      *time.Time      `json:"lastPurchaseDate,omitempty"`
	Opportunities         []string        `json:"opportunities"`
}

// ScorePotential calcula gasto, ticket promedio, frecuencia, recencia, valor anual
// estimado y el puntaje de potencial de un cliente. Montos en bruto (DocTotal).
func (e *Engine) ScorePotential(h CustomerHistory) PotentialScore {
	p := e.policy
	asc := sortedByDate(h.Invoices)
	n := len(asc)

	out := PotentialScore{
		CardCode:      h.Customer.CardCode,
		CustomerName:  h.Customer.Name,
		AssignedTo:    h.Customer.AssignedTo,
		InvoiceCount:  n,
		TotalSpend:    sumGross(asc).Round(2),
		AvgOrderValue: decimal.Zero,
		RecencyDays:   p.NoPurchaseRecencyDays,
		Opportunities: []string{},
	}
	if n > 0 {
		out.AvgOrderValue = ratio(sumGross(asc), decimal.NewFromInt(int64(n))).Round(2)
		last := asc[n-1].DocDate
		out.LastPurchaseDate = &last
		out.RecencyDays = DaysBetween(last, e.clock.Now())
	}
	out.PurchaseFrequencyDays = meanInts(gapsInDays(asc))

	out.EstimatedAnnualValue = decimal.Zero
	if out.PurchaseFrequencyDays > 0 {
		out.EstimatedAnnualValue = out.AvgOrderValue.
			Mul(decimal.NewFromInt(365)).
			Div(dec(out.PurchaseFrequencyDays)).
			Round(2)
	}

	spendTerm := ratio(out.TotalSpend, dec(p.SpendDivisor))
	out.PotentialScore = decimal.NewFromInt(int64(out.RecencyDays)).Mul(dec(p.RecencyWeight)).
		Add(dec(out.PurchaseFrequencyDays).Mul(dec(p.FrequencyWeight))).
		Sub(spendTerm).
		Round(2)

	out.Opportunities = e.potentialTags(out)
	return out
}

// potentialTags aplica la cascada de etiquetas: un tramo de recencia y luego
// etiquetas aditivas por gasto y por valor anual estimado.
func (e *Engine) potentialTags(s PotentialScore) []string {
	p := e.policy
	tags := make([]string, 0, 3)
	switch {
	case s.RecencyDays < p.RecentBuyerDays:
		tags = append(tags, TagRecentlyActive)
	case s.RecencyDays < p.WarmBuyerDays:
		tags = append(tags, TagReEngagement)
	default:
		tags = append(tags, TagWinBack)
	}
	if s.TotalSpend.GreaterThan(dec(p.HighSpendThreshold)) {
		tags = append(tags, TagHighValue)
	}
	if s.EstimatedAnnualValue.GreaterThan(dec(p.HighAnnualValueThreshold)) {
		tags = append(tags, TagHighAnnualValue)
	}
	return tags
}

// RankPotential puntúa todos los clientes con al menos una factura, ordena
// ascendente por PotentialScore y devuelve los topN primeros (topN ≤ 0 usa el default).
func (e *Engine) RankPotential(histories []CustomerHistory, topN int) []PotentialScore {
	if topN <= 0 {
		topN = e.policy.DefaultTopN
	}
	scores := make([]PotentialScore, 0, len(histories))
	for _, h := range histories {
		if len(h.Invoices) == 0 {
			continue
		}
		scores = append(scores, e.ScorePotential(h))
	}
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].PotentialScore.LessThan(scores[j].PotentialScore)
	})
	if len(scores) > topN {
		scores = scores[:topN]
	}
	return scores
}
