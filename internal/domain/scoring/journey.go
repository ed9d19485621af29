package scoring

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Tipos de evento del timeline.
const (
	EventInvoice = "invoice"
	EventPayment = "payment"
)

// Etapas del ciclo de vida.
const (
	LifecycleActive   = "Active"
	LifecycleRecent   = "Recent"
	LifecycleLapsed   = "Lapsed"
	LifecycleInactive = "Inactive"
)

// Patrones de pago.
const (
	PatternFullyPaid    = "FullyPaid"
	PatternGoodPayer    = "GoodPayer"
	PatternPartialPayer = "PartialPayer"
	PatternSlowPayer    = "SlowPayer"
	PatternNoPayments   = "NoPayments"
)

// Puntualidad de pago.
const (
	TimingEarly  = "Early"
	TimingOnTime = "OnTime"
	TimingLate   = "Late"
)

// JourneyInput facturas, pagos y enlaces pago-factura ya filtrados por fecha.
type JourneyInput struct {
	Invoices []entity.Invoice
	Payments []entity.Payment
	Links    []entity.PaymentLink
}

// InvoiceEventDetail campos propios de un evento de factura.
type InvoiceEventDetail struct {
	NetAmount  decimal.Decimal `json:"netAmount"`
	VatSum     decimal.Decimal `json:"vatSum"`
	PaidAmount decimal.Decimal `json:"paidAmount"`
	Balance    decimal.Decimal `json:"balance"`
	IsPaid     bool            `json:"isPaid"`
	LineCount  int             `json:"lineCount"`
}

// PaymentEventDetail campos propios de un evento de pago.
type PaymentEventDetail struct {
	Methods         []MethodAmount `json:"methods"`
	AppliedInvoices []int64        `json:"appliedInvoices"`
}

// MethodAmount monto de un medio de pago dentro de un recibo.
type MethodAmount struct {
	Method string          `json:"method"`
	Amount decimal.Decimal `json:"amount"`
}

// TimelineEvent evento tipado del timeline del cliente.
type TimelineEvent struct {
	Type     string              `json:"type"`
	Date     time.Time           `json:"date"`
	DocEntry int64               `json:"docEntry"`
	DocNum   int64               `json:"docNum"`
	Amount   decimal.Decimal     `json:"amount"`
	Invoice  *InvoiceEventDetail `json:"invoice,omitempty"`
	Payment  *PaymentEventDetail `json:"payment,omitempty"`
}

// MethodDistribution participación de un medio de pago.
type MethodDistribution struct {
	Method     string          `json:"method"`
	Count      int             `json:"count"`
	Amount     decimal.Decimal `json:"amount"`
	Percentage decimal.Decimal `json:"percentage"`
}

// TimingSummary conteo de enlaces de pago por puntualidad.
type TimingSummary struct {
	Early  int `json:"early"`
	OnTime int `json:"onTime"`
	Late   int `json:"late"`
}

// JourneyMetrics resultado agregado del journey del cliente.
type JourneyMetrics struct {
	Timeline                []TimelineEvent      `json:"timeline"`
	TotalInvoices           int                  `json:"totalInvoices"`
	PaidInvoices            int                  `json:"paidInvoices"`
	TotalInvoiceAmount      decimal.Decimal      `json:"totalInvoiceAmount"` // neto de IVA
	TotalInvoiceAmountGross decimal.Decimal      `json:"totalInvoiceAmountGross"`
	TotalPaidAmount         decimal.Decimal      `json:"totalPaidAmount"`
	OutstandingBalance      decimal.Decimal      `json:"outstandingBalance"`
	TotalPayments           int                  `json:"totalPayments"`
	AvgDaysToPayment        float64              `json:"avgDaysToPayment"`
	PaymentMethods          []MethodDistribution `json:"paymentMethods"`
	PaymentTiming           TimingSummary        `json:"paymentTiming"`
	FirstInteraction        *time.Time           `json:"firstInteraction,omitempty"`
	LastInteraction         *time.Time           `json:"lastInteraction,omitempty"`
	RelationshipDays        int                  `json:"relationshipDays"`
	DaysSinceLastActivity   int                  `json:"daysSinceLastActivity"`
	Lifecycle               string               `json:"lifecycle"`
	PaymentPattern          string               `json:"paymentPattern"`
}

// Journey combina facturas y pagos en un timeline ordenado y calcula las
// métricas de relación. Saldo y pagado se calculan sobre el total bruto.
func (e *Engine) Journey(in JourneyInput) JourneyMetrics {
	p := e.policy
	tolerance := dec(p.PaymentTolerance)

	linkedByInvoice := make(map[int64]decimal.Decimal)
	appliedByPayment := make(map[int64][]int64)
	for _, l := range in.Links {
		linkedByInvoice[l.InvoiceDocEntry] = linkedByInvoice[l.InvoiceDocEntry].Add(l.AppliedAmount)
		appliedByPayment[l.PaymentDocEntry] = append(appliedByPayment[l.PaymentDocEntry], l.InvoiceDocEntry)
	}

	m := JourneyMetrics{
		Timeline:                make([]TimelineEvent, 0, len(in.Invoices)+len(in.Payments)),
		TotalInvoiceAmount:      decimal.Zero,
		TotalInvoiceAmountGross: decimal.Zero,
		TotalPaidAmount:         decimal.Zero,
		PaymentMethods:          []MethodDistribution{},
	}

	var first, last time.Time
	touch := func(t time.Time) {
		if first.IsZero() || t.Before(first) {
			first = t
		}
		if last.IsZero() || t.After(last) {
			last = t
		}
	}

	for _, inv := range in.Invoices {
		paid := decimal.Max(inv.PaidToDate, linkedByInvoice[inv.DocEntry])
		isPaid := paid.GreaterThanOrEqual(inv.DocTotal.Sub(tolerance))
		balance := inv.DocTotal.Sub(paid)
		if balance.IsNegative() {
			balance = decimal.Zero
		}

		m.TotalInvoices++
		if isPaid {
			m.PaidInvoices++
		}
		m.TotalInvoiceAmount = m.TotalInvoiceAmount.Add(inv.NetTotal())
		m.TotalInvoiceAmountGross = m.TotalInvoiceAmountGross.Add(inv.DocTotal)
		m.TotalPaidAmount = m.TotalPaidAmount.Add(paid)
		touch(inv.DocDate)

		m.Timeline = append(m.Timeline, TimelineEvent{
			Type:     EventInvoice,
			Date:     inv.DocDate,
			DocEntry: inv.DocEntry,
			DocNum:   inv.DocNum,
			Amount:   inv.DocTotal.Round(2),
			Invoice: &InvoiceEventDetail{
				NetAmount:  inv.NetTotal().Round(2),
				VatSum:     inv.VatSum.Round(2),
				PaidAmount: paid.Round(2),
				Balance:    balance.Round(2),
				IsPaid:     isPaid,
				LineCount:  len(inv.Lines),
			},
		})
	}

	m.PaymentMethods = methodDistribution(in.Payments)
	for _, pay := range in.Payments {
		m.TotalPayments++
		touch(pay.DocDate)
		methods := make([]MethodAmount, 0, 4)
		for _, ma := range pay.Methods() {
			methods = append(methods, MethodAmount{Method: ma.Method, Amount: ma.Amount.Round(2)})
		}
		applied := appliedByPayment[pay.DocEntry]
		if applied == nil {
			applied = []int64{}
		}
		m.Timeline = append(m.Timeline, TimelineEvent{
			Type:     EventPayment,
			Date:     pay.DocDate,
			DocEntry: pay.DocEntry,
			DocNum:   pay.DocNum,
			Amount:   pay.Total().Round(2),
			Payment:  &PaymentEventDetail{Methods: methods, AppliedInvoices: applied},
		})
	}

	sort.SliceStable(m.Timeline, func(i, j int) bool {
		return m.Timeline[i].Date.Before(m.Timeline[j].Date)
	})

	outstanding := m.TotalInvoiceAmountGross.Sub(m.TotalPaidAmount)
	if outstanding.IsNegative() {
		outstanding = decimal.Zero
	}
	m.OutstandingBalance = outstanding.Round(2)
	m.TotalInvoiceAmount = m.TotalInvoiceAmount.Round(2)
	m.TotalInvoiceAmountGross = m.TotalInvoiceAmountGross.Round(2)
	m.TotalPaidAmount = m.TotalPaidAmount.Round(2)

	m.AvgDaysToPayment, m.PaymentTiming = e.linkTiming(in.Links)

	m.DaysSinceLastActivity = p.NoPurchaseRecencyDays
	if !first.IsZero() {
		f, l := first, last
		m.FirstInteraction = &f
		m.LastInteraction = &l
		m.RelationshipDays = DaysBetween(first, last)
		m.DaysSinceLastActivity = DaysBetween(last, e.clock.Now())
	}
	m.Lifecycle = e.ClassifyLifecycle(m.DaysSinceLastActivity)
	if m.TotalInvoices == 0 {
		m.PaymentPattern = PatternNoPayments
	} else {
		m.PaymentPattern = e.ClassifyPaymentPattern(m.TotalPaidAmount, m.TotalInvoiceAmountGross, m.OutstandingBalance)
	}
	return m
}

// methodDistribution cuenta cada medio de pago por separado: un recibo con
// efectivo y transferencia aporta una entrada a cada medio.
func methodDistribution(payments []entity.Payment) []MethodDistribution {
	order := []string{
		entity.PaymentMethodCash, entity.PaymentMethodTransfer,
		entity.PaymentMethodCheck, entity.PaymentMethodCreditCard,
	}
	byMethod := make(map[string]*MethodDistribution, len(order))
	total := decimal.Zero
	for _, pay := range payments {
		for _, ma := range pay.Methods() {
			d, ok := byMethod[ma.Method]
			if !ok {
				d = &MethodDistribution{Method: ma.Method, Amount: decimal.Zero}
				byMethod[ma.Method] = d
			}
			d.Count++
			d.Amount = d.Amount.Add(ma.Amount)
			total = total.Add(ma.Amount)
		}
	}
	out := make([]MethodDistribution, 0, len(byMethod))
	for _, method := range order {
		d, ok := byMethod[method]
		if !ok {
			continue
		}
		d.Percentage = percentage(d.Amount, total)
		d.Amount = d.Amount.Round(2)
		out = append(out, *d)
	}
	return out
}

// linkTiming promedio de días a pago (solo enlaces en [0, MaxPaymentDelayDays))
// y clasificación de puntualidad de cada enlace.
func (e *Engine) linkTiming(links []entity.PaymentLink) (float64, TimingSummary) {
	var summary TimingSummary
	delays := make([]int, 0, len(links))
	for _, l := range links {
		days := DaysBetween(l.InvoiceDate, l.PaymentDate)
		if days >= 0 && days < e.policy.MaxPaymentDelayDays {
			delays = append(delays, days)
		}
		switch e.ClassifyPaymentTiming(days) {
		case TimingEarly:
			summary.Early++
		case TimingOnTime:
			summary.OnTime++
		default:
			summary.Late++
		}
	}
	return meanInts(delays), summary
}

// ClassifyLifecycle clasifica por días desde la última actividad.
// Los límites son inclusivos hacia la etapa más activa.
func (e *Engine) ClassifyLifecycle(daysSinceLastActivity int) string {
	p := e.policy
	switch {
	case daysSinceLastActivity <= p.ActiveDays:
		return LifecycleActive
	case daysSinceLastActivity <= p.RecentDays:
		return LifecycleRecent
	case daysSinceLastActivity <= p.LapsedDays:
		return LifecycleLapsed
	default:
		return LifecycleInactive
	}
}

// ClassifyPaymentPattern clasifica por saldo pendiente y razón pagado/facturado.
func (e *Engine) ClassifyPaymentPattern(totalPaid, totalSpent, outstanding decimal.Decimal) string {
	if !outstanding.IsPositive() {
		return PatternFullyPaid
	}
	r := ratio(totalPaid, totalSpent)
	switch {
	case r.GreaterThanOrEqual(dec(e.policy.GoodPayerRatio)):
		return PatternGoodPayer
	case r.GreaterThanOrEqual(dec(e.policy.PartialPayerRatio)):
		return PatternPartialPayer
	case r.IsPositive():
		return PatternSlowPayer
	default:
		return PatternNoPayments
	}
}

// ClassifyPaymentTiming compara los días a pago con el plazo estándar.
func (e *Engine) ClassifyPaymentTiming(daysToPayment int) string {
	term := float64(e.policy.StandardPaymentTermDays)
	d := float64(daysToPayment)
	switch {
	case daysToPayment <= 0 || d < term*e.policy.EarlyPaymentFactor:
		return TimingEarly
	case d <= term:
		return TimingOnTime
	default:
		return TimingLate
	}
}
