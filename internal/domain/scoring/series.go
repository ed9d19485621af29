package scoring

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Period granularidad de la serie de actividad.
type Period string

// Granularidades soportadas.
const (
	PeriodWeekly    Period = "weekly"
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// ParsePeriod valida la granularidad; vacío equivale a mensual.
func ParsePeriod(s string) (Period, bool) {
	switch Period(s) {
	case "":
		return PeriodMonthly, true
	case PeriodWeekly, PeriodMonthly, PeriodQuarterly, PeriodYearly:
		return Period(s), true
	}
	return "", false
}

// BucketKey clave ordenable del período que contiene t.
// Semanal usa año y semana ISO 8601 (2024-W05).
func BucketKey(p Period, t time.Time) string {
	switch p {
	case PeriodWeekly:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	case PeriodQuarterly:
		return fmt.Sprintf("%d-Q%d", t.Year(), (int(t.Month())-1)/3+1)
	case PeriodYearly:
		return fmt.Sprintf("%d", t.Year())
	default:
		return fmt.Sprintf("%d-%02d", t.Year(), int(t.Month()))
	}
}

// ActivityBucket actividad de facturas y pagos en un período.
type ActivityBucket struct {
	Period        string          `json:"period"`
	InvoiceCount  int             `json:"invoiceCount"`
	InvoiceAmount decimal.Decimal `json:"invoiceAmount"`
	PaymentCount  int             `json:"paymentCount"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
}

// ActivitySeries agrupa facturas (bruto) y pagos por período y combina en una
// sola fila los que comparten clave. Resultado ordenado por período.
func ActivitySeries(p Period, invoices []entity.Invoice, payments []entity.Payment) []ActivityBucket {
	byKey := make(map[string]*ActivityBucket)
	bucket := func(t time.Time) *ActivityBucket {
		k := BucketKey(p, t)
		b, ok := byKey[k]
		if !ok {
			b = &ActivityBucket{Period: k, InvoiceAmount: decimal.Zero, PaymentAmount: decimal.Zero}
			byKey[k] = b
		}
		return b
	}
	for _, inv := range invoices {
		b := bucket(inv.DocDate)
		b.InvoiceCount++
		b.InvoiceAmount = b.InvoiceAmount.Add(inv.DocTotal)
	}
	for _, pay := range payments {
		b := bucket(pay.DocDate)
		b.PaymentCount++
		b.PaymentAmount = b.PaymentAmount.Add(pay.Total())
	}

	out := make([]ActivityBucket, 0, len(byKey))
	for _, b := range byKey {
		b.InvoiceAmount = b.InvoiceAmount.Round(2)
		b.PaymentAmount = b.PaymentAmount.Round(2)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Period < out[j].Period })
	return out
}
