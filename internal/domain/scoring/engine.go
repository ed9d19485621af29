// Package scoring contiene las derivaciones puras sobre historiales ya leídos:
// potencial del cliente, oportunidades de upsell, journey y ciclo de vida,
// desempeño de agentes e insights de negocio.
//
// Ninguna función accede a la base de datos ni al reloj global; la fecha
// actual llega por el Clock inyectado en el Engine.
package scoring

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// Engine aplica la Policy con la fecha del Clock.
type Engine struct {
	policy Policy
	clock  Clock
}

// NewEngine construye el motor. Si clock es nil usa el reloj del sistema.
func NewEngine(policy Policy, clock Clock) *Engine {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Engine{policy: policy, clock: clock}
}

// Policy devuelve la configuración activa.
func (e *Engine) Policy() Policy { return e.policy }

// Now devuelve la fecha del reloj inyectado.
func (e *Engine) Now() time.Time { return e.clock.Now() }

// CustomerHistory cliente con su historial de facturas.
type CustomerHistory struct {
	Customer entity.Customer
	Invoices []entity.Invoice
}

// ── Helpers numéricos ────────────────────────────────────────────────────────

// ratio devuelve num/den, o cero si den es cero.
func ratio(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return num.Div(den)
}

// percentage devuelve num/den*100 redondeado a 2 decimales, o cero si den es cero.
func percentage(num, den decimal.Decimal) decimal.Decimal {
	return ratio(num, den).Mul(hundred).Round(2)
}

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

// civilDate trunca a la fecha calendario, ignorando hora y zona horaria.
func civilDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween días calendario de from a to (negativo si to es anterior).
func DaysBetween(from, to time.Time) int {
	return int(civilDate(to).Sub(civilDate(from)).Hours() / 24)
}

func meanInts(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

func sumGross(invoices []entity.Invoice) decimal.Decimal {
	total := decimal.Zero
	for _, inv := range invoices {
		total = total.Add(inv.DocTotal)
	}
	return total
}

// sortedByDate devuelve una copia de las facturas ordenada por fecha ascendente.
func sortedByDate(invoices []entity.Invoice) []entity.Invoice {
	out := make([]entity.Invoice, len(invoices))
	copy(out, invoices)
	sort.SliceStable(out, func(i, j int) bool { return out[i].DocDate.Before(out[j].DocDate) })
	return out
}

// gapsInDays días entre facturas consecutivas (entrada ordenada ascendente).
func gapsInDays(asc []entity.Invoice) []int {
	if len(asc) < 2 {
		return nil
	}
	gaps := make([]int, 0, len(asc)-1)
	for i := 1; i < len(asc); i++ {
		gaps = append(gaps, DaysBetween(asc[i-1].DocDate, asc[i].DocDate))
	}
	return gaps
}

func inWindow(t, from, to time.Time) bool {
	return !t.Before(from) && !t.After(to)
}
