// Package pdf genera el estado de cuenta del cliente a partir del journey.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Cliente + CardCode  │  Rango + fecha de emisión     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Facturado / Pagado / Saldo / Ciclo de vida         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Tipo | N° | Monto | Saldo                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  MEDIOS DE PAGO + leyenda                                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/analytics"
	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 170, Green: 30, Blue: 30}
)

var _ analytics.StatementRenderer = (*StatementGenerator)(nil)

// StatementGenerator implementa analytics.StatementRenderer usando Maroto v2.
type StatementGenerator struct {
	companyName string
	now         func() time.Time
}

// NewStatementGenerator construye el generador; companyName va en el autor del PDF.
func NewStatementGenerator(companyName string) *StatementGenerator {
	return &StatementGenerator{companyName: companyName, now: time.Now}
}

// RenderStatement genera el PDF y devuelve sus bytes.
func (g *StatementGenerator) RenderStatement(customer *entity.Customer, journey *dto.JourneyResponse) ([]byte, error) {
	if customer == nil || journey == nil {
		return nil, fmt.Errorf("pdf: cliente y journey son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Estado de cuenta "+customer.CardCode, true).
		WithAuthor(nonEmpty(g.companyName, "Ventas"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(customer, journey, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(journey.Metrics))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(timelineRows(journey.Metrics.Timeline)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(methodRows(journey.Metrics.PaymentMethods)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: cliente (izq) y rango del estado de cuenta (der).
func headerRow(customer *entity.Customer, j *dto.JourneyResponse, issued time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Código: "+customer.CardCode, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("ESTADO DE CUENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(rangeLabel(j.From, j.To), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 7,
			}),
			text.New("Emitido: "+issued.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales del journey en cuatro columnas.
func summaryRow(m scoring.JourneyMetrics) core.Row {
	cell := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: color, Top: 6}),
		)
	}
	balanceColor := colorPrimary
	if m.OutstandingBalance.IsPositive() {
		balanceColor = colorDanger
	}
	return row.New(16).Add(
		cell("FACTURADO (BRUTO)", "$"+money(m.TotalInvoiceAmountGross), colorPrimary),
		cell("PAGADO", "$"+money(m.TotalPaidAmount), colorPrimary),
		cell("SALDO PENDIENTE", "$"+money(m.OutstandingBalance), balanceColor),
		cell("CICLO / PATRÓN", m.Lifecycle+" / "+m.PaymentPattern, colorPrimary),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Tipo", 2, align.Left),
		h("Documento", 2, align.Center),
		h("Monto", 3, align.Right),
		h("Saldo", 3, align.Right),
	)
}

// timelineRows: una fila por evento; los pagos no llevan saldo.
func timelineRows(events []scoring.TimelineEvent) []core.Row {
	if len(events) == 0 {
		return []core.Row{row.New(8).Add(col.New(12).Add(
			text.New("Sin movimientos en el rango.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		))}
	}
	result := make([]core.Row, 0, len(events))
	for _, e := range events {
		kind := "Factura"
		balance := ""
		if e.Type == scoring.EventPayment {
			kind = "Pago"
		}
		if e.Invoice != nil {
			balance = "$" + money(e.Invoice.Balance)
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(e.Date.Format("02/01/2006"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(kind, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", e.DocNum), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(3).Add(text.New("$"+money(e.Amount), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(balance, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// methodRows: distribución de medios de pago y leyenda final.
func methodRows(methods []scoring.MethodDistribution) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("MEDIOS DE PAGO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, md := range methods {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(md.Method, props.Text{Size: 8, Top: 0.5, Left: 2})),
			col.New(4).Add(text.New("$"+money(md.Amount), props.Text{Size: 8, Align: align.Right, Top: 0.5})),
			col.New(4).Add(text.New(md.Percentage.StringFixed(1)+"%", props.Text{Size: 8, Align: align.Right, Top: 0.5, Right: 1})),
		))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Los montos incluyen IVA. El saldo pendiente considera los pagos aplicados a cada factura.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func rangeLabel(from, to *time.Time) string {
	switch {
	case from != nil && to != nil:
		return from.Format("02/01/2006") + " - " + to.Format("02/01/2006")
	case from != nil:
		return "Desde " + from.Format("02/01/2006")
	case to != nil:
		return "Hasta " + to.Format("02/01/2006")
	default:
		return "Histórico completo"
	}
}

// money formatea sin decimales con puntos de miles. Ej: 1250000 → "1.250.000".
func money(d decimal.Decimal) string {
	s := d.StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	return sign + formatMoney(s)
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
func formatMoney(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
