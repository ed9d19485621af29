package pdf

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "999", formatMoney("999"))
	assert.Equal(t, "25.000", formatMoney("25000"))
	assert.Equal(t, "1.000.000", formatMoney("1000000"))
	assert.Equal(t, "-1.500", money(decimal.NewFromInt(-1500)))
}

func TestRangeLabel(t *testing.T) {
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "01/01/2024 - 31/03/2024", rangeLabel(&from, &to))
	assert.Equal(t, "Desde 01/01/2024", rangeLabel(&from, nil))
	assert.Equal(t, "Histórico completo", rangeLabel(nil, nil))
}

func TestRenderStatement(t *testing.T) {
	day := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	journey := &dto.JourneyResponse{
		CardCode:     "C001",
		CustomerName: "Ferretería Sur",
		Period:       scoring.PeriodMonthly,
		Metrics: scoring.JourneyMetrics{
			Timeline: []scoring.TimelineEvent{
				{Type: scoring.EventInvoice, Date: day, DocNum: 10, Amount: decimal.NewFromInt(1190),
					Invoice: &scoring.InvoiceEventDetail{Balance: decimal.NewFromInt(190)}},
				{Type: scoring.EventPayment, Date: day.AddDate(0, 0, 5), DocNum: 77, Amount: decimal.NewFromInt(1000)},
			},
			TotalInvoiceAmountGross: decimal.NewFromInt(1190),
			TotalPaidAmount:         decimal.NewFromInt(1000),
			OutstandingBalance:      decimal.NewFromInt(190),
			PaymentMethods: []scoring.MethodDistribution{
				{Method: "Cash", Count: 1, Amount: decimal.NewFromInt(1000), Percentage: decimal.NewFromInt(100)},
			},
			Lifecycle:      scoring.LifecycleActive,
			PaymentPattern: scoring.PatternPartialPayer,
		},
	}
	g := NewStatementGenerator("Ventas SAS")
	out, err := g.RenderStatement(&entity.Customer{CardCode: "C001", Name: "Ferretería Sur"}, journey)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out[:4]))

	_, err = g.RenderStatement(nil, journey)
	assert.Error(t, err)
}
