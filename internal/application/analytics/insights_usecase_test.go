package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

func TestInsights_ReadsFullInvoiceHistoryAndWindowedPayments(t *testing.T) {
	customers, invoices, payments := portfolio()
	uc := NewInsightsUseCase(customers, invoices, payments, access.NewResolver(team()), testEngine())
	r := repository.DateRange{From: day(2026, 7, 1), To: day(2026, 9, 30)}

	out, err := uc.Insights(context.Background(), agentA1, r)
	require.NoError(t, err)

	assert.Equal(t, repository.DateRange{}, invoices.lastRange)
	assert.Equal(t, r, payments.lastRange)
	assert.Equal(t, 2, out.KeyFacts.TotalCustomers)
	assert.Equal(t, 3, out.KeyFacts.WindowInvoiceCount)
	assert.Equal(t, "C1", out.KeyFacts.TopCustomerCode)

	keys := make([]string, 0, len(out.Cards))
	for _, c := range out.Cards {
		keys = append(keys, c.Key)
	}
	assert.Contains(t, keys, scoring.CardRevenueTrend)
	assert.Contains(t, keys, scoring.CardCollectionRate)
}

func TestInsights_EmptyScope(t *testing.T) {
	_, invoices, payments := portfolio()
	uc := NewInsightsUseCase(&fakeCustomers{}, invoices, payments, access.NewResolver(team()), testEngine())

	out, err := uc.Insights(context.Background(), agentA2, repository.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.KeyFacts.TotalCustomers)
	assert.Equal(t, 0, out.KeyFacts.WindowInvoiceCount)
}

func TestInsights_Errors(t *testing.T) {
	customers, invoices, payments := portfolio()
	invoices.err = errRepo
	uc := NewInsightsUseCase(customers, invoices, payments, access.NewResolver(team()), testEngine())

	_, err := uc.Insights(context.Background(), admin, repository.DateRange{})
	assert.ErrorIs(t, err, errRepo)

	_, err = uc.Insights(context.Background(), access.Actor{UserID: "x"}, repository.DateRange{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
