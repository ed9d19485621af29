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

func newJourneyUC(renderer StatementRenderer) (*JourneyUseCase, *fakeInvoices) {
	customers, invoices, payments := portfolio()
	uc := NewJourneyUseCase(customers, invoices, payments, access.NewResolver(team()), testEngine(), renderer)
	return uc, invoices
}

func TestJourney_CombinesInvoicesPaymentsAndLinks(t *testing.T) {
	uc, _ := newJourneyUC(nil)

	out, err := uc.Journey(context.Background(), agentA1, "C1", repository.DateRange{}, scoring.PeriodMonthly)
	require.NoError(t, err)

	assert.Equal(t, "C1", out.CardCode)
	assert.Equal(t, "Ferretería Uno", out.CustomerName)
	assert.Equal(t, scoring.PeriodMonthly, out.Period)
	assert.Nil(t, out.From)
	assert.Nil(t, out.To)

	m := out.Metrics
	assert.Equal(t, 3, m.TotalInvoices)
	assert.Equal(t, 2, m.PaidInvoices)
	assert.Equal(t, 2, m.TotalPayments)
	assert.Len(t, m.Timeline, 5)
	assert.NotEmpty(t, out.Series)
}

func TestJourney_EchoesRequestedRange(t *testing.T) {
	uc, invoices := newJourneyUC(nil)
	r := repository.DateRange{From: day(2026, 8, 1), To: day(2026, 8, 31)}

	out, err := uc.Journey(context.Background(), admin, "C1", r, scoring.PeriodWeekly)
	require.NoError(t, err)

	require.NotNil(t, out.From)
	require.NotNil(t, out.To)
	assert.True(t, out.From.Equal(r.From))
	assert.True(t, out.To.Equal(r.To))
	assert.Equal(t, r, invoices.lastRange)
}

func TestJourney_Access(t *testing.T) {
	uc, _ := newJourneyUC(nil)
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   access.Actor
		code    string
		wantErr error
	}{
		{"agente dueño", agentA1, "C1", nil},
		{"gerente del dueño", manager, "C1", nil},
		{"admin", admin, "C2", nil},
		{"otro agente", agentA2, "C1", domain.ErrForbidden},
		{"gerente sin relación", manager, "C2", domain.ErrForbidden},
		{"cliente inexistente", admin, "NOPE", domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Journey(ctx, tt.actor, tt.code, repository.DateRange{}, scoring.PeriodMonthly)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestJourney_RepositoryErrorIsWrapped(t *testing.T) {
	uc, invoices := newJourneyUC(nil)
	invoices.err = errRepo

	_, err := uc.Journey(context.Background(), admin, "C1", repository.DateRange{}, scoring.PeriodMonthly)
	require.Error(t, err)
	assert.ErrorIs(t, err, errRepo)
	assert.Contains(t, err.Error(), "facturas")
}

func TestStatement_RendersMonthlyJourney(t *testing.T) {
	renderer := &fakeRenderer{}
	uc, _ := newJourneyUC(renderer)

	pdf, err := uc.Statement(context.Background(), agentA1, "C1", repository.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, []byte("%PDF-1.4"), pdf)
	require.NotNil(t, renderer.customer)
	assert.Equal(t, "C1", renderer.customer.CardCode)
	require.NotNil(t, renderer.journey)
	assert.Equal(t, scoring.PeriodMonthly, renderer.journey.Period)
	assert.Equal(t, 3, renderer.journey.Metrics.TotalInvoices)
}

func TestStatement_OutOfScopeNeverRenders(t *testing.T) {
	renderer := &fakeRenderer{}
	uc, _ := newJourneyUC(renderer)

	_, err := uc.Statement(context.Background(), agentA2, "C1", repository.DateRange{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Nil(t, renderer.journey)
}

func TestStatement_WithoutRenderer(t *testing.T) {
	uc, _ := newJourneyUC(nil)

	_, err := uc.Statement(context.Background(), admin, "C1", repository.DateRange{})
	assert.Error(t, err)
}
