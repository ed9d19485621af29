package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/approval"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

func newPerformanceUC() *PerformanceUseCase {
	customers, invoices, _ := portfolio()
	quotations := &fakeQuotations{rows: []entity.Quotation{
		{ID: "q1", CardCode: "C1", CreatedBy: "a1", Status: approval.StatusCompleted},
		{ID: "q2", CardCode: "C3", CreatedBy: "a1", Status: approval.StatusPending},
		{ID: "q3", CardCode: "C2", CreatedBy: "a2", Status: approval.StatusCompleted},
	}}
	calls := &fakeCalls{rows: []entity.Call{
		{ID: "k1", AgentID: "a1", CardCode: "C1", DurationMinutes: 12},
		{ID: "k2", AgentID: "a1", CardCode: "C3", DurationMinutes: 8},
		{ID: "k3", AgentID: "a2", CardCode: "C2", DurationMinutes: 30},
	}}
	orders := &fakeOrders{rows: []entity.SalesOrder{
		{DocEntry: 90, CardCode: "C1", DocTotal: money("700"), Status: "open"},
	}}
	return NewPerformanceUseCase(team(), customers, invoices, orders, quotations, calls, access.NewResolver(team()), testEngine())
}

func TestAgentPerformance_Aggregates(t *testing.T) {
	out, err := newPerformanceUC().AgentPerformance(context.Background(), manager, "a1", repository.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, "a1", out.AgentID)
	assert.Equal(t, "Andrés", out.AgentName)
	assert.Equal(t, 2, out.AssignedCustomers)
	assert.Equal(t, 1, out.InvoicedCustomers)
	assert.True(t, out.ConversionRate.Equal(money("50")))
	assert.Equal(t, 3, out.InvoiceCount)
	assert.True(t, out.TotalSales.Equal(money("3570")))
	assert.Equal(t, 1, out.OrderCount)
	assert.Equal(t, 2, out.QuotationCount)
	assert.Equal(t, 1, out.ApprovedQuotations)
	assert.Equal(t, 2, out.CallCount)
	assert.Equal(t, 20, out.CallMinutes)
	assert.NotEmpty(t, out.Tier)
}

func TestAgentPerformance_PastWindowUsesWindowEnd(t *testing.T) {
	uc := newPerformanceUC()
	ctx := context.Background()

	today, err := uc.AgentPerformance(ctx, manager, "a1", repository.DateRange{})
	require.NoError(t, err)
	assert.True(t, today.RecentSales.IsZero())

	r := repository.DateRange{
		From: day(2026, time.January, 1),
		To:   day(2026, time.September, 10).Add(24*time.Hour - time.Nanosecond),
	}
	past, err := uc.AgentPerformance(ctx, manager, "a1", r)
	require.NoError(t, err)
	assert.True(t, past.RecentSales.Equal(money("1190")), "recent=%s", past.RecentSales)
	assert.True(t, past.SalesVelocity.Equal(money("0.5")), "velocity=%s", past.SalesVelocity)
}

func TestAgentPerformance_Access(t *testing.T) {
	uc := newPerformanceUC()
	ctx := context.Background()

	tests := []struct {
		name    string
		actor   access.Actor
		agentID string
		wantErr error
	}{
		{"el propio agente", agentA1, "a1", nil},
		{"gerente directo", manager, "a1", nil},
		{"admin", admin, "a2", nil},
		{"otro agente", agentA2, "a1", domain.ErrForbidden},
		{"gerente sin relación", manager, "a2", domain.ErrForbidden},
		{"agente inexistente", admin, "zz", domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.AgentPerformance(ctx, tt.actor, tt.agentID, repository.DateRange{})
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestAgentPerformance_NoCustomersSkipsDocuments(t *testing.T) {
	uc := NewPerformanceUseCase(team(), &fakeCustomers{}, &fakeInvoices{err: errRepo}, &fakeOrders{},
		&fakeQuotations{}, &fakeCalls{}, access.NewResolver(team()), testEngine())

	out, err := uc.AgentPerformance(context.Background(), admin, "a2", repository.DateRange{})
	require.NoError(t, err)
	assert.Equal(t, 0, out.AssignedCustomers)
	assert.Equal(t, 0, out.InvoiceCount)
	assert.True(t, out.ConversionRate.IsZero())
}
