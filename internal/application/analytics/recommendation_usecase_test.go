package analytics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/access"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

func newRecommendationUC() (*RecommendationUseCase, *fakeInvoices) {
	customers, invoices, _ := portfolio()
	return NewRecommendationUseCase(customers, invoices, access.NewResolver(team()), testEngine()), invoices
}

func TestPotential_OnlyCustomersWithPurchasesInScope(t *testing.T) {
	uc, invoices := newRecommendationUC()

	out, err := uc.Potential(context.Background(), agentA1, 10)
	require.NoError(t, err)

	// C3 es de a1 pero no tiene facturas; C2 es de otro agente
	require.Len(t, out, 1)
	assert.Equal(t, "C1", out[0].CardCode)
	assert.Equal(t, 3, out[0].InvoiceCount)
	assert.Equal(t, repository.DateRange{}, invoices.lastRange, "el potencial usa todo el historial")
}

func TestPotential_AdminRanksAscending(t *testing.T) {
	uc, _ := newRecommendationUC()

	out, err := uc.Potential(context.Background(), admin, 10)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.True(t, out[0].PotentialScore.LessThanOrEqual(out[1].PotentialScore))
	// el cliente reciente y frecuente queda primero
	assert.Equal(t, "C1", out[0].CardCode)
}

func TestPotential_RespectsLimit(t *testing.T) {
	uc, _ := newRecommendationUC()

	out, err := uc.Potential(context.Background(), admin, 1)
	require.NoError(t, err)
	assert.Len(t, out, 1)
}

func TestPotential_NoVisibleCustomers(t *testing.T) {
	uc := NewRecommendationUseCase(&fakeCustomers{}, &fakeInvoices{}, access.NewResolver(team()), testEngine())

	out, err := uc.Potential(context.Background(), agentA2, 10)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestUpsell_StaysInScope(t *testing.T) {
	uc, _ := newRecommendationUC()

	out, err := uc.Upsell(context.Background(), manager, 10)
	require.NoError(t, err)
	for _, opp := range out {
		assert.NotEqual(t, "C2", opp.CardCode)
	}
}

func TestRecommendations_RepositoryError(t *testing.T) {
	uc, invoices := newRecommendationUC()
	invoices.err = errRepo

	_, err := uc.Potential(context.Background(), admin, 5)
	assert.ErrorIs(t, err, errRepo)
	_, err = uc.Upsell(context.Background(), admin, 5)
	assert.ErrorIs(t, err, errRepo)
}

func TestGroupHistories_PreservesCustomerOrder(t *testing.T) {
	customers := []entity.Customer{{CardCode: "B"}, {CardCode: "A"}}
	invoices := []entity.Invoice{{DocEntry: 1, CardCode: "A"}, {DocEntry: 2, CardCode: "B"}, {DocEntry: 3, CardCode: "A"}}

	out := groupHistories(customers, invoices)
	require.Len(t, out, 2)
	assert.Equal(t, "B", out[0].Customer.CardCode)
	assert.Len(t, out[0].Invoices, 1)
	assert.Equal(t, "A", out[1].Customer.CardCode)
	assert.Len(t, out[1].Invoices, 2)
}
