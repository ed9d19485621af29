package scoring_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

func TestClassifyOpportunity_LastMatchWins(t *testing.T) {
	e := engineAt("2024-06-01")
	growth := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(money(s)) }

	cases := []struct {
		name     string
		in       scoring.OpportunityInput
		wantType string
		wantExp  string
	}{
		{"growth overrides value tier", scoring.OpportunityInput{AvgOrderValue: money("6000"), PurchaseGrowthRate: growth("25")}, scoring.OpportunityGrowthExpansion, "12000"},
		{"tier overrides due", scoring.OpportunityInput{IsDueForOrder: true, AvgOrderValue: money("6000")}, scoring.OpportunityPremiumUpsell, "1800"},
		{"mid tier upper bound", scoring.OpportunityInput{AvgOrderValue: money("5000")}, scoring.OpportunityStandardUpsell, "1250"},
		{"low tier boundary", scoring.OpportunityInput{AvgOrderValue: money("1000")}, scoring.OpportunityVolumeUpsell, "500"},
		{"growth at threshold keeps tier", scoring.OpportunityInput{AvgOrderValue: money("2000"), PurchaseGrowthRate: growth("20")}, scoring.OpportunityStandardUpsell, "500"},
		{"recovery floor", scoring.OpportunityInput{AvgOrderValue: money("1000"), PurchaseGrowthRate: growth("-20")}, scoring.OpportunityAccountRecovery, "1000"},
		{"recovery above floor", scoring.OpportunityInput{AvgOrderValue: money("4000"), PurchaseGrowthRate: growth("-11")}, scoring.OpportunityAccountRecovery, "2000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := e.ClassifyOpportunity(tc.in)
			assert.Equal(t, tc.wantType, got.Type)
			assertDec(t, tc.wantExp, got.ExpectedValue)
		})
	}
}

func TestOpportunityRules_Order(t *testing.T) {
	rules := scoring.OpportunityRules(scoring.DefaultPolicy())
	names := make([]string, 0, len(rules))
	for _, r := range rules {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"due-for-order", "not-due", "high-ticket", "mid-ticket", "low-ticket", "growing", "declining"}, names)
}

func TestDeriveUpsell_Preconditions(t *testing.T) {
	e := engineAt("2024-06-01")

	_, ok := e.DeriveUpsell(scoring.CustomerHistory{})
	assert.False(t, ok, "sin facturas")

	_, ok = e.DeriveUpsell(scoring.CustomerHistory{Invoices: []entity.Invoice{
		invoice(1, "C1", "2024-05-01", "100", "0"),
	}})
	assert.False(t, ok, "una factura")

	_, ok = e.DeriveUpsell(scoring.CustomerHistory{Invoices: []entity.Invoice{
		invoice(1, "C1", "2024-01-01", "100", "0"),
		invoice(2, "C1", "2024-01-20", "100", "0"),
	}})
	assert.False(t, ok, "última compra hace más de 120 días")
}

func TestDeriveUpsell_GrowthExpansion(t *testing.T) {
	e := engineAt("2024-04-11")
	h := scoring.CustomerHistory{
		Customer: entity.Customer{CardCode: "C1", Name: "Acme"},
		Invoices: []entity.Invoice{
			invoice(4, "C1", "2024-04-01", "2000", "0"),
			invoice(3, "C1", "2024-03-01", "2000", "0"),
			invoice(2, "C1", "2024-02-01", "1000", "0"),
			invoice(1, "C1", "2024-01-01", "1000", "0"),
		},
	}

	opp, ok := e.DeriveUpsell(h)

	require.True(t, ok)
	assert.Equal(t, 10, opp.DaysSinceLastOrder)
	assert.False(t, opp.IsDueForOrder)
	assertDec(t, "1500", opp.AvgOrderValue)
	require.True(t, opp.PurchaseGrowthRate.Valid)
	assertDec(t, "100", opp.PurchaseGrowthRate.Decimal)
	assert.Equal(t, scoring.OpportunityGrowthExpansion, opp.OpportunityType)
	assertDec(t, "3000", opp.ExpectedValue)
}

func TestDeriveUpsell_GrowthOddCountPutsMiddleInvoiceInRecentHalf(t *testing.T) {
	e := engineAt("2024-05-11")
	h := scoring.CustomerHistory{
		Customer: entity.Customer{CardCode: "C1"},
		Invoices: []entity.Invoice{
			invoice(5, "C1", "2024-05-01", "2000", "0"),
			invoice(3, "C1", "2024-03-01", "1000", "0"),
			invoice(1, "C1", "2024-01-01", "1000", "0"),
			invoice(4, "C1", "2024-04-01", "2000", "0"),
			invoice(2, "C1", "2024-02-01", "1000", "0"),
		},
	}

	opp, ok := e.DeriveUpsell(h)

	require.True(t, ok)
	assert.Equal(t, 5, opp.InvoiceCount)
	require.True(t, opp.PurchaseGrowthRate.Valid)
	// recientes {1000, 2000, 2000} contra antiguas {1000, 1000}
	assertDec(t, "66.67", opp.PurchaseGrowthRate.Decimal)
	assert.Equal(t, scoring.OpportunityGrowthExpansion, opp.OpportunityType)
}

func TestDeriveUpsell_NoGrowthBelowFourInvoices(t *testing.T) {
	e := engineAt("2024-03-30")
	h := scoring.CustomerHistory{Invoices: []entity.Invoice{
		invoice(1, "C1", "2024-01-01", "300", "0"),
		invoice(2, "C1", "2024-01-31", "300", "0"),
		invoice(3, "C1", "2024-03-01", "300", "0"),
	}}

	opp, ok := e.DeriveUpsell(h)

	require.True(t, ok)
	assert.False(t, opp.PurchaseGrowthRate.Valid)
	assert.True(t, opp.IsDueForOrder)
	assert.Equal(t, scoring.OpportunityVolumeUpsell, opp.OpportunityType)
}

func TestRankUpsell_DueFirstThenExpectedValue(t *testing.T) {
	e := engineAt("2024-03-30")
	two := func(card, amount, second string) scoring.CustomerHistory {
		return scoring.CustomerHistory{
			Customer: entity.Customer{CardCode: card},
			Invoices: []entity.Invoice{
				invoice(1, card, "2024-01-01", amount, "0"),
				invoice(2, card, second, amount, "0"),
			},
		}
	}
	histories := []scoring.CustomerHistory{
		two("NOTDUE_BIG", "9000", "2024-03-25"),
		two("DUE_SMALL", "200", "2024-02-01"),
		two("DUE_BIG", "3000", "2024-02-01"),
		{Customer: entity.Customer{CardCode: "SKIP"}},
	}

	ranked := e.RankUpsell(histories, 0)

	require.Len(t, ranked, 3)
	assert.Equal(t, "DUE_BIG", ranked[0].CardCode)
	assert.Equal(t, "DUE_SMALL", ranked[1].CardCode)
	assert.Equal(t, "NOTDUE_BIG", ranked[2].CardCode)
}
