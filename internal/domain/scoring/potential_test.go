package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

func TestScorePotential_FrequencyAndScore(t *testing.T) {
	e := engineAt("2024-03-12")
	h := scoring.CustomerHistory{
		Customer: entity.Customer{CardCode: "C001", Name: "Acme"},
		Invoices: []entity.Invoice{
			invoice(3, "C001", "2024-03-02", "500", "0"),
			invoice(1, "C001", "2024-01-01", "500", "0"),
			invoice(2, "C001", "2024-01-31", "500", "0"),
		},
	}

	s := e.ScorePotential(h)

	assert.Equal(t, 30.5, s.PurchaseFrequencyDays)
	assertDec(t, "500", s.AvgOrderValue)
	assertDec(t, "1500", s.TotalSpend)
	assert.Equal(t, 10, s.RecencyDays)
	assertDec(t, "5983.61", s.EstimatedAnnualValue)
	// 10*0.4 + 30.5*0.3 - 1500/1000
	assertDec(t, "11.65", s.PotentialScore)
	assert.Equal(t, []string{scoring.TagRecentlyActive}, s.Opportunities)
	require.NotNil(t, s.LastPurchaseDate)
	assert.Equal(t, day("2024-03-02"), *s.LastPurchaseDate)
}

func TestScorePotential_NoInvoices(t *testing.T) {
	e := engineAt("2024-03-12")

	s := e.ScorePotential(scoring.CustomerHistory{Customer: entity.Customer{CardCode: "C0"}})

	assert.Equal(t, 365, s.RecencyDays)
	assert.Zero(t, s.PurchaseFrequencyDays)
	assertDec(t, "0", s.AvgOrderValue)
	assertDec(t, "0", s.EstimatedAnnualValue)
	assertDec(t, "146", s.PotentialScore)
	assert.Nil(t, s.LastPurchaseDate)
	assert.Equal(t, []string{scoring.TagWinBack}, s.Opportunities)
}

func TestScorePotential_AdditiveTags(t *testing.T) {
	e := engineAt("2024-06-01")
	h := scoring.CustomerHistory{Invoices: []entity.Invoice{
		invoice(1, "C1", "2024-03-01", "8000", "0"),
		invoice(2, "C1", "2024-03-11", "8000", "0"),
	}}

	s := e.ScorePotential(h)

	// recencia 82 días; gasto 16000; anual 8000*365/10
	assert.Equal(t, []string{scoring.TagReEngagement, scoring.TagHighValue, scoring.TagHighAnnualValue}, s.Opportunities)
}

func TestRankPotential_ExcludesEmptyAndSortsAscending(t *testing.T) {
	e := engineAt("2024-03-12")
	histories := []scoring.CustomerHistory{
		{Customer: entity.Customer{CardCode: "EMPTY"}},
		{Customer: entity.Customer{CardCode: "OLD"}, Invoices: []entity.Invoice{
			invoice(1, "OLD", "2023-06-01", "100", "0"),
		}},
		{Customer: entity.Customer{CardCode: "NEW"}, Invoices: []entity.Invoice{
			invoice(2, "NEW", "2024-03-10", "100", "0"),
		}},
		{Customer: entity.Customer{CardCode: "MID"}, Invoices: []entity.Invoice{
			invoice(3, "MID", "2024-01-10", "100", "0"),
		}},
	}

	ranked := e.RankPotential(histories, 2)

	require.Len(t, ranked, 2)
	assert.Equal(t, "NEW", ranked[0].CardCode)
	assert.Equal(t, "MID", ranked[1].CardCode)

	all := e.RankPotential(histories, 0)
	assert.Len(t, all, 3)
	for _, s := range all {
		assert.NotEqual(t, "EMPTY", s.CardCode)
	}
}
