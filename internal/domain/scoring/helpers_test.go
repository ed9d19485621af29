package scoring_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/scoring"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func money(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDec(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	assert.True(t, money(want).Equal(got), append([]interface{}{"want %s, got %s", want, got.String()}, msgAndArgs...)...)
}

func engineAt(now string) *scoring.Engine {
	return scoring.NewEngine(scoring.DefaultPolicy(), scoring.FixedClock(day(now)))
}

func invoice(entry int64, card, date, total, paid string) entity.Invoice {
	return entity.Invoice{
		DocEntry:   entry,
		DocNum:     entry + 1000,
		CardCode:   card,
		DocDate:    day(date),
		DocTotal:   money(total),
		PaidToDate: money(paid),
	}
}
