package pricing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRates() RateTable {
	return RateTable{Daily: 500, ThreeDay: 1300, Weekly: 2800, Deposit: 5000}
}

func TestComputeTotalDeterministic(t *testing.T) {
	rates := fullRates()
	for _, days := range []int{1, 3, 5, 7, 10, 23, 365} {
		first := ComputeTotal(rates, days)
		second := ComputeTotal(rates, days)
		assert.Equal(t, first, second, "days=%d", days)
	}
}

func TestComputeTotalFloorsDuration(t *testing.T) {
	rates := fullRates()
	oneDay := ComputeTotal(rates, 1)
	for _, days := range []int{0, -1, -100} {
		got := ComputeTotal(rates, days)
		assert.Equal(t, oneDay, got, "days=%d must price as one day", days)
		assert.Equal(t, 1, got.Days)
	}
}

func TestComputeTotalExactWeek(t *testing.T) {
	quote := ComputeTotal(fullRates(), 7)

	assert.Equal(t, 7800.0, quote.Total)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, UnitWeek, quote.Lines[0].Unit)
	assert.Equal(t, 1, quote.Lines[0].Count)
	assert.Equal(t, UnitDeposit, quote.Lines[1].Unit)
}

func TestComputeTotalCombinesTiers(t *testing.T) {
	// 10 days = 1 week + 1 three-day block.
	quote := ComputeTotal(fullRates(), 10)

	assert.Equal(t, 9100.0, quote.Total)
	require.Len(t, quote.Lines, 3)
	assert.Equal(t, UnitWeek, quote.Lines[0].Unit)
	assert.Equal(t, UnitThreeDay, quote.Lines[1].Unit)
	assert.Equal(t, UnitDeposit, quote.Lines[2].Unit)
}

func TestComputeTotalDisabledTiersFallBackToDaily(t *testing.T) {
	quote := ComputeTotal(RateTable{Daily: 100}, 10)

	assert.Equal(t, 1000.0, quote.Total)
	require.Len(t, quote.Lines, 2)
	assert.Equal(t, UnitDay, quote.Lines[0].Unit)
	assert.Equal(t, 10, quote.Lines[0].Count)
}

func TestComputeTotalFiveDaysMixed(t *testing.T) {
	// One 3-day block plus two single days plus the deposit.
	quote := ComputeTotal(RateTable{Daily: 500, ThreeDay: 1300, Deposit: 5000}, 5)

	assert.Equal(t, 7300.0, quote.Total)
	require.Len(t, quote.Lines, 3)
	assert.Equal(t, UnitThreeDay, quote.Lines[0].Unit)
	assert.Equal(t, 1, quote.Lines[0].Count)
	assert.Equal(t, UnitDay, quote.Lines[1].Unit)
	assert.Equal(t, 2, quote.Lines[1].Count)
}

func TestComputeTotalBreakdownSumsToRawTotal(t *testing.T) {
	tables := []RateTable{
		fullRates(),
		{Daily: 99.99, ThreeDay: 250.5, Weekly: 0, Deposit: 12.345},
		{Daily: 1},
		{Daily: 0, Deposit: 500},
	}
	for _, rates := range tables {
		for days := 1; days <= 30; days++ {
			quote := ComputeTotal(rates, days)
			var sum float64
			for _, line := range quote.Lines {
				sum += line.Subtotal
			}
			assert.InDelta(t, quote.RawTotal, sum, 1e-9, "rates=%+v days=%d", rates, days)
		}
	}
}

func TestComputeTotalRoundsGrandTotalHalfUp(t *testing.T) {
	// 3 * 33.335 = 100.005 raw, rounds half-up to 100.01.
	quote := ComputeTotal(RateTable{Daily: 33.335}, 3)

	assert.Equal(t, 100.01, quote.Total)
	assert.InDelta(t, 100.005, quote.RawTotal, 1e-9)
}

func TestComputeTotalDepositAlwaysOnce(t *testing.T) {
	for _, days := range []int{1, 7, 14, 30} {
		quote := ComputeTotal(fullRates(), days)
		deposits := 0
		for _, line := range quote.Lines {
			if line.Unit == UnitDeposit {
				deposits++
				assert.Equal(t, 1, line.Count)
				assert.Equal(t, 5000.0, line.Subtotal)
			}
		}
		assert.Equal(t, 1, deposits, "days=%d", days)
	}
}

func TestParseRate(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"500", 500},
		{"1,500৳", 1500},
		{"$ 25.50", 25.5},
		{"Tk 2,800/week", 2800},
		{"", 0},
		{"free", 0},
		{"..", 0},
		{"-100", 100}, // sign stripped with the other symbols
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseRate(tc.in), "input %q", tc.in)
	}
}

func TestSanitizedClampsBadRates(t *testing.T) {
	rates := RateTable{
		Daily:    math.NaN(),
		ThreeDay: math.Inf(1),
		Weekly:   -40,
		Deposit:  250,
	}.Sanitized()

	assert.Equal(t, RateTable{Deposit: 250}, rates)
}

func TestNormalizeTable(t *testing.T) {
	rates := NormalizeTable("500", "1,300", "", "5,000৳")
	assert.Equal(t, RateTable{Daily: 500, ThreeDay: 1300, Weekly: 0, Deposit: 5000}, rates)
}
