package pricing

import (
	"math"
	"strconv"
	"strings"
)

// TierUnit names one breakdown line of a computed quote.
type TierUnit string

const (
	UnitWeek     TierUnit = "week"
	UnitThreeDay TierUnit = "threeDay"
	UnitDay      TierUnit = "day"
	UnitDeposit  TierUnit = "deposit"
)

const (
	daysPerWeek  = 7
	daysPerBlock = 3
)

// RateTable holds the normalized per-unit rates of one listing.
// A zero ThreeDay or Weekly rate disables that tier.
type RateTable struct {
	Daily    float64
	ThreeDay float64
	Weekly   float64
	Deposit  float64
}

// Sanitized clamps non-finite and negative rates to zero so the table
// is always safe to feed into ComputeTotal.
func (t RateTable) Sanitized() RateTable {
	t.Daily = sanitizeRate(t.Daily)
	t.ThreeDay = sanitizeRate(t.ThreeDay)
	t.Weekly = sanitizeRate(t.Weekly)
	t.Deposit = sanitizeRate(t.Deposit)
	return t
}

// Line is one itemized charge of a quote. Subtotals are intentionally
// unrounded; only the grand total is rounded.
type Line struct {
	Unit     TierUnit
	Count    int
	UnitRate float64
	Subtotal float64
}

// Quote is the immutable result of a pricing computation.
type Quote struct {
	Days     int
	Total    float64
	RawTotal float64
	Lines    []Line
}

// ComputeTotal prices a rental of the requested number of days against
// the given rate table. Tiers are consumed greedily, largest unit
// first: whole weeks, then 3-day blocks, then single days, plus the
// flat deposit once. Durations below one day are floored to one.
//
// The function is pure and total over its domain: malformed rates must
// be normalized upstream (see ParseRate), never rejected here.
func ComputeTotal(rates RateTable, days int) Quote {
	rates = rates.Sanitized()
	if days < 1 {
		days = 1
	}

	remaining := days
	lines := make([]Line, 0, 4)

	if rates.Weekly > 0 && remaining >= daysPerWeek {
		weeks := remaining / daysPerWeek
		lines = append(lines, Line{
			Unit:     UnitWeek,
			Count:    weeks,
			UnitRate: rates.Weekly,
			Subtotal: float64(weeks) * rates.Weekly,
		})
		remaining -= weeks * daysPerWeek
	}
	if rates.ThreeDay > 0 && remaining >= daysPerBlock {
		blocks := remaining / daysPerBlock
		lines = append(lines, Line{
			Unit:     UnitThreeDay,
			Count:    blocks,
			UnitRate: rates.ThreeDay,
			Subtotal: float64(blocks) * rates.ThreeDay,
		})
		remaining -= blocks * daysPerBlock
	}
	if remaining > 0 {
		lines = append(lines, Line{
			Unit:     UnitDay,
			Count:    remaining,
			UnitRate: rates.Daily,
			Subtotal: float64(remaining) * rates.Daily,
		})
	}
	// The deposit applies once per booking regardless of duration.
	lines = append(lines, Line{
		Unit:     UnitDeposit,
		Count:    1,
		UnitRate: rates.Deposit,
		Subtotal: rates.Deposit,
	})

	var raw float64
	for _, line := range lines {
		raw += line.Subtotal
	}

	return Quote{
		Days:     days,
		Total:    roundToCents(raw),
		RawTotal: raw,
		Lines:    lines,
	}
}

// ParseRate normalizes a display price such as "1,500৳" or "$ 25.50"
// into a non-negative rate. Currency symbols, grouping separators and
// any other non-numeric characters are stripped; unparseable input
// yields zero rather than an error.
func ParseRate(raw string) float64 {
	var b strings.Builder
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()
	if cleaned == "" {
		return 0
	}
	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return sanitizeRate(value)
}

// NormalizeTable builds a RateTable from raw display strings.
func NormalizeTable(daily, threeDay, weekly, deposit string) RateTable {
	return RateTable{
		Daily:    ParseRate(daily),
		ThreeDay: ParseRate(threeDay),
		Weekly:   ParseRate(weekly),
		Deposit:  ParseRate(deposit),
	}
}

func sanitizeRate(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// roundToCents rounds half-up to two decimal places. Applied to the
// grand total only; per-line subtotals stay exact.
func roundToCents(v float64) float64 {
	return math.Floor(v*100+0.5) / 100
}
