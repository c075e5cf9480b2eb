package dto

import "github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"

type QuoteLine struct {
	Unit     string  `json:"unit"`
	Count    int     `json:"count"`
	UnitRate float64 `json:"unit_rate"`
	Subtotal float64 `json:"subtotal"`
}

type QuoteDTO struct {
	Days  int         `json:"days"`
	Total float64     `json:"total"`
	Lines []QuoteLine `json:"lines"`
}

func MapQuote(q pricing.Quote) QuoteDTO {
	lines := make([]QuoteLine, 0, len(q.Lines))
	for _, line := range q.Lines {
		lines = append(lines, QuoteLine{
			Unit:     string(line.Unit),
			Count:    line.Count,
			UnitRate: line.UnitRate,
			Subtotal: line.Subtotal,
		})
	}
	return QuoteDTO{Days: q.Days, Total: q.Total, Lines: lines}
}
