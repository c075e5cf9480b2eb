package booking

import (
	"context"

	"github.com/krushna001m/RentEasy-sub000/internal/app/dto"
	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
	"github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"
)

const quoteKey = "booking.quote"

// GetQuoteQuery previews the tiered total for a duration before the
// renter commits. Pure computation; no store access.
type GetQuoteQuery struct {
	Days  int
	Rates pricing.RateTable
}

func (q GetQuoteQuery) Key() string { return quoteKey }

type GetQuoteHandler struct{}

func (GetQuoteHandler) Handle(_ context.Context, query GetQuoteQuery) (dto.QuoteDTO, error) {
	return dto.MapQuote(pricing.ComputeTotal(query.Rates, query.Days)), nil
}

var _ queries.Handler[GetQuoteQuery, dto.QuoteDTO] = GetQuoteHandler{}
