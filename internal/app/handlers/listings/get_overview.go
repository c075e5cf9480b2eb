package listings

import (
	"context"

	"github.com/krushna001m/RentEasy-sub000/internal/app/dto"
	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
	domainlisting "github.com/krushna001m/RentEasy-sub000/internal/domain/listing"
)

const getOverviewKey = "listings.overview"

type GetOverviewQuery struct {
	OwnerID   string
	ListingID string
}

func (q GetOverviewQuery) Key() string { return getOverviewKey }

type GetOverviewHandler struct {
	Listings domainlisting.Repository
}

func (h *GetOverviewHandler) Handle(ctx context.Context, query GetOverviewQuery) (dto.ListingDetail, error) {
	l, err := h.Listings.ByID(ctx, domainlisting.OwnerID(query.OwnerID), domainlisting.ID(query.ListingID))
	if err != nil {
		return dto.ListingDetail{}, err
	}
	return dto.MapListingDetail(l), nil
}

var _ queries.Handler[GetOverviewQuery, dto.ListingDetail] = (*GetOverviewHandler)(nil)
