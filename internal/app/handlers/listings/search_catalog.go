package listings

import (
	"context"
	"sort"
	"strings"

	"github.com/krushna001m/RentEasy-sub000/internal/app/dto"
	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
	domainlisting "github.com/krushna001m/RentEasy-sub000/internal/domain/listing"
)

const searchCatalogKey = "listings.catalog"

const (
	SortTrending = "trending"
	SortNewest   = "newest"
	SortPriceAsc = "price_asc"
)

type SearchCatalogQuery struct {
	Category string
	Search   string
	Sort     string
	Limit    int
}

func (q SearchCatalogQuery) Key() string { return searchCatalogKey }

type SearchCatalogHandler struct {
	Listings domainlisting.Repository
}

func (h *SearchCatalogHandler) Handle(ctx context.Context, query SearchCatalogQuery) (dto.ListingCollection, error) {
	all, err := h.Listings.Catalog(ctx)
	if err != nil {
		return dto.ListingCollection{}, err
	}

	category := strings.ToLower(strings.TrimSpace(query.Category))
	needle := strings.ToLower(strings.TrimSpace(query.Search))
	matches := make([]*domainlisting.Listing, 0, len(all))
	for _, l := range all {
		if category != "" && strings.ToLower(l.Category) != category {
			continue
		}
		if needle != "" && !matchListing(l, needle) {
			continue
		}
		matches = append(matches, l)
	}

	sort.Slice(matches, func(i, j int) bool {
		switch query.Sort {
		case SortNewest:
			return matches[i].CreatedAt.After(matches[j].CreatedAt)
		case SortPriceAsc:
			if matches[i].Rates.Daily == matches[j].Rates.Daily {
				return matches[i].Purchased > matches[j].Purchased
			}
			return matches[i].Rates.Daily < matches[j].Rates.Daily
		default: // trending
			if matches[i].Purchased == matches[j].Purchased {
				return matches[i].CreatedAt.After(matches[j].CreatedAt)
			}
			return matches[i].Purchased > matches[j].Purchased
		}
	})

	total := len(matches)
	if query.Limit > 0 && query.Limit < total {
		matches = matches[:query.Limit]
	}

	items := make([]dto.ListingSummary, 0, len(matches))
	for _, l := range matches {
		items = append(items, dto.MapListingSummary(l))
	}
	return dto.ListingCollection{Items: items, Total: total}, nil
}

func matchListing(l *domainlisting.Listing, needle string) bool {
	haystack := strings.ToLower(strings.Join([]string{l.Title, l.Description, l.Location}, " "))
	return strings.Contains(haystack, needle)
}

var _ queries.Handler[SearchCatalogQuery, dto.ListingCollection] = (*SearchCatalogHandler)(nil)
