package dto

import (
	"time"

	domainlisting "github.com/krushna001m/RentEasy-sub000/internal/domain/listing"
)

type RateTableDTO struct {
	Daily    float64 `json:"daily"`
	ThreeDay float64 `json:"three_day"`
	Weekly   float64 `json:"weekly"`
	Deposit  float64 `json:"deposit"`
}

type ListingSummary struct {
	ID           string  `json:"id"`
	Owner        string  `json:"owner"`
	Title        string  `json:"title"`
	Category     string  `json:"category"`
	Location     string  `json:"location"`
	DailyRate    float64 `json:"daily_rate"`
	DisplayPrice string  `json:"display_price"`
	Purchased    int     `json:"purchased"`
	ThumbnailURL string  `json:"thumbnail_url"`
}

type ListingDetail struct {
	ListingSummary
	Description string       `json:"description"`
	Rates       RateTableDTO `json:"rates"`
	Photos      []string     `json:"photos"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

type ListingCollection struct {
	Items []ListingSummary `json:"items"`
	Total int              `json:"total"`
}

type PhotoUploadResult struct {
	ListingID    string   `json:"listing_id"`
	Photos       []string `json:"photos"`
	ThumbnailURL string   `json:"thumbnail_url"`
}

func MapListingSummary(l *domainlisting.Listing) ListingSummary {
	return ListingSummary{
		ID:           string(l.ID),
		Owner:        string(l.Owner),
		Title:        l.Title,
		Category:     l.Category,
		Location:     l.Location,
		DailyRate:    l.Rates.Daily,
		DisplayPrice: l.DisplayPrice,
		Purchased:    l.Purchased,
		ThumbnailURL: l.ThumbnailURL,
	}
}

func MapListingDetail(l *domainlisting.Listing) ListingDetail {
	return ListingDetail{
		ListingSummary: MapListingSummary(l),
		Description:    l.Description,
		Rates: RateTableDTO{
			Daily:    l.Rates.Daily,
			ThreeDay: l.Rates.ThreeDay,
			Weekly:   l.Rates.Weekly,
			Deposit:  l.Rates.Deposit,
		},
		Photos:    append([]string(nil), l.Photos...),
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}
