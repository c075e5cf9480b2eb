package ginserver

import (
	"errors"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	"github.com/krushna001m/RentEasy-sub000/internal/app/dto"
	ListingApp "github.com/krushna001m/RentEasy-sub000/internal/app/handlers/listings"
	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
	domainlisting "github.com/krushna001m/RentEasy-sub000/internal/domain/listing"
)

type ListingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
}

type createListingRequest struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Category      string `json:"category"`
	Location      string `json:"location"`
	DailyPrice    string `json:"daily_price"`
	ThreeDayPrice string `json:"three_day_price"`
	WeeklyPrice   string `json:"weekly_price"`
	Deposit       string `json:"deposit"`
	ThumbnailURL  string `json:"thumbnail_url"`
}

func (h ListingHandler) Catalog(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	query := ListingApp.SearchCatalogQuery{
		Category: c.Query("category"),
		Search:   c.Query("search"),
		Sort:     c.Query("sort"),
		Limit:    limit,
	}
	result, err := queries.Ask[ListingApp.SearchCatalogQuery, dto.ListingCollection](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Overview(c *gin.Context) {
	query := ListingApp.GetOverviewQuery{
		OwnerID:   c.Param("owner"),
		ListingID: c.Param("id"),
	}
	result, err := queries.Ask[ListingApp.GetOverviewQuery, dto.ListingDetail](c.Request.Context(), h.Queries, query)
	if err != nil {
		if errors.Is(err, domainlisting.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h ListingHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req createListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := ListingApp.CreateListingCommand{
		CommandID:     uuid.NewString(),
		OwnerID:       p.ID,
		Title:         req.Title,
		Description:   req.Description,
		Category:      req.Category,
		Location:      req.Location,
		DailyPrice:    req.DailyPrice,
		ThreeDayPrice: req.ThreeDayPrice,
		WeeklyPrice:   req.WeeklyPrice,
		Deposit:       req.Deposit,
		ThumbnailURL:  req.ThumbnailURL,
	}
	result, err := commands.Dispatch[ListingApp.CreateListingCommand, *ListingApp.CreateListingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, result)
}

func (h ListingHandler) UploadPhoto(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	file, header, err := c.Request.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file required"})
		return
	}
	defer file.Close()

	listingID := c.Param("id")
	cmd := ListingApp.UploadPhotoCommand{
		OwnerID:     p.ID,
		ListingID:   listingID,
		ObjectKey:   "listings/" + listingID + "/" + uuid.NewString() + "-" + header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Reader:      file,
	}
	result, err := commands.Dispatch[ListingApp.UploadPhotoCommand, *dto.PhotoUploadResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		c.JSON(uploadStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func uploadStatus(err error) int {
	switch {
	case errors.Is(err, domainlisting.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ListingApp.ErrListingNotOwned):
		return http.StatusForbidden
	default:
		return http.StatusBadRequest
	}
}

var _ ListingHTTP = ListingHandler{}
