package ginserver

import (
	"errors"
	"net/http"
	"strconv"

	gin "github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/krushna001m/RentEasy-sub000/internal/app/commands"
	"github.com/krushna001m/RentEasy-sub000/internal/app/dto"
	BookingApp "github.com/krushna001m/RentEasy-sub000/internal/app/handlers/booking"
	"github.com/krushna001m/RentEasy-sub000/internal/app/policies"
	"github.com/krushna001m/RentEasy-sub000/internal/app/queries"
	domainbooking "github.com/krushna001m/RentEasy-sub000/internal/domain/booking"
	"github.com/krushna001m/RentEasy-sub000/internal/domain/pricing"
)

type BookingHandler struct {
	Commands commands.Bus
	Queries  queries.Bus
	Notifier policies.Notifier
}

// confirmBookingRequest mirrors the checkout form: prices arrive as
// display strings and are normalized before pricing.
type confirmBookingRequest struct {
	ListingID         string `json:"listing_id"`
	OwnerID           string `json:"owner_id"`
	ItemTitle         string `json:"item_title"`
	PaymentMethod     string `json:"payment_method"`
	Days              int    `json:"days"`
	DailyPrice        string `json:"daily_price"`
	ThreeDayPrice     string `json:"three_day_price"`
	WeeklyPrice       string `json:"weekly_price"`
	Deposit           string `json:"deposit"`
	AgreementAccepted bool   `json:"agreement_accepted"`
}

func (h BookingHandler) Confirm(c *gin.Context) {
	if h.Commands == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "commands unavailable"})
		return
	}
	var req confirmBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	cmd := BookingApp.ConfirmBookingCommand{
		CommandID:         uuid.NewString(),
		ListingID:         req.ListingID,
		OwnerID:           req.OwnerID,
		ItemTitle:         req.ItemTitle,
		PaymentMethod:     req.PaymentMethod,
		Days:              req.Days,
		Rates:             pricing.NormalizeTable(req.DailyPrice, req.ThreeDayPrice, req.WeeklyPrice, req.Deposit),
		AgreementAccepted: req.AgreementAccepted,
		IdempotencyKeyV:   c.GetHeader("Idempotency-Key"),
	}
	result, err := commands.Dispatch[BookingApp.ConfirmBookingCommand, *BookingApp.ConfirmBookingResult](c.Request.Context(), h.Commands, cmd)
	if err != nil {
		title, message := BookingApp.UserMessage(err)
		h.notify(c, title, message)
		c.JSON(confirmStatus(err), gin.H{"error": err.Error(), "title": title, "message": message})
		return
	}
	title, message := BookingApp.SuccessMessage(result)
	h.notify(c, title, message)
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) Quote(c *gin.Context) {
	if h.Queries == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "queries unavailable"})
		return
	}
	days, _ := strconv.Atoi(c.Query("days"))
	query := BookingApp.GetQuoteQuery{
		Days: days,
		Rates: pricing.NormalizeTable(
			c.Query("daily_price"),
			c.Query("three_day_price"),
			c.Query("weekly_price"),
			c.Query("deposit"),
		),
	}
	result, err := queries.Ask[BookingApp.GetQuoteQuery, dto.QuoteDTO](c.Request.Context(), h.Queries, query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h BookingHandler) notify(c *gin.Context, title, message string) {
	if h.Notifier == nil {
		return
	}
	h.Notifier.Show(c.Request.Context(), title, message)
}

func confirmStatus(err error) int {
	switch {
	case errors.Is(err, domainbooking.ErrAgreementRequired):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domainbooking.ErrNotAuthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, domainbooking.ErrPersistenceFailure):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

var _ BookingHTTP = BookingHandler{}
