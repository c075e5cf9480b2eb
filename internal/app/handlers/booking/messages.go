package booking

import (
	"errors"
	"fmt"

	domainbooking "github.com/krushna001m/RentEasy-sub000/internal/domain/booking"
)

// UserMessage maps a workflow error to the title/message pair shown on
// the notification surface. The workflow itself only returns structured
// errors; presentation stays with the caller.
func UserMessage(err error) (title, message string) {
	switch {
	case err == nil:
		return "Payment Successful", "Your booking is confirmed."
	case errors.Is(err, domainbooking.ErrAgreementRequired):
		return "Agreement Required", "Please accept the rental agreement before paying."
	case errors.Is(err, domainbooking.ErrNotAuthenticated):
		return "Sign In Required", "Please sign in to complete your booking."
	case errors.Is(err, domainbooking.ErrPersistenceFailure):
		return "Payment Failed", "We could not record your booking. Please try again."
	case errors.Is(err, domainbooking.ErrCounterUpdateFailed):
		return "Booking Confirmed", "Your booking succeeded, but the listing stats may lag behind."
	default:
		return "Something Went Wrong", "An unexpected error occurred. Please try again."
	}
}

// SuccessMessage formats the confirmation shown after a completed
// booking.
func SuccessMessage(result *ConfirmBookingResult) (title, message string) {
	if result == nil {
		return UserMessage(nil)
	}
	return "Payment Successful", fmt.Sprintf("Booked for %d day(s). Total paid: %.2f", result.Days, result.Total)
}
