package booking

import (
	"designmarket/internal/domain"
	"designmarket/internal/pkg/apperr"
)

var (
	ErrBookingNotFound     = apperr.New(apperr.ErrNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	ErrDesignNotFound      = apperr.New(apperr.ErrNotFound, "DESIGN_NOT_FOUND", "Design not found")
	ErrBookingAccessDenied = apperr.New(apperr.ErrPermissionDenied, "BOOKING_ACCESS_DENIED", "You are not a party to this booking")
	ErrCancelNotAllowed    = apperr.New(apperr.ErrPermissionDenied, "CANCEL_NOT_ALLOWED", "Only the designer can cancel a confirmed booking")
	ErrBookingNotEditable  = apperr.New(apperr.ErrValidation, "BOOKING_NOT_EDITABLE", "Only pending bookings can be edited")
	ErrInvalidTransition   = apperr.New(apperr.ErrValidation, "INVALID_STATUS_TRANSITION", "Booking status cannot change this way")
	ErrBookingChanged      = apperr.New(apperr.ErrConflict, "BOOKING_STATE_CHANGED", "Booking was modified concurrently, reload and retry")
	ErrPastBookingDate     = apperr.Validation("booking_date", "must not be in the past")
	ErrInvalidBookingDate  = apperr.Validation("booking_date", "must be a date in format YYYY-MM-DD")
	ErrInvalidPrice        = apperr.Validation("negotiated_price", "must be greater than 0")
	ErrPricePrecision      = apperr.Validation("negotiated_price", "must have at most 2 decimal places")
	ErrPriceTooLarge       = apperr.Validation("negotiated_price", "must not exceed 99999999.99")
	ErrInvalidStatus       = apperr.Validation("status", "must be one of: pending confirmed completed cancelled")
)

var priceErrors = map[error]error{
	domain.ErrMoneyNotPositive: ErrInvalidPrice,
	domain.ErrMoneyPrecision:   ErrPricePrecision,
	domain.ErrMoneyTooLarge:    ErrPriceTooLarge,
}
