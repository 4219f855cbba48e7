package payment

import (
	"designmarket/internal/domain"
	"designmarket/internal/pkg/apperr"
)

var (
	ErrPaymentNotFound      = apperr.New(apperr.ErrNotFound, "PAYMENT_NOT_FOUND", "Payment not found")
	ErrBookingNotFound      = apperr.New(apperr.ErrNotFound, "BOOKING_NOT_FOUND", "Booking not found")
	ErrPaymentAccessDenied  = apperr.New(apperr.ErrPermissionDenied, "PAYMENT_ACCESS_DENIED", "Only the booking's client can pay for it")
	ErrPaymentExists        = apperr.New(apperr.ErrConflict, "PAYMENT_EXISTS", "A payment for this booking already exists")
	ErrPaymentAlreadyPaid   = apperr.New(apperr.ErrConflict, "PAYMENT_ALREADY_SUCCEEDED", "Payment has already succeeded")
	ErrBookingCancelled     = apperr.Validation("booking_id", "cannot pay for a cancelled booking")
	ErrInvalidAmount        = apperr.Validation("amount", "must be greater than 0")
	ErrAmountPrecision      = apperr.Validation("amount", "must have at most 2 decimal places")
	ErrAmountTooLarge       = apperr.Validation("amount", "must not exceed 99999999.99")
	ErrAmountExceedsBooking = apperr.Validation("amount", "must not exceed the agreed price")
)

var amountErrors = map[error]error{
	domain.ErrMoneyNotPositive: ErrInvalidAmount,
	domain.ErrMoneyPrecision:   ErrAmountPrecision,
	domain.ErrMoneyTooLarge:    ErrAmountTooLarge,
}
