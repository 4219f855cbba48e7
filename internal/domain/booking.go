package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCompleted, BookingCancelled:
		return true
	}
	return false
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	switch s {
	case BookingPending:
		return next == BookingConfirmed || next == BookingCancelled
	case BookingConfirmed:
		return next == BookingCompleted || next == BookingCancelled
	}
	return false
}

type PaymentStatus string

const (
	PaymentNone PaymentStatus = "none"
	PaymentHalf PaymentStatus = "half"
	PaymentFull PaymentStatus = "full"
)

// DerivePaymentStatus compares what was successfully paid with the agreed price.
func DerivePaymentStatus(paid, price decimal.Decimal) PaymentStatus {
	if !paid.IsPositive() {
		return PaymentNone
	}
	if paid.GreaterThanOrEqual(price) {
		return PaymentFull
	}
	return PaymentHalf
}

type Booking struct {
	ID              int64            `json:"id"`
	ClientID        int64            `json:"client_id"`
	DesignID        int64            `json:"design_id"`
	DesignerID      int64            `json:"designer_id"`
	NegotiatedPrice *decimal.Decimal `json:"negotiated_price"`
	Status          BookingStatus    `json:"status"`
	BookingDate     *time.Time       `json:"booking_date,omitempty"`
	Notes           string           `json:"notes"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`

	// Filled on read, not stored.
	DesignTitle   string          `json:"design_title,omitempty"`
	DesignPrice   decimal.Decimal `json:"-"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}

// AgreedPrice is the negotiated price when present, the catalog price otherwise.
func (b *Booking) AgreedPrice() decimal.Decimal {
	if b.NegotiatedPrice != nil {
		return *b.NegotiatedPrice
	}
	return b.DesignPrice
}

// IsParty reports whether userID is the client or the designer of the booking.
func (b *Booking) IsParty(userID int64) bool {
	return b.ClientID == userID || b.DesignerID == userID
}
