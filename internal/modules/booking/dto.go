package booking

import "github.com/shopspring/decimal"

const dateLayout = "2006-01-02"

type CreateBookingRequest struct {
	DesignID        int64            `json:"design_id" binding:"required,gt=0"`
	NegotiatedPrice *decimal.Decimal `json:"negotiated_price"`
	BookingDate     string           `json:"booking_date" binding:"omitempty,datetime=2006-01-02"`
	Notes           string           `json:"notes" binding:"max=2000"`
}

// UpdateBookingRequest is a partial update; nil fields are left unchanged.
type UpdateBookingRequest struct {
	NegotiatedPrice *decimal.Decimal `json:"negotiated_price"`
	BookingDate     *string          `json:"booking_date" binding:"omitempty,datetime=2006-01-02"`
	Notes           *string          `json:"notes" binding:"omitempty,max=2000"`
}
