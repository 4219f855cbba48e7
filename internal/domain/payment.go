package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Payment struct {
	ID            int64           `json:"id"`
	BookingID     int64           `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method"`
	TransactionID string          `json:"transaction_id"`
	PaidAt        *time.Time      `json:"paid_at"`
	Successful    bool            `json:"successful"`
	CreatedAt     time.Time       `json:"created_at"`

	Booking *Booking `json:"booking,omitempty"`
}
