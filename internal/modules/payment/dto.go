package payment

import (
	"time"

	"github.com/shopspring/decimal"
)

type CreatePaymentRequest struct {
	BookingID     int64           `json:"booking_id" binding:"required,gt=0"`
	Amount        decimal.Decimal `json:"amount"`
	PaymentMethod string          `json:"payment_method" binding:"required,max=50"`
	// TransactionID is generated when empty.
	TransactionID string `json:"transaction_id" binding:"max=100"`
}

// SucceedPaymentRequest stands in for the gateway callback that settles a payment.
type SucceedPaymentRequest struct {
	TransactionID string     `json:"transaction_id" binding:"max=100"`
	PaidAt        *time.Time `json:"paid_at"`
}
