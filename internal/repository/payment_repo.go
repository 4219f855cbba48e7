package repository

import (
	"context"
	"time"

	"designmarket/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

type paymentModel struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	BookingID     int64           `gorm:"column:booking_id;uniqueIndex;not null"`
	Amount        decimal.Decimal `gorm:"column:amount;type:numeric(10,2);not null"`
	PaymentMethod string          `gorm:"column:payment_method;size:50"`
	TransactionID string          `gorm:"column:transaction_id;size:100"`
	PaidAt        *time.Time      `gorm:"column:paid_at"`
	Successful    bool            `gorm:"column:successful;not null;default:false"`
	CreatedAt     time.Time       `gorm:"column:created_at;index"`
}

func (paymentModel) TableName() string { return "payments" }

func toDomainPayment(m paymentModel) *domain.Payment {
	return &domain.Payment{
		ID:            m.ID,
		BookingID:     m.BookingID,
		Amount:        m.Amount,
		PaymentMethod: m.PaymentMethod,
		TransactionID: m.TransactionID,
		PaidAt:        m.PaidAt,
		Successful:    m.Successful,
		CreatedAt:     m.CreatedAt,
	}
}

// PaymentFilter partitions payments through their booking's parties.
type PaymentFilter struct {
	ClientID   int64
	DesignerID int64
}

// Create inserts a payment. A second payment for the same booking fails with
// ErrDuplicate.
func (r *PaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	m := paymentModel{
		BookingID:     p.BookingID,
		Amount:        p.Amount.Round(2),
		PaymentMethod: p.PaymentMethod,
		TransactionID: p.TransactionID,
		PaidAt:        p.PaidAt,
		Successful:    p.Successful,
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*p = *toDomainPayment(m)
	return nil
}

func (r *PaymentRepository) GetByID(ctx context.Context, id int64) (*domain.Payment, error) {
	var m paymentModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainPayment(m), nil
}

func (r *PaymentRepository) ExistsForBooking(ctx context.Context, bookingID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("booking_id = ?", bookingID).
		Count(&count).Error
	return count > 0, err
}

func (r *PaymentRepository) List(ctx context.Context, f PaymentFilter, limit, offset int) ([]domain.Payment, error) {
	q := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Select("payments.*").
		Joins("JOIN bookings ON bookings.id = payments.booking_id")
	if f.ClientID > 0 {
		q = q.Where("bookings.client_id = ?", f.ClientID)
	}
	if f.DesignerID > 0 {
		q = q.Where("bookings.designer_id = ?", f.DesignerID)
	}

	var rows []paymentModel
	err := q.Order("payments.created_at DESC").Order("payments.id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Payment, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPayment(m))
	}
	return out, nil
}

// MarkSucceeded flips an unsuccessful payment to successful exactly once.
// ErrStale means it had already succeeded.
func (r *PaymentRepository) MarkSucceeded(ctx context.Context, id int64, transactionID string, paidAt time.Time) error {
	updates := map[string]any{
		"successful": true,
		"paid_at":    paidAt.UTC(),
	}
	if transactionID != "" {
		updates["transaction_id"] = transactionID
	}
	res := r.db.WithContext(ctx).
		Model(&paymentModel{}).
		Where("id = ? AND successful = ?", id, false).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}
