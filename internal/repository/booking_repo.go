package repository

import (
	"context"
	"time"

	"designmarket/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type bookingModel struct {
	ID              int64               `gorm:"column:id;primaryKey"`
	ClientID        int64               `gorm:"column:client_id;index;not null"`
	DesignID        int64               `gorm:"column:design_id;index;not null"`
	DesignerID      int64               `gorm:"column:designer_id;index;not null"`
	NegotiatedPrice decimal.NullDecimal `gorm:"column:negotiated_price;type:numeric(10,2)"`
	Status          string              `gorm:"column:status;size:20;index;not null"`
	BookingDate     *time.Time          `gorm:"column:booking_date"`
	Notes           string              `gorm:"column:notes"`
	CreatedAt       time.Time           `gorm:"column:created_at;index"`
	UpdatedAt       time.Time           `gorm:"column:updated_at"`
}

func (bookingModel) TableName() string { return "bookings" }

func toDomainBooking(m bookingModel) *domain.Booking {
	b := &domain.Booking{
		ID:          m.ID,
		ClientID:    m.ClientID,
		DesignID:    m.DesignID,
		DesignerID:  m.DesignerID,
		Status:      domain.BookingStatus(m.Status),
		BookingDate: m.BookingDate,
		Notes:       m.Notes,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	if m.NegotiatedPrice.Valid {
		p := m.NegotiatedPrice.Decimal
		b.NegotiatedPrice = &p
	}
	return b
}

func toBookingModel(b *domain.Booking) bookingModel {
	m := bookingModel{
		ID:          b.ID,
		ClientID:    b.ClientID,
		DesignID:    b.DesignID,
		DesignerID:  b.DesignerID,
		Status:      string(b.Status),
		BookingDate: b.BookingDate,
		Notes:       b.Notes,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if b.NegotiatedPrice != nil {
		m.NegotiatedPrice = decimal.NewNullDecimal(b.NegotiatedPrice.Round(2))
	}
	return m
}

// BookingFilter narrows listings. Zero values mean "no constraint".
type BookingFilter struct {
	ClientID   int64
	DesignerID int64
	Status     domain.BookingStatus
}

// CreateWithNotification stores a booking and the notification for its
// designer atomically. Nothing is kept if either insert fails.
func (r *BookingRepository) CreateWithNotification(ctx context.Context, b *domain.Booking, n *domain.Notification) error {
	m := toBookingModel(b)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&m).Error; err != nil {
			return err
		}
		return createNotification(tx, n)
	})
	if err != nil {
		return translate(err)
	}

	created := toDomainBooking(m)
	created.DesignTitle = b.DesignTitle
	created.DesignPrice = b.DesignPrice
	created.PaidAmount = decimal.Zero
	created.PaymentStatus = domain.PaymentNone
	*b = *created
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	var m bookingModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	out, err := r.hydrate(ctx, []bookingModel{m})
	if err != nil {
		return nil, err
	}
	return &out[0], nil
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilter, limit, offset int) ([]domain.Booking, error) {
	q := r.db.WithContext(ctx).Model(&bookingModel{})
	if f.ClientID > 0 {
		q = q.Where("client_id = ?", f.ClientID)
	}
	if f.DesignerID > 0 {
		q = q.Where("designer_id = ?", f.DesignerID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var rows []bookingModel
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rows)
}

// UpdateDetails rewrites the client-editable fields of a pending booking.
func (r *BookingRepository) UpdateDetails(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	res := r.db.WithContext(ctx).
		Model(&bookingModel{}).
		Where("id = ? AND status = ?", b.ID, string(domain.BookingPending)).
		Updates(map[string]any{
			"notes":            m.Notes,
			"booking_date":     m.BookingDate,
			"negotiated_price": m.NegotiatedPrice,
			"updated_at":       time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrStale
	}
	return nil
}

// TransitionStatus moves a booking from one status to another and records the
// notification in the same transaction. ErrStale means the booking was no
// longer in the expected status.
func (r *BookingRepository) TransitionStatus(ctx context.Context, id int64, from, to domain.BookingStatus, n *domain.Notification) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&bookingModel{}).
			Where("id = ? AND status = ?", id, string(from)).
			Updates(map[string]any{
				"status":     string(to),
				"updated_at": time.Now().UTC(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrStale
		}
		if n == nil {
			return nil
		}
		return createNotification(tx, n)
	})
	return translate(err)
}

// hydrate fills the read-only fields: design title and price, the sum of
// successful payments and the payment status derived from it.
func (r *BookingRepository) hydrate(ctx context.Context, rows []bookingModel) ([]domain.Booking, error) {
	out := make([]domain.Booking, 0, len(rows))
	if len(rows) == 0 {
		return out, nil
	}

	designIDs := make([]int64, 0, len(rows))
	bookingIDs := make([]int64, 0, len(rows))
	for _, m := range rows {
		designIDs = append(designIDs, m.DesignID)
		bookingIDs = append(bookingIDs, m.ID)
	}

	var designs []designModel
	if err := r.db.WithContext(ctx).
		Select("id", "title", "price").
		Where("id IN ?", designIDs).
		Find(&designs).Error; err != nil {
		return nil, err
	}
	byDesign := make(map[int64]designModel, len(designs))
	for _, d := range designs {
		byDesign[d.ID] = d
	}

	var payments []paymentModel
	if err := r.db.WithContext(ctx).
		Select("booking_id", "amount").
		Where("booking_id IN ? AND successful = ?", bookingIDs, true).
		Find(&payments).Error; err != nil {
		return nil, err
	}
	paid := make(map[int64]decimal.Decimal, len(payments))
	for _, p := range payments {
		paid[p.BookingID] = paid[p.BookingID].Add(p.Amount)
	}

	for _, m := range rows {
		b := toDomainBooking(m)
		if d, ok := byDesign[m.DesignID]; ok {
			b.DesignTitle = d.Title
			b.DesignPrice = d.Price
		}
		b.PaidAmount = paid[m.ID]
		b.PaymentStatus = domain.DerivePaymentStatus(b.PaidAmount, b.AgreedPrice())
		out = append(out, *b)
	}
	return out, nil
}
