package repository

import (
	"context"
	"strings"
	"time"

	"designmarket/internal/domain"

	"gorm.io/gorm"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

type messageModel struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	SenderID   int64     `gorm:"column:sender_id;index;not null"`
	ReceiverID int64     `gorm:"column:receiver_id;index;not null"`
	DesignID   int64     `gorm:"column:design_id;index;not null"`
	Content    string    `gorm:"column:content;not null"`
	IsRead     bool      `gorm:"column:is_read;not null;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
}

func (messageModel) TableName() string { return "messages" }

func toDomainMessage(m messageModel) *domain.Message {
	return &domain.Message{
		ID:         m.ID,
		SenderID:   m.SenderID,
		ReceiverID: m.ReceiverID,
		DesignID:   m.DesignID,
		Content:    m.Content,
		IsRead:     m.IsRead,
		Timestamp:  m.CreatedAt,
	}
}

func (r *MessageRepository) Create(ctx context.Context, msg *domain.Message) error {
	m := messageModel{
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		DesignID:   msg.DesignID,
		Content:    strings.TrimSpace(msg.Content),
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*msg = *toDomainMessage(m)
	return nil
}

// ListForUser returns messages the user sent or received, optionally limited
// to one design thread.
func (r *MessageRepository) ListForUser(ctx context.Context, userID, designID int64, limit, offset int) ([]domain.Message, error) {
	q := r.db.WithContext(ctx).
		Where("(sender_id = ? OR receiver_id = ?)", userID, userID)
	if designID > 0 {
		q = q.Where("design_id = ?", designID)
	}

	var rows []messageModel
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainMessage(m))
	}
	return out, nil
}

// HasThread reports whether a and b already exchanged a message about designID.
func (r *MessageRepository) HasThread(ctx context.Context, designID, a, b int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("design_id = ?", designID).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// MarkAsRead is allowed for the receiver only; anything else is ErrNotFound.
func (r *MessageRepository) MarkAsRead(ctx context.Context, id, receiverID int64) error {
	res := r.db.WithContext(ctx).
		Model(&messageModel{}).
		Where("id = ? AND receiver_id = ?", id, receiverID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
