package repository

import (
	"context"
	"time"

	"designmarket/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TokenRepository keeps the deny-list of revoked JWT ids.
type TokenRepository struct {
	db *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

type revokedTokenModel struct {
	JTI       string    `gorm:"column:jti;primaryKey;size:64"`
	UserID    int64     `gorm:"column:user_id;index"`
	ExpiresAt time.Time `gorm:"column:expires_at;index"`
	RevokedAt time.Time `gorm:"column:revoked_at"`
}

func (revokedTokenModel) TableName() string { return "revoked_tokens" }

// Revoke is idempotent: revoking the same id twice keeps the first row.
func (r *TokenRepository) Revoke(ctx context.Context, t *domain.RevokedToken) error {
	m := revokedTokenModel{
		JTI:       t.JTI,
		UserID:    t.UserID,
		ExpiresAt: t.ExpiresAt.UTC(),
		RevokedAt: t.RevokedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&m).Error
}

func (r *TokenRepository) IsRevoked(ctx context.Context, jti string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&revokedTokenModel{}).
		Where("jti = ?", jti).
		Count(&count).Error
	return count > 0, err
}

// DeleteExpired drops entries whose token would be rejected by expiry anyway.
func (r *TokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expires_at < ?", now.UTC()).
		Delete(&revokedTokenModel{})
	return res.RowsAffected, res.Error
}
