package repository

import (
	"context"
	"time"

	"designmarket/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DesignerRepository stores the public profile attached to designer accounts.
type DesignerRepository struct {
	db *gorm.DB
}

func NewDesignerRepository(db *gorm.DB) *DesignerRepository {
	return &DesignerRepository{db: db}
}

type designerProfileModel struct {
	UserID      int64     `gorm:"column:user_id;primaryKey;autoIncrement:false"`
	Bio         string    `gorm:"column:bio"`
	PhoneNumber string    `gorm:"column:phone_number;size:32"`
	CompanyName string    `gorm:"column:company_name;size:200"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (designerProfileModel) TableName() string { return "designer_profiles" }

// GetProfile returns the profile of a designer account. A designer that never
// filled one in gets an empty profile; non-designers are ErrNotFound.
func (r *DesignerRepository) GetProfile(ctx context.Context, userID int64) (*domain.DesignerProfile, error) {
	var u userModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND role = ?", userID, string(domain.RoleDesigner)).
		First(&u).Error
	if err != nil {
		return nil, translate(err)
	}

	p := &domain.DesignerProfile{UserID: u.ID, Username: u.Username}

	var m designerProfileModel
	err = r.db.WithContext(ctx).Where("user_id = ?", userID).Limit(1).Find(&m).Error
	if err != nil {
		return nil, err
	}
	if m.UserID != 0 {
		p.Bio = m.Bio
		p.PhoneNumber = m.PhoneNumber
		p.CompanyName = m.CompanyName
		p.UpdatedAt = m.UpdatedAt
	}

	if err := r.db.WithContext(ctx).
		Model(&designModel{}).
		Where("designer_id = ?", userID).
		Count(&p.DesignCount).Error; err != nil {
		return nil, err
	}
	return p, nil
}

func (r *DesignerRepository) UpsertProfile(ctx context.Context, p *domain.DesignerProfile) error {
	m := designerProfileModel{
		UserID:      p.UserID,
		Bio:         p.Bio,
		PhoneNumber: p.PhoneNumber,
		CompanyName: p.CompanyName,
		UpdatedAt:   time.Now().UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"bio", "phone_number", "company_name", "updated_at"}),
		}).
		Create(&m).Error
}
