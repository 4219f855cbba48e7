package repository

import (
	"context"
	"strings"
	"time"

	"designmarket/internal/domain"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type DesignRepository struct {
	db *gorm.DB
}

func NewDesignRepository(db *gorm.DB) *DesignRepository {
	return &DesignRepository{db: db}
}

type designModel struct {
	ID          int64           `gorm:"column:id;primaryKey"`
	DesignerID  int64           `gorm:"column:designer_id;index;not null"`
	Title       string          `gorm:"column:title;size:200;not null"`
	Description string          `gorm:"column:description"`
	Features    string          `gorm:"column:features"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(10,2);not null"`
	ImageURL    string          `gorm:"column:image_url"`
	CreatedAt   time.Time       `gorm:"column:created_at;index"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

func (designModel) TableName() string { return "designs" }

func toDomainDesign(m designModel) *domain.Design {
	return &domain.Design{
		ID:          m.ID,
		DesignerID:  m.DesignerID,
		Title:       m.Title,
		Description: m.Description,
		Features:    m.Features,
		Price:       m.Price,
		ImageURL:    m.ImageURL,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func toDesignModel(d *domain.Design) designModel {
	return designModel{
		ID:          d.ID,
		DesignerID:  d.DesignerID,
		Title:       strings.TrimSpace(d.Title),
		Description: d.Description,
		Features:    d.Features,
		Price:       d.Price.Round(2),
		ImageURL:    d.ImageURL,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// likeEscaper makes % and _ in a search term match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

type DesignFilter struct {
	DesignerID int64
	Query      string
}

func (r *DesignRepository) Create(ctx context.Context, d *domain.Design) error {
	m := toDesignModel(d)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*d = *toDomainDesign(m)
	return nil
}

// GetByID loads a design together with its designer account.
func (r *DesignRepository) GetByID(ctx context.Context, id int64) (*domain.Design, error) {
	var m designModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	d := toDomainDesign(m)

	var u userModel
	err := r.db.WithContext(ctx).First(&u, m.DesignerID).Error
	switch {
	case err == nil:
		d.Designer = toDomainUser(u)
	case translate(err) != ErrNotFound:
		return nil, err
	}
	return d, nil
}

func (r *DesignRepository) List(ctx context.Context, f DesignFilter, limit, offset int) ([]domain.Design, error) {
	q := r.db.WithContext(ctx).Model(&designModel{})
	if f.DesignerID > 0 {
		q = q.Where("designer_id = ?", f.DesignerID)
	}
	if s := strings.TrimSpace(f.Query); s != "" {
		like := "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
		q = q.Where(`(LOWER(title) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, like, like)
	}

	var rows []designModel
	err := q.Order("created_at DESC").Order("id DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.Design, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainDesign(m))
	}
	return out, nil
}

func (r *DesignRepository) Update(ctx context.Context, d *domain.Design) error {
	m := toDesignModel(d)
	res := r.db.WithContext(ctx).
		Model(&designModel{}).
		Where("id = ?", d.ID).
		Updates(map[string]any{
			"title":       m.Title,
			"description": m.Description,
			"features":    m.Features,
			"price":       m.Price,
			"image_url":   m.ImageURL,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a design with its bookings, their payments and the design's
// message thread in one transaction.
func (r *DesignRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		bookingIDs := tx.Model(&bookingModel{}).Select("id").Where("design_id = ?", id)
		if err := tx.Where("booking_id IN (?)", bookingIDs).Delete(&paymentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("design_id = ?", id).Delete(&bookingModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("design_id = ?", id).Delete(&messageModel{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&designModel{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
