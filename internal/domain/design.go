package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Design struct {
	ID          int64           `json:"id"`
	DesignerID  int64           `json:"designer_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Features    string          `json:"features,omitempty"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`

	Designer *User `json:"designer,omitempty"`
}
