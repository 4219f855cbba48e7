package catalog

import "github.com/shopspring/decimal"

// DesignRequest is used for both create and full update.
type DesignRequest struct {
	Title       string          `json:"title" binding:"required,max=200"`
	Description string          `json:"description" binding:"required"`
	Features    string          `json:"features"`
	Price       decimal.Decimal `json:"price"`
	ImageURL    string          `json:"image_url" binding:"omitempty,url,max=500"`
}

type UpdateProfileRequest struct {
	Bio         string `json:"bio" binding:"max=2000"`
	PhoneNumber string `json:"phone_number" binding:"max=32"`
	CompanyName string `json:"company_name" binding:"max=200"`
}
