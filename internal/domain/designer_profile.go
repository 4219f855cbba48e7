package domain

import "time"

// DesignerProfile holds the public business card of a designer account.
type DesignerProfile struct {
	UserID      int64     `json:"user_id"`
	Username    string    `json:"username"`
	Bio         string    `json:"bio"`
	PhoneNumber string    `json:"phone_number,omitempty"`
	CompanyName string    `json:"company_name,omitempty"`
	DesignCount int64     `json:"design_count"`
	UpdatedAt   time.Time `json:"updated_at"`
}
