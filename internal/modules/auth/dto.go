package auth

import "designmarket/internal/domain"

type RegisterRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=150"`
	Email     string `json:"email" binding:"required,email,max=254"`
	Password  string `json:"password" binding:"required,min=8,max=128"`
	Role      string `json:"role" binding:"required,oneof=client designer"`
	FirstName string `json:"first_name" binding:"max=150"`
	LastName  string `json:"last_name" binding:"max=150"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

type LogoutRequest struct {
	Refresh string `json:"refresh"`
}

// AuthResponse is returned by register and login. Token duplicates Access
// for clients that expect a single token field.
type AuthResponse struct {
	User    *domain.User `json:"user"`
	Token   string       `json:"token"`
	Access  string       `json:"access"`
	Refresh string       `json:"refresh"`
}
