package domain

import "time"

// RevokedToken marks a JWT id as no longer accepted, until it would have expired anyway.
type RevokedToken struct {
	JTI       string    `json:"jti"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	RevokedAt time.Time `json:"revoked_at"`
}

func (t *RevokedToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
