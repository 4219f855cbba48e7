package auth

import (
	"context"
	"time"

	"designmarket/internal/domain"
	"designmarket/internal/pkg/jwt"
)

// UserRepository is the subset of the user store the auth service needs.
type UserRepository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

// TokenRepository stores revoked token ids.
type TokenRepository interface {
	Revoke(ctx context.Context, t *domain.RevokedToken) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type tokenIssuer interface {
	GeneratePair(userID int64, role string) (*jwt.Pair, error)
	GenerateToken(userID int64, role string) (string, error)
	ValidateRefreshToken(tokenStr string) (*jwt.Claims, error)
}
