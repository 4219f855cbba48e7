package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"designmarket/internal/domain"
	"designmarket/internal/pkg/logger"
	"designmarket/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// Service contains all business logic for authentication
type Service struct {
	users  UserRepository
	tokens TokenRepository
	jwt    tokenIssuer
	now    func() time.Time
}

func NewService(users UserRepository, tokens TokenRepository, jwt tokenIssuer) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		jwt:    jwt,
		now:    time.Now,
	}
}

func (s *Service) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role := domain.UserRole(req.Role)
	if role != domain.RoleClient && role != domain.RoleDesigner {
		return nil, ErrInvalidRole
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		return nil, fmt.Errorf("check user exists: %w", err)
	}
	if exists {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Username:     strings.TrimSpace(req.Username),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		PasswordHash: string(hash),
		Role:         role,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.FromContext(ctx).Info("user registered", "user_id", user.ID, "role", user.Role)
	return s.issue(user)
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh exchanges a refresh token for a new access token. The role is read
// from the store so role changes apply on the next refresh.
func (s *Service) Refresh(ctx context.Context, refresh string) (string, error) {
	claims, err := s.jwt.ValidateRefreshToken(refresh)
	if err != nil {
		return "", ErrInvalidToken
	}

	revoked, err := s.tokens.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return "", ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", ErrInvalidToken
		}
		return "", fmt.Errorf("load user: %w", err)
	}

	access, err := s.jwt.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("sign access token: %w", err)
	}
	return access, nil
}

// Logout revokes the access token of the current request and, when given,
// a refresh token of the same user.
func (s *Service) Logout(ctx context.Context, actor domain.Actor, jti string, expiresAt time.Time, refresh string) error {
	now := s.now().UTC()
	revoke := []domain.RevokedToken{{JTI: jti, UserID: actor.UserID, ExpiresAt: expiresAt, RevokedAt: now}}

	if refresh != "" {
		claims, err := s.jwt.ValidateRefreshToken(refresh)
		if err != nil || claims.UserID != actor.UserID {
			return ErrInvalidToken
		}
		exp := now
		if claims.ExpiresAt != nil {
			exp = claims.ExpiresAt.Time
		}
		revoke = append(revoke, domain.RevokedToken{JTI: claims.ID, UserID: actor.UserID, ExpiresAt: exp, RevokedAt: now})
	}

	for i := range revoke {
		if revoke[i].JTI == "" {
			continue
		}
		if err := s.tokens.Revoke(ctx, &revoke[i]); err != nil {
			return fmt.Errorf("revoke token: %w", err)
		}
	}

	logger.FromContext(ctx).Info("user logged out", "user_id", actor.UserID)
	return nil
}

func (s *Service) Me(ctx context.Context, actor domain.Actor) (*domain.User, error) {
	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("load user: %w", err)
	}
	return user, nil
}

// PurgeRevoked removes deny-list entries whose tokens have expired anyway.
func (s *Service) PurgeRevoked(ctx context.Context) (int64, error) {
	return s.tokens.DeleteExpired(ctx, s.now())
}

func (s *Service) issue(user *domain.User) (*AuthResponse, error) {
	pair, err := s.jwt.GeneratePair(user.ID, string(user.Role))
	if err != nil {
		return nil, fmt.Errorf("sign tokens: %w", err)
	}
	return &AuthResponse{
		User:    user,
		Token:   pair.Access,
		Access:  pair.Access,
		Refresh: pair.Refresh,
	}, nil
}
