package jwt

import (
	"errors"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TypeAccess  = "access"
	TypeRefresh = "refresh"
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	secret     []byte
	ttl        time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Claims struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
	Type   string `json:"typ"`
	jwtlib.RegisteredClaims
}

// Pair is an access token together with the refresh token that can renew it.
type Pair struct {
	Access  string
	Refresh string
}

func New(secret string, ttl, refreshTTL time.Duration) *Service {
	return &Service{
		secret:     []byte(secret),
		ttl:        ttl,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

func (s *Service) GenerateToken(userID int64, role string) (string, error) {
	return s.sign(userID, role, TypeAccess, s.ttl)
}

func (s *Service) GeneratePair(userID int64, role string) (*Pair, error) {
	access, err := s.sign(userID, role, TypeAccess, s.ttl)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(userID, role, TypeRefresh, s.refreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{Access: access, Refresh: refresh}, nil
}

// ValidateToken accepts access tokens only.
func (s *Service) ValidateToken(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, TypeAccess)
}

func (s *Service) ValidateRefreshToken(tokenStr string) (*Claims, error) {
	return s.parse(tokenStr, TypeRefresh)
}

func (s *Service) sign(userID int64, role, typ string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := Claims{
		UserID: userID,
		Role:   role,
		Type:   typ,
		RegisteredClaims: jwtlib.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwtlib.NewNumericDate(now),
		},
	}

	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *Service) parse(tokenStr, typ string) (*Claims, error) {
	token, err := jwtlib.ParseWithClaims(tokenStr, &Claims{}, func(t *jwtlib.Token) (any, error) {
		return s.secret, nil
	}, jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}), jwtlib.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || claims.Type != typ || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
