package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	svc := New("test-secret-123", time.Hour, 24*time.Hour)

	token, err := svc.GenerateToken(42, "client")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, "client", claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestPair_TypesAreNotInterchangeable(t *testing.T) {
	svc := New("test-secret-123", time.Hour, 24*time.Hour)

	pair, err := svc.GeneratePair(7, "designer")
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.Refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateRefreshToken(pair.Access)
	assert.ErrorIs(t, err, ErrInvalidToken)

	claims, err := svc.ValidateRefreshToken(pair.Refresh)
	require.NoError(t, err)
	assert.Equal(t, int64(7), claims.UserID)
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := New("secret-a", time.Hour, time.Hour).GenerateToken(1, "client")
	require.NoError(t, err)

	_, err = New("secret-b", time.Hour, time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Expired(t *testing.T) {
	svc := New("secret", time.Minute, time.Hour)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := svc.GenerateToken(1, "client")
	require.NoError(t, err)

	svc.now = time.Now
	_, err = svc.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
