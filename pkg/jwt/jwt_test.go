package jwt

import (
	"testing"
	"time"

	"cleaning-service-scheduler/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(accessExpiry time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  accessExpiry,
		RefreshExpiry: time.Hour,
	})
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc := newTestService(time.Minute)
	id := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken("employee", id, "mopmaster")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, id, claims.SubjectID)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestValidateTokenRejectsForeignSignature(t *testing.T) {
	token, _, err := newTestService(time.Minute).GenerateRefreshToken("admin", uuid.New(), "root1")
	require.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "another-secret", AccessExpiry: time.Minute})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, _, err := svc.GenerateAccessToken("customer", uuid.New(), "client1")
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}
