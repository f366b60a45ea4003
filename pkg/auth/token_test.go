package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lcervantes/pantrylog-backend/pkg/config"
)

func tokenTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "pantrylog-test",
		ExpirationMinutes: 15,
	}
}

func TestMintAndParseRoundtrip(t *testing.T) {
	cfg := tokenTestConfig()
	userID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{
		UserID: userID,
		JTI:    "session-1",
	})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "session-1", claims.ID)
	assert.Equal(t, "pantrylog-test", claims.Issuer)
}

func TestMintGeneratesJTIWhenBlank(t *testing.T) {
	cfg := tokenTestConfig()

	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	claims, err := ParseAccessToken(cfg, token)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)
}

func TestMintRequiresConfigAndUser(t *testing.T) {
	now := time.Now().UTC()

	cfg := tokenTestConfig()
	cfg.Secret = ""
	_, err := MintAccessToken(cfg, now, AccessTokenPayload{UserID: uuid.New()})
	require.Error(t, err)

	cfg = tokenTestConfig()
	cfg.ExpirationMinutes = 0
	_, err = MintAccessToken(cfg, now, AccessTokenPayload{UserID: uuid.New()})
	require.Error(t, err)

	_, err = MintAccessToken(tokenTestConfig(), now, AccessTokenPayload{})
	require.Error(t, err)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	cfg := tokenTestConfig()
	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	other := cfg
	other.Secret = "different-secret"
	_, err = ParseAccessToken(other, token)
	require.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	cfg := tokenTestConfig()
	token, err := MintAccessToken(cfg, time.Now().UTC(), AccessTokenPayload{UserID: uuid.New()})
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = ParseAccessToken(other, token)
	require.Error(t, err)
}

func TestParseExpiredToken(t *testing.T) {
	cfg := tokenTestConfig()
	userID := uuid.New()

	// Minted in the past so the token is already expired.
	issued := time.Now().UTC().Add(-time.Hour)
	token, err := MintAccessToken(cfg, issued, AccessTokenPayload{
		UserID: userID,
		JTI:    "stale-session",
	})
	require.NoError(t, err)

	_, err = ParseAccessToken(cfg, token)
	require.Error(t, err)

	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "stale-session", claims.ID)
}
