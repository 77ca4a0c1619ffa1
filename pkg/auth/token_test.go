package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/enums"
)

var testCfg = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "dukapos",
	ExpirationMinutes: 60,
}

func testPayload() AccessTokenPayload {
	return AccessTokenPayload{
		UserID:  uuid.New(),
		StoreID: uuid.New(),
		Name:    "Mary Wanjiku",
		Role:    enums.RoleCashier,
	}
}

func TestMintAndParseRoundTrip(t *testing.T) {
	t.Parallel()

	payload := testPayload()
	token, err := MintAccessToken(testCfg, time.Now(), payload)
	require.NoError(t, err)

	claims, err := ParseAccessToken(testCfg, token)
	require.NoError(t, err)
	assert.Equal(t, payload.UserID, claims.UserID)
	assert.Equal(t, payload.StoreID, claims.StoreID)
	assert.Equal(t, payload.Name, claims.Name)
	assert.Equal(t, payload.Role, claims.Role)
	assert.NotEmpty(t, claims.ID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := MintAccessToken(testCfg, time.Now(), testPayload())
	require.NoError(t, err)

	other := testCfg
	other.Secret = "different"
	_, err = ParseAccessToken(other, token)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	token, err := MintAccessToken(testCfg, time.Now().Add(-2*time.Hour), testPayload())
	require.NoError(t, err)

	_, err = ParseAccessToken(testCfg, token)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	other := testCfg
	other.Issuer = "someone-else"
	token, err := MintAccessToken(other, time.Now(), testPayload())
	require.NoError(t, err)

	_, err = ParseAccessToken(testCfg, token)
	assert.Error(t, err)
}

func TestMintRejectsInvalidRole(t *testing.T) {
	t.Parallel()

	payload := testPayload()
	payload.Role = enums.Role("intern")
	_, err := MintAccessToken(testCfg, time.Now(), payload)
	assert.Error(t, err)
}
