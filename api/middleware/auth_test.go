package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgauth "github.com/dukahub/dukapos-backend/pkg/auth"
	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/enums"
)

var testJWT = config.JWTConfig{
	Secret:            "test-secret",
	Issuer:            "dukapos",
	ExpirationMinutes: 60,
}

func TestAuthSeedsContextFromToken(t *testing.T) {
	t.Parallel()

	payload := pkgauth.AccessTokenPayload{
		UserID:  uuid.New(),
		StoreID: uuid.New(),
		Name:    "Mary Wanjiku",
		Role:    enums.RoleCashier,
	}
	token, err := pkgauth.MintAccessToken(testJWT, time.Now(), payload)
	require.NoError(t, err)

	var seen struct {
		userID, userName, role, storeID string
	}
	handler := Auth(testJWT, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen.userID = UserIDFromContext(r.Context())
		seen.userName = UserNameFromContext(r.Context())
		seen.role = RoleFromContext(r.Context())
		seen.storeID = StoreIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, payload.UserID.String(), seen.userID)
	assert.Equal(t, "Mary Wanjiku", seen.userName)
	assert.Equal(t, "cashier", seen.role)
	assert.Equal(t, payload.StoreID.String(), seen.storeID)
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	t.Parallel()

	handler := Auth(testJWT, nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	t.Parallel()

	handler := Auth(testJWT, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	other := testJWT
	other.Secret = "different"
	token, err := pkgauth.MintAccessToken(other, time.Now(), pkgauth.AccessTokenPayload{
		UserID:  uuid.New(),
		StoreID: uuid.New(),
		Name:    "Mary Wanjiku",
		Role:    enums.RoleCashier,
	})
	require.NoError(t, err)

	handler := Auth(testJWT, nil)(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
