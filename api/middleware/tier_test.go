package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukahub/dukapos-backend/pkg/enums"
	"github.com/dukahub/dukapos-backend/pkg/types"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func requestWithRole(role string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return req.WithContext(WithRole(req.Context(), role))
}

func TestRequireTierAllowsEqualAndHigher(t *testing.T) {
	t.Parallel()

	handler := RequireTier(enums.RoleManager, nil)(okHandler())

	for _, role := range []string{"manager", "admin"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(role))
		assert.Equalf(t, http.StatusOK, rec.Code, "role %s", role)
	}
}

func TestRequireTierDeniesLowerWithRedirect(t *testing.T) {
	t.Parallel()

	handler := RequireTier(enums.RoleManager, nil)(okHandler())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, requestWithRole("cashier"))
	require.Equal(t, http.StatusForbidden, rec.Code)

	var envelope types.ErrorEnvelope
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	assert.Equal(t, "FORBIDDEN", envelope.Error.Code)

	details, ok := envelope.Error.Details.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "/pos/dashboard", details["redirect_to"])
}

func TestRequireTierDeniesUnknownRole(t *testing.T) {
	t.Parallel()

	handler := RequireTier(enums.RoleCashier, nil)(okHandler())

	for _, role := range []string{"", "intern", "superuser"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, requestWithRole(role))
		assert.Equalf(t, http.StatusForbidden, rec.Code, "role %q", role)
	}
}
