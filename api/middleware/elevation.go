package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-backend/api/responses"
	"github.com/dukahub/dukapos-backend/internal/rbac"
	"github.com/dukahub/dukapos-backend/pkg/enums"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/logger"
)

const elevationTokenHeader = "X-Elevation-Token"

// RequireElevation gates destructive actions behind a live step-up grant.
// Admins pass without one; everyone else must present the token minted by a
// recent password re-entry.
func RequireElevation(elevation *rbac.Elevation, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if enums.Role(RoleFromContext(r.Context())) == enums.RoleAdmin {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := uuid.Parse(UserIDFromContext(r.Context()))
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
				return
			}

			token := strings.TrimSpace(r.Header.Get(elevationTokenHeader))
			ok, verr := elevation.Verify(r.Context(), userID, token)
			if verr != nil {
				responses.WriteError(r.Context(), logg, w, verr)
				return
			}
			if !ok {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "elevation required").
						WithDetails(map[string]string{"elevation": "confirm your password to continue"}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
