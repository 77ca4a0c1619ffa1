package middleware

import (
	"net/http"

	"github.com/dukahub/dukapos-backend/api/responses"
	"github.com/dukahub/dukapos-backend/internal/rbac"
	"github.com/dukahub/dukapos-backend/pkg/enums"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/logger"
)

// RequireTier gates a route behind a minimum role tier. Higher tiers pass
// automatically. Denied requests carry the actor's own dashboard path so the
// client can send them somewhere useful instead of a dead end.
func RequireTier(required enums.Role, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			actual := enums.Role(RoleFromContext(r.Context()))
			if !rbac.CanAccess(required, actual) {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeForbidden, "insufficient role").
						WithDetails(map[string]string{"redirect_to": rbac.DashboardPath(actual)}))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
