package controllers

import (
	"net/http"

	"github.com/dukahub/dukapos-backend/api/middleware"
	"github.com/dukahub/dukapos-backend/api/responses"
	checkoutsvc "github.com/dukahub/dukapos-backend/internal/checkout"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/logger"
)

// Checkout commits the operator's draft cart as a sale and returns the
// receipt.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		operatorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		cashier := middleware.UserNameFromContext(r.Context())

		receipt, err := svc.Commit(r.Context(), operatorID, storeID, cashier)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, receipt)
	}
}
