package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/dukahub/dukapos-backend/api/responses"
	"github.com/dukahub/dukapos-backend/api/validators"
	cartsvc "github.com/dukahub/dukapos-backend/internal/cart"
	"github.com/dukahub/dukapos-backend/internal/catalog"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/logger"
)

type cartAddRequest struct {
	ProductID uuid.UUID `json:"product_id" validate:"required"`
	Quantity  int       `json:"quantity" validate:"omitempty,gte=1"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartPaymentRequest struct {
	Amount string `json:"amount"`
}

// CartFetch returns the operator's current draft cart.
func CartFetch(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operatorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, carts.Snapshot(operatorID))
	}
}

// CartAdd puts units of a product into the draft, capped by available stock.
func CartAdd(carts *cartsvc.Service, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
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

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// the store-scoped lookup keeps other stores' products out of the draft
		product, err := catalogSvc.GetProduct(r.Context(), storeID, payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := carts.Add(operatorID, product, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

// CartUpdateQuantity overwrites a line's quantity; zero removes the line.
func CartUpdateQuantity(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operatorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, carts.UpdateQuantity(operatorID, productID, payload.Quantity))
	}
}

// CartRemoveLine deletes a line from the draft.
func CartRemoveLine(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operatorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := pathUUID(r, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, carts.Remove(operatorID, productID))
	}
}

// CartSetPayment records the tendered amount as typed by the operator.
func CartSetPayment(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operatorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartPaymentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, carts.SetPayment(operatorID, payload.Amount))
	}
}

// CartClear empties the draft and resets the payment entry.
func CartClear(carts *cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		operatorID, err := userIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, carts.Clear(operatorID))
	}
}
