package controllers

import (
	"net/http"
	"time"

	"github.com/dukahub/dukapos-backend/api/responses"
	"github.com/dukahub/dukapos-backend/internal/catalog"
	salessvc "github.com/dukahub/dukapos-backend/internal/sales"
	pkgerrors "github.com/dukahub/dukapos-backend/pkg/errors"
	"github.com/dukahub/dukapos-backend/pkg/logger"
)

// DashboardReport aggregates the numbers the manager dashboard shows: today's
// sales total, the value of stock on hand, and the low stock watch list.
func DashboardReport(catalogSvc catalog.Service, salesSvc salessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalogSvc == nil || salesSvc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "reporting services unavailable"))
			return
		}

		storeID, err := storeIDFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		todayTotal, err := salesSvc.TodayTotal(r.Context(), storeID, time.Now())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		inventoryValue, err := catalogSvc.TotalInventoryValue(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lowStock, err := catalogSvc.LowStockItems(r.Context(), storeID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{
			"today_sales_total": todayTotal,
			"inventory_value":   inventoryValue,
			"low_stock":         lowStock,
		})
	}
}
