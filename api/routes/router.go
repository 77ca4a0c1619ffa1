package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/dukahub/dukapos-backend/api/controllers"
	"github.com/dukahub/dukapos-backend/api/middleware"
	authsvc "github.com/dukahub/dukapos-backend/internal/auth"
	cartsvc "github.com/dukahub/dukapos-backend/internal/cart"
	"github.com/dukahub/dukapos-backend/internal/catalog"
	checkoutsvc "github.com/dukahub/dukapos-backend/internal/checkout"
	"github.com/dukahub/dukapos-backend/internal/purchasing"
	"github.com/dukahub/dukapos-backend/internal/rbac"
	salessvc "github.com/dukahub/dukapos-backend/internal/sales"
	storessvc "github.com/dukahub/dukapos-backend/internal/stores"
	"github.com/dukahub/dukapos-backend/pkg/config"
	"github.com/dukahub/dukapos-backend/pkg/db"
	"github.com/dukahub/dukapos-backend/pkg/enums"
	"github.com/dukahub/dukapos-backend/pkg/logger"
	"github.com/dukahub/dukapos-backend/pkg/redis"
)

type Deps struct {
	Config    *config.Config
	Logger    *logger.Logger
	DB        *db.Client
	Redis     *redis.Client
	Elevation *rbac.Elevation

	Auth       authsvc.Service
	Catalog    catalog.Service
	Carts      *cartsvc.Service
	Checkout   checkoutsvc.Service
	Sales      salessvc.Service
	Purchasing purchasing.Service
	Stores     storessvc.Service
	Snapshot   *catalog.Snapshot
}

// NewRouter assembles the HTTP surface. Role tiers gate whole route groups:
// every authenticated operator can sell, managers additionally run the store,
// admins additionally run the platform. Destructive actions also require a
// live elevation grant.
func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readyChecks(d)))
	})

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.Post("/login", controllers.AuthLogin(d.Auth, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/auth/me", controllers.AuthMe(d.Auth, logg))
		r.Post("/auth/elevate", controllers.AuthElevate(d.Elevation, logg))
		r.Post("/auth/logout", controllers.AuthLogout(d.Elevation, logg))

		r.Get("/stores/me", controllers.StoreMe(d.Stores, logg))

		// selling floor: every valid role
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTier(enums.RoleCashier, logg))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", controllers.CartFetch(d.Carts, logg))
				r.Post("/items", controllers.CartAdd(d.Carts, d.Catalog, logg))
				r.Put("/items/{productId}", controllers.CartUpdateQuantity(d.Carts, logg))
				r.With(middleware.RequireElevation(d.Elevation, logg)).
					Delete("/items/{productId}", controllers.CartRemoveLine(d.Carts, logg))
				r.Put("/payment", controllers.CartSetPayment(d.Carts, logg))
				r.Delete("/", controllers.CartClear(d.Carts, logg))
			})
			r.Post("/checkout", controllers.Checkout(d.Checkout, logg))

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", controllers.SalesList(d.Sales, logg))
				r.Get("/today", controllers.SalesToday(d.Sales, logg))
				r.Get("/{saleId}", controllers.SaleDetail(d.Sales, logg))
			})

			r.Get("/products", controllers.ProductList(d.Catalog, logg))
			r.Get("/products/{productId}", controllers.ProductDetail(d.Catalog, logg))
		})

		// back office: manager and above
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTier(enums.RoleManager, logg))

			r.Post("/products", controllers.ProductCreate(d.Catalog, logg))
			r.Put("/products/{productId}", controllers.ProductUpdate(d.Catalog, logg))
			r.With(middleware.RequireElevation(d.Elevation, logg)).
				Delete("/products/{productId}", controllers.ProductDelete(d.Catalog, logg))
			r.Post("/products/stock-adjustments", controllers.ProductAdjustStock(d.Catalog, logg))
			r.Get("/products/low-stock", controllers.ProductLowStock(d.Catalog, logg))

			r.Route("/purchase-orders", func(r chi.Router) {
				r.Get("/", controllers.PurchaseOrderList(d.Purchasing, logg))
				r.Post("/", controllers.PurchaseOrderCreate(d.Purchasing, logg))
				r.Get("/{orderId}", controllers.PurchaseOrderDetail(d.Purchasing, logg))
				r.With(middleware.RequireElevation(d.Elevation, logg)).
					Put("/{orderId}/status", controllers.PurchaseOrderUpdateStatus(d.Purchasing, logg))
			})

			r.Get("/reports/dashboard", controllers.DashboardReport(d.Catalog, d.Sales, logg))
		})

		// platform: admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireTier(enums.RoleAdmin, logg))

			r.Get("/stores", controllers.StoreList(d.Stores, logg))
			r.Get("/stores/{storeId}", controllers.StoreDetail(d.Stores, logg))

			r.Route("/snapshot", func(r chi.Router) {
				r.Get("/", controllers.SnapshotExport(d.Snapshot, logg))
				r.Post("/import", controllers.SnapshotImport(d.Snapshot, logg))
				r.Post("/persist", controllers.SnapshotPersist(d.Snapshot, logg))
				r.Post("/restore", controllers.SnapshotRestore(d.Snapshot, logg))
			})
		})
	})

	return r
}

func readyChecks(d Deps) map[string]controllers.Pinger {
	checks := map[string]controllers.Pinger{}
	if d.DB != nil {
		checks["db"] = d.DB
	}
	if d.Redis != nil {
		checks["redis"] = d.Redis
	}
	return checks
}
