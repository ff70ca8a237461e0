package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/omarsadiq/tailorware-backend/api/controllers"
	"github.com/omarsadiq/tailorware-backend/api/middleware"
	"github.com/omarsadiq/tailorware-backend/internal/audit"
	"github.com/omarsadiq/tailorware-backend/internal/auth"
	"github.com/omarsadiq/tailorware-backend/internal/customers"
	"github.com/omarsadiq/tailorware-backend/internal/fabrics"
	"github.com/omarsadiq/tailorware-backend/internal/inventory"
	"github.com/omarsadiq/tailorware-backend/internal/measurements"
	"github.com/omarsadiq/tailorware-backend/internal/orders"
	"github.com/omarsadiq/tailorware-backend/internal/suppliers"
	"github.com/omarsadiq/tailorware-backend/internal/tailors"
	"github.com/omarsadiq/tailorware-backend/pkg/auth/session"
	"github.com/omarsadiq/tailorware-backend/pkg/config"
	"github.com/omarsadiq/tailorware-backend/pkg/logger"
	"github.com/omarsadiq/tailorware-backend/pkg/metrics"
	"github.com/omarsadiq/tailorware-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// Services bundles the domain services the router exposes.
type Services struct {
	Auth         auth.Service
	Customers    customers.Service
	Measurements measurements.Service
	Orders       orders.Service
	Fabrics      fabrics.Service
	Inventory    inventory.Service
	Suppliers    suppliers.Service
	Tailors      tailors.Service
	Audit        audit.Service
}

// Dependencies carries the infrastructure handles the router needs directly.
type Dependencies struct {
	Config         *config.Config
	Logger         *logger.Logger
	Redis          *redis.Client
	SessionManager sessionManager
	HTTPMetrics    *metrics.HTTPMetrics
	Registry       *prometheus.Registry
	ReadyChecks    map[string]controllers.Pinger
}

// NewRouter assembles the full HTTP surface.
func NewRouter(deps Dependencies, svcs Services) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.ReadyChecks))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.Redis, logg)).
			Post("/login", controllers.AuthLogin(svcs.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.SessionManager, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(deps.SessionManager, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionManager, logg))

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CustomerCreate(svcs.Customers, logg))
			r.Get("/", controllers.CustomerList(svcs.Customers, logg))
			r.Post("/merge", controllers.CustomerMerge(svcs.Customers, logg))
			r.Get("/{id}", controllers.CustomerGet(svcs.Customers, logg))
			r.Put("/{id}", controllers.CustomerUpdate(svcs.Customers, logg))
			r.Delete("/{id}", controllers.CustomerDelete(svcs.Customers, logg))

			r.Route("/{id}/measurements/{kind}", func(r chi.Router) {
				r.Get("/", controllers.MeasurementGet(svcs.Measurements, logg))
				r.Post("/", controllers.MeasurementCreate(svcs.Measurements, logg))
				r.Put("/", controllers.MeasurementUpdate(svcs.Measurements, logg))
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.OrderCreate(svcs.Orders, logg))
			r.Get("/", controllers.OrderList(svcs.Orders, logg))
			r.Get("/{id}", controllers.OrderGet(svcs.Orders, logg))
			r.Put("/{id}", controllers.OrderUpdate(svcs.Orders, logg))
			r.Delete("/{id}", controllers.OrderDelete(svcs.Orders, logg))

			r.Post("/{id}/items", controllers.OrderItemAdd(svcs.Orders, logg))
			r.Put("/{id}/items/{itemId}", controllers.OrderItemUpdate(svcs.Orders, logg))
			r.Delete("/{id}/items/{itemId}", controllers.OrderItemDelete(svcs.Orders, logg))

			r.Get("/{id}/production", controllers.OrderProductionGet(svcs.Orders, logg))
			r.Put("/{id}/production", controllers.OrderProductionUpdate(svcs.Orders, logg))

			r.Post("/{id}/tailors", controllers.OrderTailorAssign(svcs.Orders, logg))
			r.Put("/{id}/tailors/{assignmentId}", controllers.OrderAssignmentUpdate(svcs.Orders, logg))
			r.Delete("/{id}/tailors/{assignmentId}", controllers.OrderTailorUnassign(svcs.Orders, logg))
		})

		r.Route("/fabrics", func(r chi.Router) {
			r.Post("/", controllers.FabricCreate(svcs.Fabrics, logg))
			r.Get("/", controllers.FabricList(svcs.Fabrics, logg))
			r.Get("/{id}", controllers.FabricGet(svcs.Fabrics, logg))
			r.Put("/{id}", controllers.FabricUpdate(svcs.Fabrics, logg))
			r.Delete("/{id}", controllers.FabricDelete(svcs.Fabrics, logg))

			r.Post("/{id}/image", controllers.FabricImagePresign(svcs.Fabrics, logg))
			r.Post("/{id}/image/confirm", controllers.FabricImageConfirm(svcs.Fabrics, logg))
			r.Get("/{id}/image", controllers.FabricImageURL(svcs.Fabrics, logg))
			r.Delete("/{id}/image", controllers.FabricImageDelete(svcs.Fabrics, logg))
		})

		r.Route("/fabric-orders", func(r chi.Router) {
			r.Post("/", controllers.FabricOrderCreate(svcs.Fabrics, logg))
			r.Get("/", controllers.FabricOrderList(svcs.Fabrics, logg))
			r.Get("/{id}", controllers.FabricOrderGet(svcs.Fabrics, logg))
			r.Put("/{id}", controllers.FabricOrderUpdate(svcs.Fabrics, logg))
			r.Delete("/{id}", controllers.FabricOrderDelete(svcs.Fabrics, logg))
		})

		r.Route("/locations", func(r chi.Router) {
			r.Post("/", controllers.LocationCreate(svcs.Inventory, logg))
			r.Get("/", controllers.LocationList(svcs.Inventory, logg))
			r.Get("/{id}", controllers.LocationGet(svcs.Inventory, logg))
			r.Put("/{id}", controllers.LocationUpdate(svcs.Inventory, logg))
			r.Delete("/{id}", controllers.LocationDelete(svcs.Inventory, logg))
		})

		r.Route("/racks", func(r chi.Router) {
			r.Post("/", controllers.RackCreate(svcs.Inventory, logg))
			r.Get("/", controllers.RackList(svcs.Inventory, logg))
			r.Get("/{id}", controllers.RackGet(svcs.Inventory, logg))
			r.Put("/{id}", controllers.RackUpdate(svcs.Inventory, logg))
			r.Delete("/{id}", controllers.RackDelete(svcs.Inventory, logg))
			r.Post("/{id}/bunches", controllers.BunchCreate(svcs.Inventory, logg))
			r.Get("/{id}/bunches", controllers.BunchListByRack(svcs.Inventory, logg))
		})

		r.Route("/bunches", func(r chi.Router) {
			r.Get("/{id}", controllers.BunchGet(svcs.Inventory, logg))
			r.Post("/{id}/items", controllers.BunchItemsAdd(svcs.Inventory, logg))
			r.Put("/{id}/items", controllers.BunchItemsUpdate(svcs.Inventory, logg))
			r.Delete("/{id}/items", controllers.BunchItemsDelete(svcs.Inventory, logg))
			r.Patch("/{id}/move", controllers.BunchMove(svcs.Inventory, logg))
			r.Delete("/{id}", controllers.BunchDelete(svcs.Inventory, logg))
		})

		r.Route("/units", func(r chi.Router) {
			r.Post("/", controllers.UnitCreate(svcs.Inventory, logg))
			r.Get("/", controllers.UnitList(svcs.Inventory, logg))
			r.Delete("/{id}", controllers.UnitDelete(svcs.Inventory, logg))
		})

		r.Route("/suppliers", func(r chi.Router) {
			r.Post("/", controllers.SupplierCreate(svcs.Suppliers, logg))
			r.Get("/", controllers.SupplierList(svcs.Suppliers, logg))
			r.Get("/{id}", controllers.SupplierGet(svcs.Suppliers, logg))
			r.Put("/{id}", controllers.SupplierUpdate(svcs.Suppliers, logg))
			r.Delete("/{id}", controllers.SupplierDelete(svcs.Suppliers, logg))
		})

		r.Route("/tailors", func(r chi.Router) {
			r.Post("/", controllers.TailorCreate(svcs.Tailors, logg))
			r.Get("/", controllers.TailorList(svcs.Tailors, logg))
			r.Get("/{id}", controllers.TailorGet(svcs.Tailors, logg))
			r.Put("/{id}", controllers.TailorUpdate(svcs.Tailors, logg))
			r.Delete("/{id}", controllers.TailorDelete(svcs.Tailors, logg))
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole("admin", logg))
			r.Post("/auth/register", controllers.AuthRegister(svcs.Auth, logg))
			r.Get("/audit", controllers.AuditList(svcs.Audit, logg))
		})
	})

	return r
}
