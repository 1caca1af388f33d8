package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kiarashop/storefront/api/controllers"
	"github.com/kiarashop/storefront/api/middleware"
	"github.com/kiarashop/storefront/internal/cart"
	"github.com/kiarashop/storefront/internal/session"
	"github.com/kiarashop/storefront/pkg/config"
	"github.com/kiarashop/storefront/pkg/logger"
	"github.com/kiarashop/storefront/pkg/metrics"
)

// Deps bundles everything the local surface serves.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	Metrics  *metrics.RequestMetrics
	Registry *prometheus.Registry

	Session *session.Store
	Cart    *cart.Store
	Flow    *controllers.FlowHolder

	Catalog controllers.CatalogService
	Auth    controllers.AuthService
	Orders  controllers.OrderService
	Gateway controllers.OrderGateway
	Reviews controllers.ReviewService
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(d.Logger),
		middleware.RequestID(d.Logger),
		middleware.Logging(d.Logger),
		middleware.Metrics(d.Metrics),
	)

	r.Get("/healthz", controllers.Healthz())
	if d.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/v1", func(r chi.Router) {
		r.Route("/shop", func(r chi.Router) {
			r.Get("/products", controllers.ListProducts(d.Catalog, d.Logger))
			r.Get("/products/{id}", controllers.GetProduct(d.Catalog, d.Logger))
			r.Get("/categories", controllers.ListCategories(d.Catalog, d.Logger))
			r.Post("/products/{id}/reviews", controllers.SubmitReview(d.Reviews, d.Logger))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.GetCart(d.Cart))
			r.Post("/items", controllers.AddCartItem(d.Cart, d.Catalog, d.Logger))
			r.Put("/items/{id}", controllers.SetCartItemQuantity(d.Cart, d.Logger))
			r.Delete("/items/{id}", controllers.RemoveCartItem(d.Cart, d.Logger))
			r.Delete("/", controllers.ClearCart(d.Cart))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Get("/", controllers.GetCheckout(d.Flow, d.Logger))
			r.Post("/begin", controllers.BeginCheckout(d.Flow, d.Logger))
			r.Put("/form", controllers.UpdateCheckoutForm(d.Flow, d.Logger))
			r.Post("/payment", controllers.ProceedToPayment(d.Flow, d.Logger))
			r.Put("/payment", controllers.UpdatePaymentDetails(d.Flow, d.Logger))
			r.Post("/back", controllers.CheckoutBack(d.Flow, d.Logger))
			r.Post("/submit", controllers.SubmitCheckout(d.Flow, d.Gateway, d.Logger))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.ListOrderHistory(d.Orders, d.Logger))
			r.Get("/{id}", controllers.GetOrder(d.Orders, d.Logger))
			r.Get("/{id}/receipt", controllers.GetReceipt(d.Orders, d.Logger))
			r.Get("/{id}/receipt/print", controllers.GetPrintableReceipt(d.Orders, d.Config.App.Name, d.Logger))
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(d.Orders, d.Logger))
			r.Get("/export.csv", controllers.AdminExportOrdersCSV(d.Orders, d.Logger))
			r.Put("/{id}/status", controllers.AdminUpdateOrderStatus(d.Orders, d.Logger))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", controllers.Login(d.Auth, d.Logger))
			r.Post("/register", controllers.Register(d.Auth, d.Logger))
			r.Post("/logout", controllers.Logout(d.Auth, d.Logger))
			r.Get("/me", controllers.Me(d.Session))
		})
	})

	return r
}
