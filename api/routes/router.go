package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/controllers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/api/middleware"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/admins"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/checkout"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/collections"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/contact"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/customers"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders/edit"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/orders/listing"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/internal/reviews"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/config"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/db"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/enums"
	"github.com/Muhammad-Ubaid-uddin-sheikh/aura-wave/pkg/logger"
)

// Store is the redis surface the HTTP middleware needs.
type Store interface {
	db.Pinger
	Get(ctx context.Context, key string) (string, error)
	SetNX(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
	IdempotencyKey(scope, id string) string
	RateLimitKey(scope string) string
}

// Services bundles everything the handlers call into.
type Services struct {
	Orders      orders.Service
	Customers   customers.Service
	Edit        edit.Service
	Listing     listing.Service
	Checkout    checkout.Service
	Collections collections.Service
	Reviews     reviews.Service
	Contact     contact.Service
	Admins      admins.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	store Store,
	metricsHandler http.Handler,
	svc Services,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.AllowedOrigins()),
		middleware.ClientID(),
	)

	submitPolicy := middleware.NewRateLimitPolicy("submit", cfg.RateLimit.SubmitWindow, cfg.RateLimit.SubmitIPLimit, 0)
	loginPolicy := middleware.NewRateLimitPolicy("login", cfg.RateLimit.LoginWindow, cfg.RateLimit.LoginIPLimit, cfg.RateLimit.LoginIPLimit)

	submitLimit := rateLimit(submitPolicy, store, logg)
	loginLimit := rateLimit(loginPolicy, store, logg)
	idempotent := idempotency(store, cfg.Orders.IdempotencyTTL, logg)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, controllers.Dependencies(dbP, store)))
	})
	if metricsHandler != nil {
		r.Handle("/metrics", metricsHandler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/collections", controllers.CollectionsList(svc.Collections, logg))
		r.Get("/collections/{slug}", controllers.CollectionBySlug(svc.Collections, logg))
		r.Get("/products/{productID}/reviews", controllers.ProductReviews(svc.Reviews, logg))
		r.With(submitLimit).Post("/reviews", controllers.ReviewSubmit(svc.Reviews, logg))
		r.With(submitLimit).Post("/contact", controllers.ContactSubmit(svc.Contact, logg))

		r.With(submitLimit, idempotent).Post("/submit-order", controllers.SubmitOrder(svc.Orders, logg))

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/quote", controllers.CheckoutQuote(svc.Checkout, logg))
			r.With(submitLimit, idempotent).Post("/", controllers.CheckoutSubmit(svc.Checkout, logg))
			r.Get("/last-order", controllers.CheckoutLastOrder(svc.Checkout, logg))
			r.Get("/saved-contact", controllers.CheckoutSavedContact(svc.Checkout, logg))
			r.Get("/buy-now", controllers.CheckoutBuyNow(svc.Checkout, logg))
			r.Put("/buy-now", controllers.CheckoutSetBuyNow(svc.Checkout, logg))
		})

		r.With(loginLimit).Post("/admin/login", controllers.AdminLogin(svc.Admins, logg))

		r.Route("/admin", func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.RequireRole(enums.AdminRoleAdmin, logg))

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", controllers.AdminOrdersRange(svc.Listing, logg))
				r.Get("/view", controllers.AdminOrdersView(svc.Listing, logg))
				r.Get("/{orderID}", controllers.AdminOrderGet(svc.Orders, logg))
				r.Patch("/{orderID}", controllers.AdminOrderPatch(svc.Orders, logg))
				r.With(idempotent).Post("/{orderID}/edit", controllers.AdminOrderEdit(svc.Edit, logg))
			})
			r.Patch("/customers/{customerID}", controllers.AdminCustomerPatch(svc.Customers, logg))

			r.Route("/collections", func(r chi.Router) {
				r.Post("/", controllers.AdminCollectionCreate(svc.Collections, logg))
				r.Patch("/{collectionID}", controllers.AdminCollectionUpdate(svc.Collections, logg))
				r.Delete("/{collectionID}", controllers.AdminCollectionDelete(svc.Collections, logg))
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", controllers.AdminReviewsList(svc.Reviews, logg))
				r.Patch("/{reviewID}", controllers.AdminReviewApproval(svc.Reviews, logg))
			})
		})
	})

	return r
}

// rateLimit and idempotency skip the middleware entirely without a store.
func rateLimit(policy middleware.RateLimitPolicy, store Store, logg *logger.Logger) func(http.Handler) http.Handler {
	if store == nil {
		return passthrough
	}
	return middleware.RateLimit(policy, store, logg)
}

func idempotency(store Store, ttl time.Duration, logg *logger.Logger) func(http.Handler) http.Handler {
	if store == nil {
		return passthrough
	}
	return middleware.Idempotency(store, ttl, logg)
}

func passthrough(next http.Handler) http.Handler { return next }
