package router

import (
	"net/http"

	"shopcart-api/internal/handler"
	"shopcart-api/internal/middleware"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
)

// Config holds the configuration for creating a router.
type Config struct {
	Health   *handler.HealthHandler
	Auth     *handler.AuthHandler
	Products *handler.ProductHandler
	Cart     *handler.CartHandler
	Checkout *handler.CheckoutHandler

	AuthMiddleware func(http.Handler) http.Handler
	RateLimit      func(http.Handler) http.Handler
}

// New creates and configures the HTTP router.
func New(cfg Config) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware stack (applies to ALL routes)
	r.Use(middleware.Recovery)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logging)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// PUBLIC routes (no auth required)
	r.Get("/health", cfg.Health.Health)
	r.Get("/ready", cfg.Health.Ready)
	r.Get("/products", cfg.Products.List)
	r.Get("/products/{product_id}", cfg.Products.Get)

	// Authentication-adjacent routes share the per-IP rate limit.
	r.Group(func(r chi.Router) {
		r.Use(cfg.RateLimit)

		r.Post("/register", cfg.Auth.Register)

		// Login verifies Basic credentials through the auth middleware
		// before minting a session token.
		r.Group(func(r chi.Router) {
			r.Use(cfg.AuthMiddleware)
			r.Post("/login", cfg.Auth.Login)
		})
	})

	// AUTHENTICATED routes
	r.Group(func(r chi.Router) {
		r.Use(cfg.AuthMiddleware)

		r.Post("/users/password", cfg.Auth.ChangePassword)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.Get)
			r.Post("/add", cfg.Cart.Add)
			r.Put("/", cfg.Cart.UpdateQuantity)
			r.Delete("/{product_id}", cfg.Cart.Remove)
			r.Delete("/", cfg.Cart.Clear)
			r.Post("/checkout", cfg.Checkout.Checkout)
		})

		// ADMIN routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)

			r.Route("/admin/products", func(r chi.Router) {
				r.Post("/", cfg.Products.Create)
				r.Put("/{product_id}", cfg.Products.Update)
				r.Delete("/{product_id}", cfg.Products.Delete)
			})
		})
	})

	return r
}
