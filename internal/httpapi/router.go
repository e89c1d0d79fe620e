package httpapi

import (
	"net/http"

	"herbanusa-be/internal/logger"
	"herbanusa-be/internal/middleware"
	"herbanusa-be/internal/transport"
	"herbanusa-be/internal/utils"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type RouterConfig struct {
	JWTSecret   []byte
	CORSOrigins []string
	Limiter     *middleware.RateLimiter
}

func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(logger.RequestIDMiddleware)
	r.Use(middleware.Recover)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(transport.Session)
	r.Use(middleware.Auth(cfg.JWTSecret))
	if cfg.Limiter != nil {
		r.Use(cfg.Limiter.Middleware)
	}

	r.Get("/health", h.Health)
	r.Get("/make-server-8c7b9125/health", h.Health)
	r.Get("/debug/metrics", h.Metrics)

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", h.ListProducts)
		r.Get("/products/{id}", h.GetProduct)
		r.Get("/categories", h.ListCategories)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", h.GetCart)
			r.Post("/items", h.AddToCart)
			r.Put("/items/{productId}", h.UpdateCartItem)
			r.Delete("/items/{productId}", h.RemoveCartItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", h.BeginCheckout)
			r.Get("/", h.GetCheckout)
			r.Delete("/", h.DiscardCheckout)
			r.Get("/options", h.CheckoutOptions)
			r.Put("/address", h.SetAddress)
			r.Put("/shipping", h.SelectShipping)
			r.Put("/payment", h.SelectPayment)
			r.Post("/next", h.NextStage)
			r.Post("/back", h.PreviousStage)
		})

		r.Get("/notifications", h.Notifications)

		r.Route("/farmer", func(r chi.Router) {
			r.Use(middleware.RequireRole(utils.RoleFarmer))

			r.Get("/dashboard", h.Dashboard)
			r.Get("/orders", h.FarmerOrders)
			r.Get("/orders/processing", h.ProcessingOrders)
			r.Post("/orders/{id}/advance", h.AdvanceOrder)
			r.Post("/orders/{id}/reject", h.RejectOrder)

			r.Get("/products", h.FarmerProducts)
			r.Post("/products", h.CreateProduct)
			r.Put("/products/{id}", h.UpdateProduct)
			r.Delete("/products/{id}", h.DeleteProduct)
		})
	})

	r.Route("/internal", func(r chi.Router) {
		r.Use(requireInternal)
		r.Get("/orders", h.OrdersByStatus)
	})

	return r
}

// requireInternal admits only requests the limiter identified as coming from
// a trusted service.
func requireInternal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !utils.IsInternalRequest(r.Context()) {
			utils.WriteJSONError(w, "forbidden", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
