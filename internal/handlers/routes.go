package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bakeryhq/orderdesk/internal/middleware"
)

// RouterConfig collects the handlers and settings the router is built from
type RouterConfig struct {
	Logger         *slog.Logger
	TokenSecret    []byte
	AllowedOrigins []string
	RequestTimeout time.Duration

	Health     *HealthHandler
	Products   *ProductHandler
	Clients    *ClientHandler
	Orders     *OrderHandler
	Production *ProductionHandler
	Assistant  *AssistantHandler
	Sync       *SyncHandler
	Settings   *SettingsHandler
	Access     *AccessHandler
}

const exportFormat = "{format:(?:csv|xlsx)}"

// NewRouter wires every endpoint onto a chi router
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(cfg.Logger))
	r.Use(chimiddleware.Recoverer)
	if cfg.RequestTimeout > 0 {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", cfg.Health.ServeHTTP)

	requireToken := middleware.RequireToken(cfg.TokenSecret)

	r.Route("/api", func(r chi.Router) {
		r.Post("/access/unlock", cfg.Access.Unlock)

		r.Route("/products", func(r chi.Router) {
			r.Get("/", cfg.Products.ListProducts)
			r.Get("/{productId}", cfg.Products.GetProduct)
			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Post("/", cfg.Products.CreateProduct)
				r.Put("/{productId}", cfg.Products.UpdateProduct)
				r.Delete("/{productId}", cfg.Products.DeleteProduct)
			})
		})

		r.Route("/clients", func(r chi.Router) {
			r.Get("/", cfg.Clients.ListClients)
			r.Get("/{clientId}", cfg.Clients.GetClient)
			r.Group(func(r chi.Router) {
				r.Use(requireToken)
				r.Post("/", cfg.Clients.CreateClient)
				r.Put("/{clientId}", cfg.Clients.UpdateClient)
				r.Delete("/{clientId}", cfg.Clients.DeleteClient)
			})
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", cfg.Orders.ListOrders)
			r.Post("/", cfg.Orders.CreateOrder)
			r.Get("/{orderId}", cfg.Orders.GetOrder)
			r.Put("/{orderId}", cfg.Orders.UpdateOrder)
			r.Delete("/{orderId}", cfg.Orders.DeleteOrder)
			r.Get("/{orderId}/export."+exportFormat, cfg.Orders.ExportOrder)
		})

		r.Route("/production", func(r chi.Router) {
			r.Get("/daily", cfg.Production.Daily)
			r.Get("/daily."+exportFormat, cfg.Production.ExportDaily)
			r.Get("/weekly", cfg.Production.Weekly)
			r.Get("/weekly."+exportFormat, cfg.Production.ExportWeekly)
		})

		r.Post("/assistant/parse", cfg.Assistant.ParseOrder)
		r.Post("/assistant/insights", cfg.Assistant.Insights)

		r.Get("/sync", cfg.Sync.Status)
		r.Post("/sync", cfg.Sync.Trigger)

		r.Group(func(r chi.Router) {
			r.Use(requireToken)
			r.Get("/settings/webhook", cfg.Settings.GetWebhook)
			r.Put("/settings/webhook", cfg.Settings.PutWebhook)
		})
	})

	return r
}
