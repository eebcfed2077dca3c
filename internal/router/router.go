package router

import (
	"context"
	"net/http"

	"bistro-api/internal/config"
	"bistro-api/internal/handlers"
	"bistro-api/internal/metrics"
	"bistro-api/internal/middleware"
	"bistro-api/internal/services"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// Services bundles what the HTTP surface calls into. main owns their
// construction and the store behind them.
type Services struct {
	Auth      *services.AuthService
	Users     *services.UserService
	Orders    *services.OrderService
	Analytics *services.AnalyticsService
	Catalog   *services.CatalogService
	Carts     *services.CartService
}

type Pinger interface {
	Ping(ctx context.Context) error
}

func SetupRouter(cfg config.Config, svc Services, store Pinger, logger zerolog.Logger) *mux.Router {
	authHandler := handlers.NewAuthHandler(svc.Auth, logger)
	userHandler := handlers.NewUserHandler(svc.Users, logger)
	orderHandler := handlers.NewOrderHandler(svc.Orders, logger)
	statsHandler := handlers.NewStatsHandler(svc.Analytics, logger)
	menuHandler := handlers.NewMenuHandler(svc.Catalog, logger)
	cartHandler := handlers.NewCartHandler(svc.Carts, logger)

	authenticate := middleware.Authentication(svc.Auth, logger)
	requireAdmin := middleware.RequireAdmin(svc.Users, logger)

	authed := func(h http.HandlerFunc) http.Handler {
		return authenticate(h)
	}
	admin := func(h http.HandlerFunc) http.Handler {
		return authenticate(requireAdmin(h))
	}

	r := mux.NewRouter()

	rateLimiter := middleware.NewRateLimiter(rate.Limit(cfg.RateLimit), cfg.RateBurst)

	r.Use(middleware.ErrorHandling(logger))
	r.Use(metrics.Middleware())
	r.Use(middleware.PerformanceMonitoring(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(rateLimiter.Middleware())
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.RequestValidation())

	r.HandleFunc("/jwt", authHandler.IssueToken).Methods("POST")

	r.HandleFunc("/users", userHandler.Register).Methods("POST")
	r.Handle("/users", admin(userHandler.GetUsers)).Methods("GET")
	r.Handle("/users/admin/{email}", authed(userHandler.CheckAdmin)).Methods("GET")
	r.Handle("/users/admin/{id}", admin(userHandler.PromoteToAdmin)).Methods("PATCH")

	r.Handle("/create-payment-intent", authed(orderHandler.CreatePaymentIntent)).Methods("POST")
	r.Handle("/payments", authed(orderHandler.CommitOrder)).Methods("POST")
	r.Handle("/payments/{email}", authed(orderHandler.ListPayments)).Methods("GET")
	r.Handle("/payment-status/{id}", admin(orderHandler.MarkPaymentDone)).Methods("PATCH")

	r.Handle("/admin-stats", admin(statsHandler.AdminStats)).Methods("GET")
	r.Handle("/order-stats", admin(statsHandler.OrderStats)).Methods("GET")

	r.HandleFunc("/menu", menuHandler.GetMenu).Methods("GET")
	r.Handle("/menu", admin(menuHandler.AddProduct)).Methods("POST")
	r.Handle("/menu/{id}", admin(menuHandler.DeleteProduct)).Methods("DELETE")
	r.HandleFunc("/menuCategory", menuHandler.GetMenuByCategory).Methods("GET")
	r.HandleFunc("/shopMenu", menuHandler.GetShopMenu).Methods("GET")
	r.HandleFunc("/totalProducts", menuHandler.TotalProducts).Methods("GET")
	r.HandleFunc("/reviews", menuHandler.GetReviews).Methods("GET")

	r.Handle("/carts", authed(cartHandler.List)).Methods("GET")
	r.Handle("/carts", authed(cartHandler.Add)).Methods("POST")
	r.Handle("/carts/{id}", authed(cartHandler.Remove)).Methods("DELETE")

	r.Handle("/metrics", metrics.Handler()).Methods("GET")
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := store.Ping(r.Context()); err != nil {
			logger.Error().Err(err).Msg("Health check failed")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"status":"unavailable"}`))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	return r
}
