package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bistro-api/internal/config"
	"bistro-api/internal/db"
	"bistro-api/internal/gateway"
	"bistro-api/internal/logger"
	"bistro-api/internal/middleware"
	"bistro-api/internal/router"
	"bistro-api/internal/services"
	"bistro-api/internal/store"
	"bistro-api/internal/store/memory"

	"github.com/rs/zerolog"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		bootLog := logger.InitLogger("info", "console")
		bootLog.Fatal().Err(err).Msg("Configuration error")
	}

	log := logger.InitLogger(cfg.LogLevel, cfg.LogFormat)
	log.Info().Str("driver", cfg.DBDriver).Msg("Starting bistro API")

	gw := gateway.NewStripeGateway(cfg.PaymentSecretKey, log)

	svc, pinger, closeStore := setupStore(cfg, gw, log)
	defer closeStore()

	r := router.SetupRouter(cfg, svc, pinger, log)

	server := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           middleware.CORS(cfg.CORSOrigins)(r),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Graceful shutdown failed")
	}

	log.Info().Msg("Server stopped")
}

// setupStore wires every service to the configured backend and returns a
// closer for it.
func setupStore(cfg config.Config, gw gateway.Gateway, log zerolog.Logger) (router.Services, router.Pinger, func()) {
	auth := services.NewAuthService(cfg.JWTSecret, log)

	if cfg.DBDriver == config.DriverMemory {
		log.Warn().Msg("Using the in-memory store; data is lost on restart")
		st := memory.New()
		return router.Services{
			Auth:      auth,
			Users:     services.NewUserService(st.Users(), log),
			Orders:    services.NewOrderService(st.Payments(), st.Carts(), st, gw, cfg.PaymentCurrency, log),
			Analytics: services.NewAnalyticsService(st.Users(), st.Products(), st.Payments(), st.Payments(), log),
			Catalog:   services.NewCatalogService(st.Products(), st.Reviews(), log),
			Carts:     services.NewCartService(st.Carts(), log),
		}, st, func() {}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, cfg.MongoURI, cfg.DBName, cfg.MongoTransactions, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	if err := database.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to create indexes")
	}

	users := store.NewUserStore(database)
	products := store.NewProductStore(database)
	carts := store.NewCartStore(database)
	payments := store.NewPaymentStore(database)

	closeFn := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Close(ctx); err != nil {
			log.Error().Err(err).Msg("Error disconnecting from MongoDB")
		}
	}

	return router.Services{
		Auth:      auth,
		Users:     services.NewUserService(users, log),
		Orders:    services.NewOrderService(payments, carts, database, gw, cfg.PaymentCurrency, log),
		Analytics: services.NewAnalyticsService(users, products, payments, payments, log),
		Catalog:   services.NewCatalogService(products, store.NewReviewStore(database), log),
		Carts:     services.NewCartService(carts, log),
	}, database, closeFn
}
