package main

import (
	"net/http"

	"github.com/rs/zerolog/log"

	server "dinebook/internal/adapters/http_server"
	"dinebook/internal/adapters/backend"
	"dinebook/internal/adapters/observability"
	"dinebook/internal/adapters/payment"
	redisad "dinebook/internal/adapters/redis"
	"dinebook/internal/app"
	"dinebook/internal/session"
	"dinebook/internal/shared"
)

func main() {
	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(reg)

	// deps
	client := backend.New(cfg.BackendBase, cfg.BackendRPS)
	gateway, err := payment.New(cfg.PaymentBase, cfg.PaymentKey)
	if err != nil {
		log.Fatal().Err(err).Msg("payment client init failed")
	}
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	reservations := app.NewReservations(client, cache, cfg.CacheTTL)
	coordinator := app.NewBookingCoordinator(reservations, gateway)
	verifier := session.NewVerifier(cfg.JWTSecret)

	// http
	srv := server.New()
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{R: reservations, B: coordinator}, verifier)

	log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux()}

	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("http server failed")
	}
}
