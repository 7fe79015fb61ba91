package main

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"dinebook/internal/adapters/backend"
	"dinebook/internal/adapters/observability"
	redisad "dinebook/internal/adapters/redis"
	"dinebook/internal/app"
	"dinebook/internal/domain"
	"dinebook/internal/shared"
)

func main() {
	ctx := context.Background()
	cfg := shared.Load()

	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("base", cfg.BackendBase).
		Int("workers", cfg.Workers).
		Int("restaurants", len(cfg.RestaurantIDs)).
		Msg("reconciler starting")

	if cfg.ServiceToken == "" {
		log.Fatal().Msg("SERVICE_TOKEN is required for reconcile sweeps")
	}

	client := backend.New(cfg.BackendBase, cfg.BackendRPS)
	cache := redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	rec := app.NewReconciler(client, cache)

	ident := domain.Identity{ID: "reconciler", Role: domain.RoleAdmin, Token: cfg.ServiceToken}

	scopes := []domain.ListScope{{Identity: ident}}
	if len(cfg.RestaurantIDs) > 0 {
		scopes = scopes[:0]
		for _, id := range cfg.RestaurantIDs {
			scopes = append(scopes, domain.ListScope{Identity: ident, RestaurantID: id})
		}
	}

	sem := semaphore.NewWeighted(int64(cfg.Workers))
	var wg sync.WaitGroup

	for _, scope := range scopes {
		scope := scope

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			log.Fatal().Err(err).Msg("semaphore acquire failed")
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			res, err := rec.Sweep(ctx, scope)
			if err != nil {
				log.Warn().Str("scope", scope.Key()).Err(err).Msg("sweep failed")
				return
			}
			log.Info().
				Str("scope", scope.Key()).
				Int("seen", res.Seen).
				Int("pending", res.Pending).
				Int("changed", res.Changed).
				Msg("sweep ok")
		}()
	}

	wg.Wait()
	log.Info().Msg("reconcile completed")
}
