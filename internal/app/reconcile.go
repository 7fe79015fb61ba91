package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"dinebook/internal/adapters/observability"
	"dinebook/internal/domain"
)

// Reconciler re-reads reservations to pick up out-of-band status changes,
// chiefly pending shells whose payment completed since the last sweep. It
// only observes: stale pending shells are logged, never expired or cancelled.
type Reconciler struct {
	backend domain.BackendClient
	cache   domain.Cache
}

func NewReconciler(b domain.BackendClient, c domain.Cache) *Reconciler {
	return &Reconciler{backend: b, cache: c}
}

// SweepResult summarizes one pass over a scope.
type SweepResult struct {
	Seen    int
	Pending int
	Changed int
}

// Sweep lists the scope fresh from the backend, diffs statuses against the
// previous snapshot, and evicts the scope's list cache when anything moved.
func (r *Reconciler) Sweep(ctx context.Context, scope domain.ListScope) (SweepResult, error) {
	payload, err := r.backend.ListReservations(ctx, scope)
	if err != nil {
		return SweepResult{}, err
	}

	current := map[string]string{}
	var res SweepResult
	for _, m := range unwrapList(payload) {
		rec := mapReservation(m)
		if rec.ID == "" {
			continue
		}
		res.Seen++
		if rec.Status == domain.StatusPending {
			res.Pending++
		}
		current[rec.ID] = string(rec.Status)
	}

	snapKey := "reconcile:" + scope.Key()
	prev := map[string]string{}
	_, _ = r.cache.Get(ctx, snapKey, &prev)

	for id, st := range current {
		p, ok := prev[id]
		if !ok || p == st {
			continue
		}
		res.Changed++
		observability.ObserveTransition(p, st)
		log.Info().Str("id", id).Str("from", p).Str("to", st).Msg("reservation status moved")
	}

	if res.Changed > 0 {
		_ = r.cache.Del(ctx, scope.Key())
	}
	_ = r.cache.Set(ctx, snapKey, current, 86400)

	return res, nil
}
