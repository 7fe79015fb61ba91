package app

import (
	"context"

	"dinebook/internal/domain"
)

// List returns the normalized reservations for a scope, cache-aside. A
// malformed or unrecognized envelope degrades to an empty list rather than
// an error so the view keeps rendering through a transient contract change.
func (s *Reservations) List(ctx context.Context, scope domain.ListScope) ([]domain.Reservation, error) {
	key := scope.Key()

	var cached []domain.Reservation
	if ok, _ := s.cache.Get(ctx, key, &cached); ok {
		s.rememberAll(cached)
		return cached, nil
	}

	payload, err := s.backend.ListReservations(ctx, scope)
	if err != nil {
		return nil, err
	}

	items := unwrapList(payload)
	out := make([]domain.Reservation, 0, len(items))
	for _, m := range items {
		r := mapReservation(m)
		if r.ID == "" {
			continue
		}
		out = append(out, r)
	}
	s.rememberAll(out)

	// copy before caching so callers mutating the result can't poison the cache
	cp := make([]domain.Reservation, len(out))
	copy(cp, out)
	_ = s.cache.Set(ctx, key, cp, int(s.cacheTTL.Seconds()))

	return out, nil
}

func (s *Reservations) rememberAll(rs []domain.Reservation) {
	for _, r := range rs {
		s.remember(r)
	}
}
