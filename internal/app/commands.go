package app

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"dinebook/internal/adapters/observability"
	"dinebook/internal/domain"
)

// Reservations mediates all create/read/update/cancel traffic against the
// backend of record, normalizing its inconsistent field names and keeping
// the per-scope list cache coherent. It also tracks the last-known status
// and wire shape per reservation so illegal transitions are rejected before
// a round trip is wasted.
type Reservations struct {
	backend  domain.BackendClient
	cache    domain.Cache
	cacheTTL time.Duration

	mu    sync.Mutex
	known map[string]knownState
}

type knownState struct {
	status domain.Status
	shape  domain.WireShape
}

func NewReservations(b domain.BackendClient, c domain.Cache, ttl time.Duration) *Reservations {
	return &Reservations{backend: b, cache: c, cacheTTL: ttl, known: make(map[string]knownState)}
}

// Create books a reservation shell. The record comes back pending together
// with the payment session reference; payment confirmation arrives out of
// band and is only ever observed on a later read.
func (s *Reservations) Create(ctx context.Context, ident domain.Identity, req domain.CreateRequest) (domain.Reservation, error) {
	if err := domain.ValidateCreate(req, time.Now()); err != nil {
		return domain.Reservation{}, err
	}

	body := map[string]any{
		"restaurantId":   req.RestaurantID,
		"date":           req.Date,
		"time":           req.Time,
		"tableType":      string(req.TableType),
		"amount":         req.Amount,
		"idempotencyKey": uuid.NewString(),
	}
	// a fresh booking has never been read, so emit both count keys
	domain.PartySize{Count: req.PartySize, Shape: domain.ShapeGuestCount}.WriteFields(body)

	env, err := s.backend.CreateReservation(ctx, ident.Token, body)
	if err != nil {
		return domain.Reservation{}, err
	}

	r := mapReservation(unwrapItem(env))
	if r.PaymentSessionRef == "" {
		r.PaymentSessionRef = sessionRef(env)
	}
	s.remember(r)
	s.refresh(ctx, domain.ListScope{Identity: ident})

	log.Info().Str("id", r.ID).Str("restaurant", r.RestaurantRef).Msg("reservation shell created")
	return r, nil
}

// Update applies a partial edit. Edits never change status; a reservation
// whose last-known status is terminal is rejected locally with no round trip
// (the backend stays authoritative and may still reject independently).
func (s *Reservations) Update(ctx context.Context, ident domain.Identity, id string, fields domain.UpdateFields) (domain.Reservation, error) {
	if st, ok := s.lastStatus(id); ok && st.Terminal() {
		return domain.Reservation{}, &domain.ConflictError{ID: id, Status: st}
	}
	if err := domain.ValidateUpdate(fields, time.Now()); err != nil {
		return domain.Reservation{}, err
	}

	body := map[string]any{}
	if fields.Date != nil {
		body["date"] = *fields.Date
	}
	if fields.Time != nil {
		body["time"] = *fields.Time
	}
	if fields.TableType != nil {
		body["tableType"] = string(*fields.TableType)
	}
	if fields.PartySize != nil {
		domain.PartySize{Count: *fields.PartySize, Shape: s.lastShape(id)}.WriteFields(body)
	}

	out, err := s.backend.UpdateReservation(ctx, ident.Token, id, body)
	if err != nil {
		return domain.Reservation{}, err
	}

	r := mapReservation(unwrapItem(out))
	if r.ID == "" {
		r.ID = id
	}
	s.remember(r)
	s.refresh(ctx, domain.ListScope{Identity: ident})
	return r, nil
}

// Cancel moves a reservation to its terminal state. Cancelling a reservation
// already known to be cancelled is a no-op success with zero network calls.
func (s *Reservations) Cancel(ctx context.Context, ident domain.Identity, id string) error {
	prior, ok := s.lastStatus(id)
	if ok && prior == domain.StatusCancelled {
		return nil
	}
	if err := s.backend.CancelReservation(ctx, ident.Token, id); err != nil {
		return err
	}
	s.rememberStatus(id, domain.StatusCancelled)
	s.refresh(ctx, domain.ListScope{Identity: ident})

	log.Info().Str("id", id).Msg("reservation cancelled")
	return nil
}

// refresh drops and repopulates the scope's cached list after a successful
// write. Failures on the repopulating read are logged, not surfaced: the
// write already succeeded and the next read will fetch fresh data anyway.
func (s *Reservations) refresh(ctx context.Context, scope domain.ListScope) {
	_ = s.cache.Del(ctx, scope.Key())
	if _, err := s.List(ctx, scope); err != nil {
		log.Warn().Err(err).Str("scope", scope.Key()).Msg("list refresh after write failed")
	}
}

// ---- last-known state bookkeeping ----

func (s *Reservations) remember(r domain.Reservation) {
	if r.ID == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if prev, ok := s.known[r.ID]; ok && prev.status != r.Status {
		observability.ObserveTransition(string(prev.status), string(r.Status))
	}
	s.known[r.ID] = knownState{status: r.Status, shape: r.Party.Shape}
}

func (s *Reservations) rememberStatus(id string, st domain.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := s.known[id]
	if prev.status != st {
		observability.ObserveTransition(string(prev.status), string(st))
	}
	if prev.shape == "" {
		prev.shape = domain.ShapePartySize
	}
	s.known[id] = knownState{status: st, shape: prev.shape}
}

func (s *Reservations) lastStatus(id string) (domain.Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k, ok := s.known[id]
	return k.status, ok
}

// lastShape falls back to the partySize-only shape for records never read,
// which makes writes emit both count keys.
func (s *Reservations) lastShape(id string) domain.WireShape {
	s.mu.Lock()
	defer s.mu.Unlock()
	if k, ok := s.known[id]; ok && k.shape != "" {
		return k.shape
	}
	return domain.ShapePartySize
}
