package domain

import "context"

// ListScope identifies whose reservations a read covers: the acting
// identity's own bookings, or a restaurant's book for managers and admins.
type ListScope struct {
	Identity     Identity
	RestaurantID string
}

// Key is the cache key for this scope's reservation list.
func (s ListScope) Key() string {
	if s.RestaurantID != "" {
		return "resv:restaurant:" + s.RestaurantID
	}
	return "resv:owner:" + s.Identity.ID
}

// CreateRequest is a validated booking request as assembled by the form
// coordinator before it reaches the repository.
type CreateRequest struct {
	RestaurantID string
	Date         string
	Time         string
	PartySize    int
	TableType    TableType
	Amount       float64
}

// UpdateFields is a partial edit; nil fields are left untouched server-side.
type UpdateFields struct {
	Date      *string
	Time      *string
	PartySize *int
	TableType *TableType
}

// BackendClient performs the raw REST operations against the backend of
// record. Payloads come back loosely typed; the repository normalizes them.
type BackendClient interface {
	ListReservations(ctx context.Context, scope ListScope) (any, error)
	CreateReservation(ctx context.Context, token string, body map[string]any) (map[string]any, error)
	UpdateReservation(ctx context.Context, token, id string, body map[string]any) (map[string]any, error)
	CancelReservation(ctx context.Context, token, id string) error
}

// PaymentGateway starts a checkout for an outstanding payment session and
// yields the redirect target. The payment outcome itself is never reported
// here; it arrives out of band and is observed on a later read.
type PaymentGateway interface {
	StartCheckout(ctx context.Context, sessionRef string) (string, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
