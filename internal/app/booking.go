package app

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"dinebook/internal/domain"
)

// BookingForm is the raw, user-shaped input for a new booking. TableType may
// be empty (defaults to indoor) and the guest count may arrive under either
// name; the coordinator shapes it into a CreateRequest.
type BookingForm struct {
	RestaurantID string
	Date         string
	Time         string
	PartySize    int
	TableType    string
	Amount       float64
}

// BookingOutcome reports how far a submission got. A created shell with
// PaymentStarted=false means the reservation exists, stays pending, and the
// checkout must be retried manually; it is never auto-cancelled.
type BookingOutcome struct {
	Reservation    domain.Reservation
	RedirectURL    string
	PaymentStarted bool
	PaymentError   string
}

// BookingCoordinator validates and shapes booking requests, creates the
// reservation shell, and only then asks the payment gateway for a redirect.
type BookingCoordinator struct {
	reservations *Reservations
	gateway      domain.PaymentGateway
}

func NewBookingCoordinator(r *Reservations, g domain.PaymentGateway) *BookingCoordinator {
	return &BookingCoordinator{reservations: r, gateway: g}
}

// Submit runs the two-phase booking protocol: create the pending shell, then
// start the checkout with the returned session reference. A gateway failure
// is surfaced verbatim in the outcome and never retried automatically, since
// double-submitting a payment session is unsafe.
func (c *BookingCoordinator) Submit(ctx context.Context, ident domain.Identity, form BookingForm) (BookingOutcome, error) {
	req := domain.CreateRequest{
		RestaurantID: form.RestaurantID,
		Date:         strings.TrimSpace(form.Date),
		Time:         strings.TrimSpace(form.Time),
		PartySize:    form.PartySize,
		TableType:    domain.TableType(strings.ToLower(strings.TrimSpace(form.TableType))),
		Amount:       form.Amount,
	}
	if req.TableType == "" {
		req.TableType = domain.TableIndoor
	}
	if err := domain.ValidateCreate(req, time.Now()); err != nil {
		return BookingOutcome{}, err
	}

	res, err := c.reservations.Create(ctx, ident, req)
	if err != nil {
		return BookingOutcome{}, err
	}

	if res.PaymentSessionRef == "" {
		log.Warn().Str("id", res.ID).Msg("no payment session on created reservation")
		return BookingOutcome{Reservation: res, PaymentError: "payment not started: no session reference returned"}, nil
	}

	url, err := c.gateway.StartCheckout(ctx, res.PaymentSessionRef)
	if err != nil {
		log.Warn().Err(err).Str("id", res.ID).Msg("checkout redirect failed; reservation stays pending")
		return BookingOutcome{Reservation: res, PaymentError: err.Error()}, nil
	}

	return BookingOutcome{Reservation: res, RedirectURL: url, PaymentStarted: true}, nil
}
