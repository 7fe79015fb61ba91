package domain_test

import (
	"testing"

	"dinebook/internal/domain"
)

func TestCancelledIsTerminal(t *testing.T) {
	r := domain.Reservation{ID: "r1", Status: domain.StatusCancelled}
	if domain.CanEdit(r) {
		t.Fatalf("expected CanEdit=false for cancelled reservation")
	}
	if domain.CanCancel(r) {
		t.Fatalf("expected CanCancel=false for cancelled reservation")
	}
	for _, to := range []domain.Status{domain.StatusPending, domain.StatusConfirmed, domain.StatusCancelled} {
		if domain.CanTransition(domain.StatusCancelled, to) {
			t.Fatalf("expected no transition out of cancelled, got cancelled->%s", to)
		}
	}
}

func TestEditableStates(t *testing.T) {
	for _, st := range []domain.Status{domain.StatusPending, domain.StatusConfirmed} {
		r := domain.Reservation{ID: "r1", Status: st}
		if !domain.CanEdit(r) {
			t.Fatalf("expected CanEdit=true for %s", st)
		}
		if !domain.CanCancel(r) {
			t.Fatalf("expected CanCancel=true for %s", st)
		}
	}
	// unknown statuses are not editable
	if domain.CanEdit(domain.Reservation{Status: "weird"}) {
		t.Fatalf("expected CanEdit=false for unknown status")
	}
}

func TestTransitionMatrix(t *testing.T) {
	cases := []struct {
		from, to domain.Status
		want     bool
	}{
		{domain.StatusPending, domain.StatusConfirmed, true},
		{domain.StatusPending, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusCancelled, true},
		{domain.StatusConfirmed, domain.StatusPending, false},
		{domain.StatusCancelled, domain.StatusPending, false},
	}
	for _, c := range cases {
		if got := domain.CanTransition(c.from, c.to); got != c.want {
			t.Fatalf("CanTransition(%s,%s)=%v want %v", c.from, c.to, got, c.want)
		}
	}
}
