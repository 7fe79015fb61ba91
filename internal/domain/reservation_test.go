package domain_test

import (
	"testing"

	"dinebook/internal/domain"
)

func TestParseTableType(t *testing.T) {
	if tt, ok := domain.ParseTableType(""); !ok || tt != domain.TableIndoor {
		t.Fatalf("empty must default to indoor, got %q ok=%v", tt, ok)
	}
	if tt, ok := domain.ParseTableType(" Window "); !ok || tt != domain.TableWindow {
		t.Fatalf("expected window, got %q ok=%v", tt, ok)
	}
	if _, ok := domain.ParseTableType("patio"); ok {
		t.Fatalf("patio must be rejected")
	}
}

func TestParseStatus(t *testing.T) {
	if st := domain.ParseStatus(" Cancelled "); st != domain.StatusCancelled {
		t.Fatalf("expected cancelled, got %q", st)
	}
	if st := domain.ParseStatus(42); st != "" {
		t.Fatalf("non-string must parse empty, got %q", st)
	}
	if !domain.StatusCancelled.Terminal() {
		t.Fatalf("cancelled must be terminal")
	}
	if domain.StatusConfirmed.Terminal() {
		t.Fatalf("confirmed must not be terminal")
	}
}

// writes reproduce the wire shape the reservation was read as: the scalar
// guests key only appears when guests was not an array on read
func TestPartySizeWriteFields(t *testing.T) {
	body := map[string]any{}
	domain.PartySize{Count: 3, Shape: domain.ShapeGuestList}.WriteFields(body)
	if body["partySize"] != 3 {
		t.Fatalf("expected partySize=3, got %v", body["partySize"])
	}
	if _, ok := body["guests"]; ok {
		t.Fatalf("array-shaped reservations must not emit scalar guests")
	}

	for _, shape := range []domain.WireShape{domain.ShapeGuestCount, domain.ShapePartySize} {
		body = map[string]any{}
		domain.PartySize{Count: 5, Shape: shape}.WriteFields(body)
		if body["partySize"] != 5 || body["guests"] != 5 {
			t.Fatalf("shape %s: expected both keys, got %v", shape, body)
		}
	}
}
