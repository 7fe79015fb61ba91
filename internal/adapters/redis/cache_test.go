package redisad_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	redisad "dinebook/internal/adapters/redis"
	"dinebook/internal/domain"
)

func TestCacheRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()

	ctx := context.Background()
	in := []domain.Reservation{{
		ID:     "r1",
		Status: domain.StatusPending,
		Party:  domain.PartySize{Count: 3, Shape: domain.ShapeGuestList},
	}}

	var out []domain.Reservation
	if ok, err := c.Get(ctx, "resv:owner:u1", &out); ok || err != nil {
		t.Fatalf("expected clean miss, got ok=%v err=%v", ok, err)
	}

	if err := c.Set(ctx, "resv:owner:u1", in, 60); err != nil {
		t.Fatalf("set: %v", err)
	}
	ok, err := c.Get(ctx, "resv:owner:u1", &out)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if len(out) != 1 || out[0].ID != "r1" || out[0].Party.Shape != domain.ShapeGuestList {
		t.Fatalf("round trip lost data: %+v", out)
	}

	if err := c.Del(ctx, "resv:owner:u1"); err != nil {
		t.Fatalf("del: %v", err)
	}
	if ok, _ := c.Get(ctx, "resv:owner:u1", &out); ok {
		t.Fatalf("expected miss after del")
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	c := redisad.New(mr.Addr(), "", 0)
	defer c.Close()

	ctx := context.Background()
	if err := c.Set(ctx, "k", map[string]string{"a": "b"}, 30); err != nil {
		t.Fatalf("set: %v", err)
	}
	mr.FastForward(31 * time.Second)

	var out map[string]string
	if ok, _ := c.Get(ctx, "k", &out); ok {
		t.Fatalf("expected expiry after ttl")
	}
}
