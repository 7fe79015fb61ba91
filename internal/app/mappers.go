package app

import (
	"strconv"
	"strings"
	"time"

	"dinebook/internal/domain"
)

/********** alias registries (single source of truth) **********/

var reservationAliases = map[string][]string{
	"id":         {"_id", "id", "reservationId"},
	"restaurant": {"restaurant._id", "restaurant.id", "restaurantId", "restaurant"},
	"date":       {"date", "reservationDate"},
	"time":       {"time", "reservationTime"},
	"table":      {"tableType", "table_type", "table"},
	"status":     {"status", "state"},
	"session":    {"sessionId", "session_id", "paymentSessionId", "checkoutSessionId"},
}

var amountAliases = []string{"amount", "price", "totalAmount"}

// envelope keys seen around reservation collections and single records
var (
	listEnvelopeKeys = []string{"data", "reservations"}
	itemEnvelopeKeys = []string{"data", "reservation"}
)

/********** tiny helpers **********/

// lookupAny: safe nested lookup with dot paths on maps.
func lookupAny(m map[string]any, path string) any {
	cur := any(m)
	for _, part := range strings.Split(path, ".") {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		v, ok := obj[part]
		if !ok {
			return nil
		}
		cur = v
	}
	return cur
}

// lookupStr returns the string at path or "".
func lookupStr(m map[string]any, path string) string {
	if v := lookupAny(m, path); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// firstStrAlias: first non-empty string for a named alias set.
func firstStrAlias(m map[string]any, key string) string {
	for _, p := range reservationAliases[key] {
		if s := strings.TrimSpace(lookupStr(m, p)); s != "" {
			return s
		}
	}
	return ""
}

// getFloatFlexible: number from several paths (float64/int/string like "8,0").
func getFloatFlexible(m map[string]any, paths ...string) *float64 {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			f := v
			return &f
		case int:
			f := float64(v)
			return &f
		case string:
			s := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
			if s == "" {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// firstIntFlexible: int from several paths (float64/int/string).
func firstIntFlexible(m map[string]any, paths ...string) *int {
	for _, k := range paths {
		switch v := lookupAny(m, k).(type) {
		case float64:
			x := int(v)
			return &x
		case int:
			x := v
			return &x
		case string:
			s := strings.TrimSpace(v)
			if s == "" {
				continue
			}
			if n, err := strconv.Atoi(s); err == nil {
				return &n
			}
		}
	}
	return nil
}

/********** envelope unwrapping **********/

// unwrapList tolerates {data:[...]}, {reservations:[...]}, or a bare array.
// Anything else degrades to an empty slice so a transient contract change on
// the backend shows "no reservations" instead of failing the view.
func unwrapList(payload any) []map[string]any {
	switch v := payload.(type) {
	case []any:
		return onlyMaps(v)
	case map[string]any:
		for _, k := range listEnvelopeKeys {
			if arr, ok := v[k].([]any); ok {
				return onlyMaps(arr)
			}
		}
	}
	return nil
}

func onlyMaps(in []any) []map[string]any {
	out := make([]map[string]any, 0, len(in))
	for _, it := range in {
		if m, ok := it.(map[string]any); ok {
			out = append(out, m)
		}
	}
	return out
}

// unwrapItem digs a single reservation record out of its envelope, falling
// back to the envelope itself when the record sits at the top level.
func unwrapItem(envelope map[string]any) map[string]any {
	for _, k := range itemEnvelopeKeys {
		if m, ok := envelope[k].(map[string]any); ok {
			return m
		}
	}
	return envelope
}

// sessionRef extracts the payment session reference from a create envelope,
// checking both the envelope and the nested record.
func sessionRef(envelope map[string]any) string {
	if s := firstStrAlias(envelope, "session"); s != "" {
		return s
	}
	return firstStrAlias(unwrapItem(envelope), "session")
}

/********** reservation mapper **********/

// mapPartySize reconciles the two wire representations of one concept into a
// canonical count, remembering which shape it was read as. An array of guest
// objects wins over any scalar; the count is clamped to at least one.
func mapPartySize(m map[string]any) domain.PartySize {
	if arr, ok := m["guests"].([]any); ok {
		n := len(arr)
		if n < 1 {
			n = 1
		}
		return domain.PartySize{Count: n, Shape: domain.ShapeGuestList}
	}
	if n := firstIntFlexible(m, "guests"); n != nil && *n > 0 {
		return domain.PartySize{Count: *n, Shape: domain.ShapeGuestCount}
	}
	if n := firstIntFlexible(m, "partySize", "party_size"); n != nil && *n > 0 {
		return domain.PartySize{Count: *n, Shape: domain.ShapePartySize}
	}
	return domain.PartySize{Count: 1, Shape: domain.ShapePartySize}
}

// mapDate normalizes timestamps and bare dates to YYYY-MM-DD.
func mapDate(s string) string {
	if s == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(domain.DateLayout)
	}
	if t, err := time.Parse(domain.DateLayout, s); err == nil {
		return t.Format(domain.DateLayout)
	}
	return s
}

func mapReservation(m map[string]any) domain.Reservation {
	r := domain.Reservation{
		ID:            firstStrAlias(m, "id"),
		RestaurantRef: firstStrAlias(m, "restaurant"),
		Date:          mapDate(firstStrAlias(m, "date")),
		Time:          firstStrAlias(m, "time"),
		Party:         mapPartySize(m),
	}

	if t, ok := domain.ParseTableType(firstStrAlias(m, "table")); ok {
		r.Table = t
	} else {
		r.Table = domain.TableIndoor
	}

	if f := getFloatFlexible(m, amountAliases...); f != nil {
		r.Amount = *f
	}

	// a record created server-side starts as a pending shell
	if st := domain.ParseStatus(lookupAny(m, "status")); st != "" {
		r.Status = st
	} else if st := domain.ParseStatus(lookupAny(m, "state")); st != "" {
		r.Status = st
	} else {
		r.Status = domain.StatusPending
	}

	r.PaymentSessionRef = firstStrAlias(m, "session")
	return r
}
