package domain

import "strings"

// Status is the reservation lifecycle state as reported by the backend of record.
type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

// ParseStatus maps a loosely typed wire value onto a Status. Unknown values
// are lowercased and kept as-is to avoid data loss.
func ParseStatus(v any) Status {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return Status(strings.ToLower(strings.TrimSpace(s)))
}

// Terminal reports whether no further transition may leave this status.
func (s Status) Terminal() bool { return s == StatusCancelled }

type TableType string

const (
	TableIndoor  TableType = "indoor"
	TableWindow  TableType = "window"
	TableOutdoor TableType = "outdoor"
)

// ParseTableType normalizes a wire value. An empty input defaults to indoor.
func ParseTableType(s string) (TableType, bool) {
	switch t := TableType(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TableIndoor, true
	case TableIndoor, TableWindow, TableOutdoor:
		return t, true
	default:
		return "", false
	}
}

// WireShape records which key carried the guest count when a reservation was
// last read. The backend represents one concept under two names; writes must
// reproduce the shape observed on the original read.
type WireShape string

const (
	ShapePartySize  WireShape = "partySize" // only the partySize key was present
	ShapeGuestCount WireShape = "guests"    // guests carried a scalar count
	ShapeGuestList  WireShape = "guestList" // guests carried an array of guest objects
)

// PartySize is the canonical guest count plus the wire shape it was read as.
type PartySize struct {
	Count int
	Shape WireShape
}

// WriteFields adds the create/update keys the backend expects for this party
// size. partySize is always emitted; the scalar guests key is added only when
// the reservation was not read with guests as an array, since a scalar would
// clobber the guest objects on that representation.
func (p PartySize) WriteFields(into map[string]any) {
	into["partySize"] = p.Count
	if p.Shape != ShapeGuestList {
		into["guests"] = p.Count
	}
}

// Reservation is the canonical record as known to the backend of record.
type Reservation struct {
	ID                string
	RestaurantRef     string
	Date              string // calendar date, YYYY-MM-DD
	Time              string // wall-clock time, HH:MM
	Party             PartySize
	Table             TableType
	Amount            float64
	Status            Status
	PaymentSessionRef string // present only while a checkout is outstanding
}
