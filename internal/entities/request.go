package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// Ref is an opaque identifier owned by the records service (request group,
// person). It is passed back to the store exactly as it was read.
type Ref struct {
	v any
}

// NewRef wraps a raw value. Integral JSON numbers become int64 so that refs
// read from different payloads compare equal.
func NewRef(v any) Ref {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return Ref{v: n}
		}
		return Ref{v: t.String()}
	case float64:
		if t == float64(int64(t)) {
			return Ref{v: int64(t)}
		}
	case int:
		return Ref{v: int64(t)}
	}
	return Ref{v: v}
}

// Value is the raw value for use in filters and write payloads.
func (r Ref) Value() any { return r.v }

func (r Ref) IsZero() bool { return r.v == nil }

func (r Ref) String() string {
	if r.v == nil {
		return ""
	}
	return fmt.Sprint(r.v)
}

func (r Ref) MarshalJSON() ([]byte, error) { return json.Marshal(r.v) }

// AvailabilityRequest is one invitee's pending response. Loaded fresh on every
// interaction and never mutated locally.
type AvailabilityRequest struct {
	ID             int64
	RequestGroup   Ref
	Key            string
	Person         Ref
	Name           string
	AllowMaybe     Null[bool]
	Message        string
	MinSpanMinutes Null[float64]
	Responded      Null[time.Time]
	Response       string
}

// MaybeAllowed reports whether the "maybe" qualifier may be submitted.
func (r AvailabilityRequest) MaybeAllowed() bool {
	return r.AllowMaybe.Valid && r.AllowMaybe.V
}

// RequestTimespan is one window offered to the invitees of a request group.
// AllowPartial windows accept free-form spans; the others are atomic slots.
type RequestTimespan struct {
	ID           int64
	RequestGroup Ref
	Start        time.Time
	End          time.Time
	AllowPartial bool
}

// Contains reports whether [start, end] lies fully inside the window.
func (t RequestTimespan) Contains(start, end time.Time) bool {
	return !start.Before(t.Start) && !end.After(t.End)
}

// AvailabilityRecord is the persisted form of both spans and slots. A set
// RequestTimespan link marks a slot.
type AvailabilityRecord struct {
	ID              int64
	Person          Ref
	RequestTimespan Null[int64]
	Available       Null[bool]
	Maybe           bool
	Start           time.Time
	End             time.Time
}

// IsSlot reports whether the record answers a fixed window. The store may
// report 0 for an empty reference, which counts as unset.
func (r AvailabilityRecord) IsSlot() bool {
	return r.RequestTimespan.Valid && r.RequestTimespan.V != 0
}

// AsSpan reconstitutes a free-form span.
func (r AvailabilityRecord) AsSpan() TimeSpan {
	return TimeSpan{Start: r.Start, End: r.End, Maybe: r.Maybe}
}

// AsSlot reconstitutes a slot answer.
func (r AvailabilityRecord) AsSlot() TimeSlot {
	return TimeSlot{RSpanID: r.RequestTimespan.V, Start: r.Start, End: r.End, Available: r.Available}
}
