package mapper

import (
	"errors"
	"strings"
	"time"

	"availability/internal/entities"
	apperrors "availability/internal/errors"
	"availability/internal/records"
)

// field binds one named input value to a destination in T.
type field[T any] struct {
	name     string
	optional bool
	set      func(dst *T, raw any) error
}

func bind[T, V any](name string, c caster[V], dst func(*T) *V) field[T] {
	return field[T]{name: name, set: func(t *T, raw any) error {
		v, err := c(raw)
		if err != nil {
			return err
		}
		*dst(t) = v
		return nil
	}}
}

// bindNull is bind for nullable fields: absent and null both decode as null.
func bindNull[T, V any](name string, c caster[V], dst func(*T) *entities.Null[V]) field[T] {
	f := bind(name, nullable(c), dst)
	f.optional = true
	return f
}

// optional marks f as allowed to be absent, leaving the zero value.
func optional[T any](f field[T]) field[T] {
	f.optional = true
	return f
}

// decode applies every field of table to kv.
func decode[T any](entity string, kv map[string]any, table []field[T]) (T, error) {
	var out T
	for _, f := range table {
		raw, ok := kv[f.name]
		if !ok {
			if f.optional {
				continue
			}
			return out, &apperrors.ContractError{Entity: entity, Field: f.name, Err: errors.New("missing")}
		}
		if err := f.set(&out, raw); err != nil {
			return out, &apperrors.ContractError{Entity: entity, Field: f.name, Err: err}
		}
	}
	return out, nil
}

// storeFields flattens a stored row into lower-cased field names plus id.
func storeFields(r records.Record) map[string]any {
	kv := make(map[string]any, len(r.Fields)+1)
	for k, v := range r.Fields {
		kv[strings.ToLower(k)] = v
	}
	kv["id"] = r.ID
	return kv
}

var requestTable = []field[entities.AvailabilityRequest]{
	bind("id", castInt, func(r *entities.AvailabilityRequest) *int64 { return &r.ID }),
	bind("request_group", castRef, func(r *entities.AvailabilityRequest) *entities.Ref { return &r.RequestGroup }),
	bind("key", castString, func(r *entities.AvailabilityRequest) *string { return &r.Key }),
	bind("person", castRef, func(r *entities.AvailabilityRequest) *entities.Ref { return &r.Person }),
	bind("name", castString, func(r *entities.AvailabilityRequest) *string { return &r.Name }),
	bindNull("allow_maybe", castBool, func(r *entities.AvailabilityRequest) *entities.Null[bool] { return &r.AllowMaybe }),
	bind("message", castString, func(r *entities.AvailabilityRequest) *string { return &r.Message }),
	bindNull("min_span_minutes", castFloat, func(r *entities.AvailabilityRequest) *entities.Null[float64] { return &r.MinSpanMinutes }),
	bindNull("responded", castTime, func(r *entities.AvailabilityRequest) *entities.Null[time.Time] { return &r.Responded }),
	bind("response", castString, func(r *entities.AvailabilityRequest) *string { return &r.Response }),
}

var timespanTable = []field[entities.RequestTimespan]{
	bind("id", castInt, func(t *entities.RequestTimespan) *int64 { return &t.ID }),
	bind("request_group", castRef, func(t *entities.RequestTimespan) *entities.Ref { return &t.RequestGroup }),
	bind("start", castTime, func(t *entities.RequestTimespan) *time.Time { return &t.Start }),
	bind("end", castTime, func(t *entities.RequestTimespan) *time.Time { return &t.End }),
	bind("allow_partial", castBool, func(t *entities.RequestTimespan) *bool { return &t.AllowPartial }),
}

var recordTable = []field[entities.AvailabilityRecord]{
	bind("id", castInt, func(r *entities.AvailabilityRecord) *int64 { return &r.ID }),
	bind("person", castRef, func(r *entities.AvailabilityRecord) *entities.Ref { return &r.Person }),
	bindNull("request_timespan", castInt, func(r *entities.AvailabilityRecord) *entities.Null[int64] { return &r.RequestTimespan }),
	bindNull("available", castBool, func(r *entities.AvailabilityRecord) *entities.Null[bool] { return &r.Available }),
	optional(bind("maybe", castBool, func(r *entities.AvailabilityRecord) *bool { return &r.Maybe })),
	bind("start", castTime, func(r *entities.AvailabilityRecord) *time.Time { return &r.Start }),
	bind("end", castTime, func(r *entities.AvailabilityRecord) *time.Time { return &r.End }),
}

var spanTable = []field[entities.TimeSpan]{
	bind("start", castTime, func(s *entities.TimeSpan) *time.Time { return &s.Start }),
	bind("end", castTime, func(s *entities.TimeSpan) *time.Time { return &s.End }),
	optional(bind("maybe", castBool, func(s *entities.TimeSpan) *bool { return &s.Maybe })),
}

var slotTable = []field[entities.TimeSlot]{
	bind("rspan_id", castInt, func(s *entities.TimeSlot) *int64 { return &s.RSpanID }),
	bind("start", castTime, func(s *entities.TimeSlot) *time.Time { return &s.Start }),
	bind("end", castTime, func(s *entities.TimeSlot) *time.Time { return &s.End }),
	bindNull("available", castBool, func(s *entities.TimeSlot) *entities.Null[bool] { return &s.Available }),
}
