// Package mapper converts the records service's loosely typed rows and the
// calendar form's JSON into entities, and entities back into write payloads.
package mapper

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"availability/internal/entities"
)

// caster turns one raw JSON value into a typed value.
type caster[V any] func(raw any) (V, error)

// nullable lets null through without calling the inner caster.
func nullable[V any](c caster[V]) caster[entities.Null[V]] {
	return func(raw any) (entities.Null[V], error) {
		if raw == nil {
			return entities.Null[V]{}, nil
		}
		v, err := c(raw)
		if err != nil {
			return entities.Null[V]{}, err
		}
		return entities.Some(v), nil
	}
}

func castRef(raw any) (entities.Ref, error) { return entities.NewRef(raw), nil }

func castFloat(raw any) (float64, error) {
	switch t := raw.(type) {
	case json.Number:
		return t.Float64()
	case float64:
		return t, nil
	case float32:
		return float64(t), nil
	case int:
		return float64(t), nil
	case int64:
		return float64(t), nil
	case string:
		return strconv.ParseFloat(t, 64)
	}
	return 0, fmt.Errorf("expected number, got %T", raw)
}

func castInt(raw any) (int64, error) {
	switch t := raw.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, nil
		}
	case int:
		return int64(t), nil
	case int64:
		return t, nil
	case string:
		return strconv.ParseInt(t, 10, 64)
	}
	f, err := castFloat(raw)
	if err != nil {
		return 0, fmt.Errorf("expected integer, got %T", raw)
	}
	if f != math.Trunc(f) {
		return 0, fmt.Errorf("expected integer, got %v", f)
	}
	return int64(f), nil
}

func castString(raw any) (string, error) {
	switch t := raw.(type) {
	case string:
		return t, nil
	case json.Number:
		return t.String(), nil
	}
	return "", fmt.Errorf("expected string, got %T", raw)
}

func castBool(raw any) (bool, error) {
	switch t := raw.(type) {
	case bool:
		return t, nil
	case json.Number, float64, int, int64:
		f, _ := castFloat(t)
		return f != 0, nil
	}
	return false, fmt.Errorf("expected boolean, got %T", raw)
}

// isoLayouts are tried in order for string timestamps. Layouts without an
// offset are read as UTC.
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// castTime reads ISO-8601 strings (as sent by the calendar widget) and numeric
// Unix epoch seconds (as stored by the records service).
func castTime(raw any) (time.Time, error) {
	if s, ok := raw.(string); ok {
		for _, layout := range isoLayouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, nil
			}
		}
		return time.Time{}, fmt.Errorf("invalid ISO-8601 timestamp %q", s)
	}
	if _, ok := raw.(bool); ok {
		return time.Time{}, fmt.Errorf("expected timestamp, got bool")
	}
	secs, err := castFloat(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("expected timestamp, got %T", raw)
	}
	whole, frac := math.Modf(secs)
	return time.Unix(int64(whole), int64(math.Round(frac*1e9))).UTC(), nil
}

// epochSeconds is the inverse of castTime for numeric values.
func epochSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}
