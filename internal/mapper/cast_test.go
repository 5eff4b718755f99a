package mapper

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCastTime(t *testing.T) {
	tests := []struct {
		name string
		raw  any
		want time.Time
	}{
		{"epoch integer", json.Number("1704099600"), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"epoch float", 1704099600.5, time.Date(2024, 1, 1, 9, 0, 0, 500000000, time.UTC)},
		{"epoch int64", int64(1704099600), time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"iso utc", "2024-01-01T09:00:00Z", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"iso offset", "2024-01-01T10:00:00+01:00", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"iso millis", "2024-01-01T09:00:00.000Z", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"iso naive", "2024-01-01T09:00:00", time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)},
		{"date only", "2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := castTime(tt.raw)
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %s, want %s", got, tt.want)
		})
	}
}

func TestCastTime_Invalid(t *testing.T) {
	for _, raw := range []any{"tomorrow", true, map[string]any{}} {
		_, err := castTime(raw)
		assert.Error(t, err, "%v", raw)
	}
}

func TestEpochSeconds_RoundTrip(t *testing.T) {
	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	got, err := castTime(epochSeconds(ts))
	require.NoError(t, err)
	assert.True(t, ts.Equal(got))
}

func TestCastInt(t *testing.T) {
	n, err := castInt(json.Number("42"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	n, err = castInt(json.Number("42.0"))
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	_, err = castInt(json.Number("42.5"))
	assert.Error(t, err)

	_, err = castInt(true)
	assert.Error(t, err)
}

func TestCastBool(t *testing.T) {
	b, err := castBool(true)
	require.NoError(t, err)
	assert.True(t, b)

	b, err = castBool(json.Number("0"))
	require.NoError(t, err)
	assert.False(t, b)

	_, err = castBool("yes")
	assert.Error(t, err)
}

func TestNullable(t *testing.T) {
	calls := 0
	inner := func(raw any) (bool, error) {
		calls++
		return castBool(raw)
	}

	v, err := nullable(inner)(nil)
	require.NoError(t, err)
	assert.False(t, v.Valid)
	assert.Zero(t, calls)

	v, err = nullable(inner)(false)
	require.NoError(t, err)
	assert.True(t, v.Valid)
	assert.False(t, v.V)
	assert.Equal(t, 1, calls)

	_, err = nullable(inner)("nope")
	assert.Error(t, err)
}
