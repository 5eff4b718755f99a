package entities

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRef_FoldsIntegralNumbers(t *testing.T) {
	assert.Equal(t, NewRef(int64(3)), NewRef(json.Number("3")))
	assert.Equal(t, NewRef(int64(3)), NewRef(3.0))
	assert.Equal(t, NewRef(int64(3)), NewRef(3))
	assert.Equal(t, "2.5", NewRef(json.Number("2.5")).String())
	assert.Equal(t, "grp", NewRef("grp").String())
	assert.True(t, NewRef(nil).IsZero())
}

func TestRequestTimespan_Contains(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	w := RequestTimespan{Start: base, End: base.Add(8 * time.Hour)}

	assert.True(t, w.Contains(base, base.Add(8*time.Hour)))
	assert.False(t, w.Contains(base.Add(-time.Minute), base.Add(time.Hour)))
	assert.False(t, w.Contains(base.Add(7*time.Hour), base.Add(9*time.Hour)))
}

func TestAvailabilityRecord_IsSlot(t *testing.T) {
	assert.False(t, AvailabilityRecord{}.IsSlot())
	assert.False(t, AvailabilityRecord{RequestTimespan: Some(int64(0))}.IsSlot())
	assert.True(t, AvailabilityRecord{RequestTimespan: Some(int64(4))}.IsSlot())
}

func TestNull_MarshalJSON(t *testing.T) {
	b, _ := json.Marshal(struct {
		A Null[bool] `json:"a"`
		B Null[bool] `json:"b"`
	}{A: Some(false)})
	assert.JSONEq(t, `{"a":false,"b":null}`, string(b))
}
