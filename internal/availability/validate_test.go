package availability

import (
	"testing"

	"availability/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckStartBeforeEnd(t *testing.T) {
	assert.Nil(t, CheckStartBeforeEnd([]entities.TimeSpan{span(9, 0, 10, 0, false)}))

	err := CheckStartBeforeEnd([]entities.TimeSpan{span(10, 0, 10, 0, false)})
	require.NotNil(t, err)
	assert.Equal(t, "start_before_end", err.Check)

	slots := []entities.TimeSlot{{Start: at(11, 0), End: at(10, 0)}}
	assert.NotNil(t, CheckStartBeforeEnd(slots))
}

func TestCheckNonoverlapping(t *testing.T) {
	touching := []entities.TimeSpan{span(9, 0, 10, 0, false), span(10, 0, 11, 0, true)}
	assert.Nil(t, CheckNonoverlapping(touching))

	overlapping := []entities.TimeSpan{span(9, 0, 10, 30, false), span(10, 0, 11, 0, false)}
	err := CheckNonoverlapping(overlapping)
	require.NotNil(t, err)
	assert.Equal(t, "Some time spans overlap.", err.Message)
}

func TestCheckSlotsResponded(t *testing.T) {
	slots := []entities.TimeSlot{
		{RSpanID: 1, Available: entities.Some(true)},
		{RSpanID: 2, Available: entities.Some(false)},
	}
	assert.Nil(t, CheckSlotsResponded(slots))

	slots = append(slots, entities.TimeSlot{RSpanID: 3})
	err := CheckSlotsResponded(slots)
	require.NotNil(t, err)
	assert.Equal(t, "Not all time slots have availability responses.", err.Message)
}

func TestCheckSpansWithinRequested(t *testing.T) {
	s := []entities.TimeSpan{span(9, 0, 10, 0, false)}

	narrow := []entities.RequestTimespan{{Start: at(9, 30), End: at(17, 0), AllowPartial: true}}
	err := CheckSpansWithinRequested(narrow, s)
	require.NotNil(t, err)
	assert.Equal(t, "Not all time spans fall within the requested times.", err.Message)

	wide := []entities.RequestTimespan{{Start: at(8, 0), End: at(18, 0), AllowPartial: true}}
	assert.Nil(t, CheckSpansWithinRequested(wide, s))

	exact := []entities.RequestTimespan{{Start: at(9, 0), End: at(10, 0), AllowPartial: true}}
	assert.Nil(t, CheckSpansWithinRequested(exact, s))
}

func TestCheckSpansWithinRequested_SingleWindow(t *testing.T) {
	// Two touching windows do not together contain a span crossing them.
	windows := []entities.RequestTimespan{
		{Start: at(9, 0), End: at(10, 0), AllowPartial: true},
		{Start: at(10, 0), End: at(11, 0), AllowPartial: true},
	}
	assert.NotNil(t, CheckSpansWithinRequested(windows, []entities.TimeSpan{span(9, 30, 10, 30, false)}))
}

func TestCheckMinSpanMinutes(t *testing.T) {
	thirty := []entities.TimeSpan{span(9, 0, 9, 30, false)}
	assert.Nil(t, CheckMinSpanMinutes(30, thirty))

	err := CheckMinSpanMinutes(31, thirty)
	require.NotNil(t, err)
	assert.Equal(t, "Not all time slots have the required length of at least 31 minutes.", err.Message)

	err = CheckMinSpanMinutes(45.5, thirty)
	require.NotNil(t, err)
	assert.Contains(t, err.Message, "45.5 minutes")
}

func TestCheckSlotsRequested(t *testing.T) {
	windows := []entities.RequestTimespan{
		{ID: 1, AllowPartial: true},
		{ID: 2},
	}
	assert.Nil(t, CheckSlotsRequested(windows, []entities.TimeSlot{{RSpanID: 2}}))
	assert.NotNil(t, CheckSlotsRequested(windows, []entities.TimeSlot{{RSpanID: 1}}))
	assert.NotNil(t, CheckSlotsRequested(windows, []entities.TimeSlot{{RSpanID: 99}}))
}

func TestValidate_Order(t *testing.T) {
	windows := []entities.RequestTimespan{
		{ID: 1, Start: at(9, 0), End: at(17, 0), AllowPartial: true},
		{ID: 2, Start: at(18, 0), End: at(19, 0)},
	}
	req := entities.AvailabilityRequest{MinSpanMinutes: entities.Some(120.0)}

	tests := []struct {
		name  string
		in    Input
		check string
	}{
		{
			name: "reversed span beats overlap",
			in: Input{Spans: []entities.TimeSpan{
				span(10, 0, 9, 0, false), span(8, 0, 12, 0, false),
			}},
			check: "start_before_end",
		},
		{
			name: "overlap beats unanswered slot",
			in: Input{
				Spans: []entities.TimeSpan{span(9, 0, 11, 0, false), span(10, 0, 12, 0, false)},
				Slots: []entities.TimeSlot{{RSpanID: 2, Start: at(18, 0), End: at(19, 0)}},
			},
			check: "nonoverlapping",
		},
		{
			name: "unanswered slot beats containment",
			in: Input{
				Spans: []entities.TimeSpan{span(7, 0, 8, 0, false)},
				Slots: []entities.TimeSlot{{RSpanID: 2, Start: at(18, 0), End: at(19, 0)}},
			},
			check: "slots_responded",
		},
		{
			name:  "containment beats minimum duration",
			in:    Input{Spans: []entities.TimeSpan{span(7, 0, 7, 30, false)}},
			check: "spans_within_requested",
		},
		{
			name:  "minimum duration",
			in:    Input{Spans: []entities.TimeSpan{span(9, 0, 10, 0, false)}},
			check: "min_span_minutes",
		},
		{
			name: "slot reference",
			in: Input{Slots: []entities.TimeSlot{
				{RSpanID: 1, Start: at(9, 0), End: at(10, 0), Available: entities.Some(true)},
			}},
			check: "slots_requested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.in.Request = req
			tt.in.Windows = windows
			err := Validate(tt.in)
			require.NotNil(t, err)
			assert.Equal(t, tt.check, err.Check)
		})
	}
}

func TestValidate_MinimumDurationUnset(t *testing.T) {
	in := Input{
		Windows: []entities.RequestTimespan{{ID: 1, Start: at(9, 0), End: at(17, 0), AllowPartial: true}},
		Spans:   []entities.TimeSpan{span(9, 0, 9, 5, false)},
	}
	assert.Nil(t, Validate(in))
}
