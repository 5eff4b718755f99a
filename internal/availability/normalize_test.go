package availability

import (
	"testing"
	"time"

	"availability/internal/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var day = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return day.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func span(h1, m1, h2, m2 int, maybe bool) entities.TimeSpan {
	return entities.TimeSpan{Start: at(h1, m1), End: at(h2, m2), Maybe: maybe}
}

func TestMergeAdjacentSpans_Touching(t *testing.T) {
	got := MergeAdjacentSpans([]entities.TimeSpan{
		span(9, 0, 10, 0, false),
		span(10, 0, 12, 0, false),
	})
	assert.Equal(t, []entities.TimeSpan{span(9, 0, 12, 0, false)}, got)
}

func TestMergeAdjacentSpans_Chain(t *testing.T) {
	got := MergeAdjacentSpans([]entities.TimeSpan{
		span(9, 0, 10, 0, true),
		span(10, 0, 11, 0, true),
		span(11, 0, 11, 30, true),
	})
	assert.Equal(t, []entities.TimeSpan{span(9, 0, 11, 30, true)}, got)
}

func TestMergeAdjacentSpans_DifferentMaybe(t *testing.T) {
	in := []entities.TimeSpan{
		span(9, 0, 10, 0, false),
		span(10, 0, 12, 0, true),
	}
	assert.Equal(t, in, MergeAdjacentSpans(in))
}

func TestMergeAdjacentSpans_Gap(t *testing.T) {
	in := []entities.TimeSpan{
		span(9, 0, 10, 0, false),
		span(10, 1, 12, 0, false),
	}
	assert.Equal(t, in, MergeAdjacentSpans(in))
}

func TestMergeAdjacentSpans_Empty(t *testing.T) {
	got := MergeAdjacentSpans(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestMergeAdjacentSpans_Idempotent(t *testing.T) {
	in := []entities.TimeSpan{
		span(8, 0, 9, 0, false),
		span(9, 0, 10, 0, false),
		span(10, 0, 11, 0, true),
		span(13, 0, 14, 0, true),
		span(14, 0, 15, 0, true),
	}
	once := MergeAdjacentSpans(in)
	assert.Equal(t, once, MergeAdjacentSpans(once))
	assert.Len(t, once, 3)
}

func TestSortSpans_DoesNotModifyInput(t *testing.T) {
	in := []entities.TimeSpan{span(11, 0, 12, 0, false), span(9, 0, 10, 0, false)}
	got := SortSpans(in)
	assert.Equal(t, []entities.TimeSpan{span(9, 0, 10, 0, false), span(11, 0, 12, 0, false)}, got)
	assert.Equal(t, at(11, 0), in[0].Start)
}

func TestNormalize_SortsThenMerges(t *testing.T) {
	windows := []entities.RequestTimespan{{ID: 1, Start: at(9, 0), End: at(17, 0), AllowPartial: true}}
	sub := entities.Submission{Spans: []entities.TimeSpan{
		span(10, 0, 12, 0, false),
		span(9, 0, 10, 0, false),
	}}

	n := Normalize(entities.AvailabilityRequest{}, windows, sub)
	require.Nil(t, n.Err)
	assert.Equal(t, []entities.TimeSpan{span(9, 0, 10, 0, false), span(10, 0, 12, 0, false)}, n.Raw)
	assert.Equal(t, []entities.TimeSpan{span(9, 0, 12, 0, false)}, n.Spans)
}

func TestNormalize_KeepsRawOnFailure(t *testing.T) {
	windows := []entities.RequestTimespan{{ID: 1, Start: at(9, 30), End: at(17, 0), AllowPartial: true}}
	sub := entities.Submission{Spans: []entities.TimeSpan{
		span(10, 0, 11, 0, false),
		span(9, 0, 10, 0, false),
	}}

	n := Normalize(entities.AvailabilityRequest{}, windows, sub)
	require.NotNil(t, n.Err)
	assert.Equal(t, "Not all time spans fall within the requested times.", n.Err.Message)
	assert.Len(t, n.Raw, 2)
	assert.Equal(t, at(9, 0), n.Raw[0].Start)
}

func TestSpanSecondsAndSlotCount(t *testing.T) {
	spans := []entities.TimeSpan{span(9, 0, 12, 0, false), span(13, 0, 13, 30, true)}
	assert.Equal(t, 3.5*3600, SpanSeconds(spans))

	slots := []entities.TimeSlot{
		{RSpanID: 1, Available: entities.Some(true)},
		{RSpanID: 2, Available: entities.Some(false)},
		{RSpanID: 3},
	}
	assert.Equal(t, 1, AvailableSlotCount(slots))
}
