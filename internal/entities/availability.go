package entities

import "time"

// Interval is anything with a start and an end instant.
type Interval interface {
	Bounds() (start, end time.Time)
}

// TimeSpan is a free-form interval drawn by the invitee inside one or more
// allow_partial windows.
type TimeSpan struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Maybe bool      `json:"maybe"`
}

func (s TimeSpan) Bounds() (time.Time, time.Time) { return s.Start, s.End }

// Duration is End minus Start.
func (s TimeSpan) Duration() time.Duration { return s.End.Sub(s.Start) }

// TimeSlot is the invitee's answer for one whole non-partial RequestTimespan.
type TimeSlot struct {
	RSpanID   int64      `json:"rspan_id"`
	Start     time.Time  `json:"start"`
	End       time.Time  `json:"end"`
	Available Null[bool] `json:"available"`
}

func (s TimeSlot) Bounds() (time.Time, time.Time) { return s.Start, s.End }

// SpanPropsEqual compares only the non-temporal properties of two spans.
// Boundaries are not compared; adjacency is decided by the caller.
func SpanPropsEqual(a, b TimeSpan) bool {
	return a.Maybe == b.Maybe
}

// Submission is what the calendar form posts back.
type Submission struct {
	Spans    []TimeSpan
	Slots    []TimeSlot
	Response string
}
