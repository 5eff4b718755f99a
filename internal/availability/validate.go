package availability

import (
	"fmt"
	"strconv"

	"availability/internal/entities"
)

// ValidationError is a problem the invitee can fix in the form.
type ValidationError struct {
	Check   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func invalid(check, msg string) *ValidationError {
	return &ValidationError{Check: check, Message: msg}
}

// CheckStartBeforeEnd rejects any interval whose start is not strictly before
// its end.
func CheckStartBeforeEnd[T entities.Interval](ss []T) *ValidationError {
	for _, s := range ss {
		start, end := s.Bounds()
		if !start.Before(end) {
			return invalid("start_before_end", "start must come before end")
		}
	}
	return nil
}

// CheckNonoverlapping rejects spans that overlap their predecessor. Spans must
// be sorted by start; touching boundaries are fine.
func CheckNonoverlapping(spans []entities.TimeSpan) *ValidationError {
	for i := 1; i < len(spans); i++ {
		if spans[i-1].End.After(spans[i].Start) {
			return invalid("nonoverlapping", "Some time spans overlap.")
		}
	}
	return nil
}

// CheckSlotsResponded rejects slots left unanswered.
func CheckSlotsResponded(slots []entities.TimeSlot) *ValidationError {
	for _, s := range slots {
		if !s.Available.Valid {
			return invalid("slots_responded", "Not all time slots have availability responses.")
		}
	}
	return nil
}

// CheckSpansWithinRequested rejects spans not fully contained in a single
// requested window.
func CheckSpansWithinRequested(windows []entities.RequestTimespan, spans []entities.TimeSpan) *ValidationError {
	for _, s := range spans {
		contained := false
		for _, w := range windows {
			if w.Contains(s.Start, s.End) {
				contained = true
				break
			}
		}
		if !contained {
			return invalid("spans_within_requested", "Not all time spans fall within the requested times.")
		}
	}
	return nil
}

// CheckMinSpanMinutes rejects spans shorter than minMinutes. The bound is
// inclusive.
func CheckMinSpanMinutes(minMinutes float64, spans []entities.TimeSpan) *ValidationError {
	for _, s := range spans {
		if s.Duration().Minutes() < minMinutes {
			return invalid("min_span_minutes", fmt.Sprintf(
				"Not all time slots have the required length of at least %s minutes.",
				strconv.FormatFloat(minMinutes, 'f', -1, 64)))
		}
	}
	return nil
}

// CheckSlotsRequested rejects slots that do not point at a fixed window of
// the request group.
func CheckSlotsRequested(windows []entities.RequestTimespan, slots []entities.TimeSlot) *ValidationError {
	fixed := make(map[int64]struct{}, len(windows))
	for _, w := range windows {
		if !w.AllowPartial {
			fixed[w.ID] = struct{}{}
		}
	}
	for _, s := range slots {
		if _, ok := fixed[s.RSpanID]; !ok {
			return invalid("slots_requested", "Some time slots do not correspond to requested times.")
		}
	}
	return nil
}

// Input is everything the pipeline looks at.
type Input struct {
	Request entities.AvailabilityRequest
	Windows []entities.RequestTimespan
	Spans   []entities.TimeSpan // merged, sorted by start
	Slots   []entities.TimeSlot
}

type check struct {
	name string
	run  func(Input) *ValidationError
}

// pipeline runs in order and stops at the first failure.
var pipeline = []check{
	{"span order", func(in Input) *ValidationError { return CheckStartBeforeEnd(in.Spans) }},
	{"slot order", func(in Input) *ValidationError { return CheckStartBeforeEnd(in.Slots) }},
	{"overlap", func(in Input) *ValidationError { return CheckNonoverlapping(in.Spans) }},
	{"completeness", func(in Input) *ValidationError { return CheckSlotsResponded(in.Slots) }},
	{"containment", func(in Input) *ValidationError {
		return CheckSpansWithinRequested(in.Windows, in.Spans)
	}},
	{"minimum duration", func(in Input) *ValidationError {
		minutes, ok := in.Request.MinSpanMinutes.Get()
		if !ok {
			return nil
		}
		return CheckMinSpanMinutes(minutes, in.Spans)
	}},
	{"slot reference", func(in Input) *ValidationError {
		return CheckSlotsRequested(in.Windows, in.Slots)
	}},
}

// Validate returns nil when the submission is acceptable, otherwise the first
// failure.
func Validate(in Input) *ValidationError {
	for _, c := range pipeline {
		if err := c.run(in); err != nil {
			return err
		}
	}
	return nil
}

// Normalized is the outcome of Normalize. Raw keeps the sorted, unmerged spans
// for redisplay when Err is set.
type Normalized struct {
	Raw   []entities.TimeSpan
	Spans []entities.TimeSpan
	Slots []entities.TimeSlot
	Err   *ValidationError
}

// Normalize sorts and merges the submitted spans and runs the validator.
func Normalize(req entities.AvailabilityRequest, windows []entities.RequestTimespan, sub entities.Submission) Normalized {
	raw := SortSpans(sub.Spans)
	merged := MergeAdjacentSpans(raw)
	return Normalized{
		Raw:   raw,
		Spans: merged,
		Slots: sub.Slots,
		Err: Validate(Input{
			Request: req,
			Windows: windows,
			Spans:   merged,
			Slots:   sub.Slots,
		}),
	}
}
