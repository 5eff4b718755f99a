package availability

import "availability/internal/entities"

// SpanSeconds is the total duration of spans, in seconds.
func SpanSeconds(spans []entities.TimeSpan) float64 {
	var total float64
	for _, s := range spans {
		total += s.Duration().Seconds()
	}
	return total
}

// AvailableSlotCount counts slots answered with "available".
func AvailableSlotCount(slots []entities.TimeSlot) int {
	n := 0
	for _, s := range slots {
		if v, ok := s.Available.Get(); ok && v {
			n++
		}
	}
	return n
}
