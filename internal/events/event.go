// Package events defines and publishes domain events over the message broker.
package events

// SubmittedQueue is the durable queue availability.submitted events go to.
const SubmittedQueue = "availability.submitted"

// AvailabilitySubmitted is published after a submission has been stored.
type AvailabilitySubmitted struct {
	RequestID    int64   `json:"request_id"`
	RequestGroup string  `json:"request_group"`
	Person       string  `json:"person"`
	Name         string  `json:"name"`
	SpanCount    int     `json:"span_count"`
	SpanSeconds  float64 `json:"span_seconds"`
	SlotCount    int     `json:"slot_count"`
	SubmittedAt  string  `json:"submitted_at"`
}
