package entities

// NotificationEmailData feeds the notification email template.
type NotificationEmailData struct {
	Summary      string
	SpanDuration float64 // seconds
	SlotCount    int
	TextResponse string
	Hostname     string
}

// PendingDigestData feeds the pending-responses digest template.
type PendingDigestData struct {
	Pending []AvailabilityRequest
}
