package service

import "availability/internal/entities"

// Message categories.
const (
	CategoryMessage = "message"
	CategoryInfo    = "info"
	CategoryWarning = "warning"
	CategoryError   = "error"
)

var categoryClass = map[string]string{
	CategoryError:   "danger",
	CategoryMessage: "primary",
	CategoryWarning: "warning",
}

// Message is a one-off notice shown above the page content.
type Message struct {
	Category string
	Text     string
}

// Class is the Bootstrap alert class for the message's category.
func (m Message) Class() string {
	if c, ok := categoryClass[m.Category]; ok {
		return c
	}
	return "primary"
}

// Page is the data behind the availability form.
type Page struct {
	Request  entities.AvailabilityRequest
	View     CalendarView
	Messages []Message
	Response string
	// Invalid is set when the submission was rejected by validation.
	Invalid bool
}
