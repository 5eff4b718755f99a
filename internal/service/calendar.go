package service

import (
	"availability/internal/entities"
)

const msPerDay = 1000 * 3600 * 24

// EventProps are the calendar widget's extendedProps.
type EventProps struct {
	Type      string               `json:"type"`
	Available *entities.Null[bool] `json:"available,omitempty"`
	RSpanID   int64                `json:"rspan_id,omitempty"`
	Maybe     *bool                `json:"maybe,omitempty"`
}

// CalendarEvent is one event handed to the calendar widget. Times are epoch
// milliseconds.
type CalendarEvent struct {
	ID            *int64      `json:"id,omitempty"`
	Start         int64       `json:"start"`
	End           int64       `json:"end"`
	Display       string      `json:"display,omitempty"`
	Editable      bool        `json:"editable,omitempty"`
	ExtendedProps *EventProps `json:"extendedProps,omitempty"`
}

// CalendarView is everything the page needs to draw the calendar.
type CalendarView struct {
	Events       []CalendarEvent
	InitialDate  *int64
	NumberOfDays int64
	HasSlots     bool
	HasSpans     bool
	AllowMaybe   bool
	Timezones    []string
}

// BuildCalendarView lays out the request's windows, the prior slot answers and
// the given spans. Spans are only shown when some window accepts them.
func BuildCalendarView(req entities.AvailabilityRequest, windows []entities.RequestTimespan,
	spans []entities.TimeSpan, slots []entities.TimeSlot, timezones []string) CalendarView {
	view := CalendarView{
		Events:       make([]CalendarEvent, 0, len(windows)+len(spans)),
		NumberOfDays: 1,
		AllowMaybe:   req.MaybeAllowed(),
		Timezones:    timezones,
	}

	bySlot := make(map[int64]entities.TimeSlot, len(slots))
	for _, s := range slots {
		bySlot[s.RSpanID] = s
	}

	var first, last int64
	for i, w := range windows {
		start, end := w.Start.UnixMilli(), w.End.UnixMilli()
		if i == 0 || start < first {
			first = start
		}
		if i == 0 || end > last {
			last = end
		}

		if w.AllowPartial {
			id := w.ID
			view.Events = append(view.Events, CalendarEvent{
				ID:      &id,
				Start:   start,
				End:     end,
				Display: "background",
			})
			view.HasSpans = true
			continue
		}

		var available entities.Null[bool]
		if prior, ok := bySlot[w.ID]; ok {
			available = prior.Available
		}
		view.Events = append(view.Events, CalendarEvent{
			Start: start,
			End:   end,
			ExtendedProps: &EventProps{
				Type:      "slot",
				Available: &available,
				RSpanID:   w.ID,
			},
		})
		view.HasSlots = true
	}

	if view.HasSpans {
		for _, s := range spans {
			maybe := s.Maybe
			view.Events = append(view.Events, CalendarEvent{
				Start:    s.Start.UnixMilli(),
				End:      s.End.UnixMilli(),
				Editable: true,
				ExtendedProps: &EventProps{
					Type:  "span",
					Maybe: &maybe,
				},
			})
		}
	}

	if len(windows) > 0 {
		view.InitialDate = &first
		view.NumberOfDays = divCeil(last-first, msPerDay)
	}
	return view
}

func divCeil(n, d int64) int64 {
	q := n / d
	if n%d > 0 {
		q++
	}
	return q
}
