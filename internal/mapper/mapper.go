package mapper

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"availability/internal/entities"
	apperrors "availability/internal/errors"
	"availability/internal/records"
)

// DecodeRequest maps an Availability_requests row.
func DecodeRequest(r records.Record) (entities.AvailabilityRequest, error) {
	return decode("availability request", storeFields(r), requestTable)
}

// DecodeTimespan maps a Request_timespans row.
func DecodeTimespan(r records.Record) (entities.RequestTimespan, error) {
	return decode("request timespan", storeFields(r), timespanTable)
}

// DecodeRecord maps an Availability row.
func DecodeRecord(r records.Record) (entities.AvailabilityRecord, error) {
	return decode("availability record", storeFields(r), recordTable)
}

// DecodeSpan maps one span object posted by the calendar.
func DecodeSpan(kv map[string]any) (entities.TimeSpan, error) {
	return decode("time span", kv, spanTable)
}

// DecodeSlot maps one slot object posted by the calendar.
func DecodeSlot(kv map[string]any) (entities.TimeSlot, error) {
	return decode("time slot", kv, slotTable)
}

// DecodeSubmission parses the calendarState JSON document
// {"spans": [...], "slots": [...]} posted by the form.
func DecodeSubmission(calendarState, response string) (entities.Submission, error) {
	var doc struct {
		Spans []map[string]any `json:"spans"`
		Slots []map[string]any `json:"slots"`
	}
	dec := json.NewDecoder(bytes.NewReader([]byte(calendarState)))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return entities.Submission{}, &apperrors.ContractError{
			Entity: "calendar state", Err: fmt.Errorf("invalid JSON: %w", err), Input: true}
	}

	sub := entities.Submission{
		Spans:    make([]entities.TimeSpan, 0, len(doc.Spans)),
		Slots:    make([]entities.TimeSlot, 0, len(doc.Slots)),
		Response: response,
	}
	for _, kv := range doc.Spans {
		s, err := DecodeSpan(kv)
		if err != nil {
			return entities.Submission{}, markInput(err)
		}
		sub.Spans = append(sub.Spans, s)
	}
	for _, kv := range doc.Slots {
		s, err := DecodeSlot(kv)
		if err != nil {
			return entities.Submission{}, markInput(err)
		}
		sub.Slots = append(sub.Slots, s)
	}
	return sub, nil
}

func markInput(err error) error {
	var ce *apperrors.ContractError
	if errors.As(err, &ce) {
		ce.Input = true
	}
	return err
}

// EncodeSpan builds the Availability row for a free-form span. Spans are
// always "available"; Maybe is only written when the request allows it.
func EncodeSpan(req entities.AvailabilityRequest, s entities.TimeSpan) records.Fields {
	f := records.Fields{
		"Request_group":    req.RequestGroup.Value(),
		"Person":           req.Person.Value(),
		"Request_timespan": nil,
		"Start":            epochSeconds(s.Start),
		"End":              epochSeconds(s.End),
		"Available":        true,
	}
	if req.MaybeAllowed() {
		f["Maybe"] = s.Maybe
	}
	return f
}

// EncodeSlot builds the Availability row for a fixed slot answer.
func EncodeSlot(req entities.AvailabilityRequest, s entities.TimeSlot) records.Fields {
	return records.Fields{
		"Request_group":    req.RequestGroup.Value(),
		"Person":           req.Person.Value(),
		"Request_timespan": s.RSpanID,
		"Start":            epochSeconds(s.Start),
		"End":              epochSeconds(s.End),
		"Available":        nullValue(s.Available),
	}
}

// EncodeAvailability builds the rows replacing a person's availability:
// spans first, then slots.
func EncodeAvailability(req entities.AvailabilityRequest, spans []entities.TimeSpan, slots []entities.TimeSlot) []records.Fields {
	rows := make([]records.Fields, 0, len(spans)+len(slots))
	for _, s := range spans {
		rows = append(rows, EncodeSpan(req, s))
	}
	for _, s := range slots {
		rows = append(rows, EncodeSlot(req, s))
	}
	return rows
}

// EncodeResponded is the patch marking a request as answered.
func EncodeResponded(now time.Time, response string) records.Fields {
	return records.Fields{
		"Responded": epochSeconds(now),
		"Response":  response,
	}
}

func nullValue[V any](n entities.Null[V]) any {
	if v, ok := n.Get(); ok {
		return v
	}
	return nil
}
