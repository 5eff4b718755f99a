package service

import (
	"context"
	"log"
	"time"

	"availability/internal/availability"
	"availability/internal/db"
	"availability/internal/entities"
	"availability/internal/events"
	"availability/internal/mapper"
	"availability/internal/repository"
	"github.com/google/uuid"
)

const (
	msgPreviouslySubmitted = "Your availability has previously been submitted. " +
		"If you submit this page, your previous response will be replaced."
	msgBeingReplaced = "Your availability had previously been submitted. " +
		"The previous response is being replaced."
	msgThankYou = "Thank you for submitting your availability. " +
		"If you need to edit your availability, you may do so by revisiting the same link."
)

// Notifier tells the organizer about a new submission.
type Notifier interface {
	NotifySubmission(ctx context.Context, n SubmissionNotice) error
}

// SubmissionNotice is the summary handed to a Notifier.
type SubmissionNotice struct {
	Request     entities.AvailabilityRequest
	Response    string
	SpanSeconds float64
	SlotCount   int
}

// AuditLogger records accepted submissions.
type AuditLogger interface {
	Insert(ctx context.Context, l *db.SubmissionLog) error
}

// EventPublisher announces accepted submissions.
type EventPublisher interface {
	PublishSubmitted(ctx context.Context, ev events.AvailabilitySubmitted) error
}

type AvailabilityService struct {
	Repo      *repository.AvailabilityRepository
	Timezones []string

	// Optional collaborators; nil disables each one.
	Notifier Notifier
	Audit    AuditLogger
	Events   EventPublisher

	Now func() time.Time
}

func NewAvailabilityService(repo *repository.AvailabilityRepository, timezones []string) *AvailabilityService {
	return &AvailabilityService{Repo: repo, Timezones: timezones, Now: time.Now}
}

type requestContext struct {
	req     entities.AvailabilityRequest
	windows []entities.RequestTimespan
}

func (s *AvailabilityService) load(ctx context.Context, key string) (requestContext, error) {
	req, err := s.Repo.GetRequestByKey(ctx, key)
	if err != nil {
		return requestContext{}, err
	}
	windows, err := s.Repo.GetRequestTimespans(ctx, req.RequestGroup)
	if err != nil {
		return requestContext{}, err
	}
	return requestContext{req: req, windows: windows}, nil
}

// Load builds the form for key, prefilled with the invitee's stored answers.
func (s *AvailabilityService) Load(ctx context.Context, key string) (*Page, error) {
	rc, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	existing, err := s.Repo.GetAvailability(ctx, rc.req)
	if err != nil {
		return nil, err
	}

	var spans []entities.TimeSpan
	var slots []entities.TimeSlot
	for _, rec := range existing {
		if rec.IsSlot() {
			slots = append(slots, rec.AsSlot())
		} else {
			spans = append(spans, rec.AsSpan())
		}
	}

	page := &Page{Request: rc.req, Response: rc.req.Response}
	if rc.req.Responded.Valid {
		page.Messages = append(page.Messages, Message{CategoryInfo, msgPreviouslySubmitted})
	}
	page.View = BuildCalendarView(rc.req, rc.windows, availability.SortSpans(spans), slots, s.Timezones)
	return page, nil
}

// Submit validates and stores a posted calendar state. A rejected submission
// is not an error: the returned page has Invalid set and shows the input as
// posted. Errors are reserved for lookup and data-contract failures.
func (s *AvailabilityService) Submit(ctx context.Context, key, calendarState, response string) (*Page, error) {
	rc, err := s.load(ctx, key)
	if err != nil {
		return nil, err
	}
	req := rc.req

	page := &Page{Request: req, Response: response}
	if req.Responded.Valid {
		page.Messages = append(page.Messages, Message{CategoryInfo, msgBeingReplaced})
	}

	sub, err := mapper.DecodeSubmission(calendarState, response)
	if err != nil {
		return nil, err
	}

	norm := availability.Normalize(req, rc.windows, sub)
	if norm.Err != nil {
		log.Printf("availability: request %d rejected (%s): %s", req.ID, norm.Err.Check, norm.Err.Message)
		page.Invalid = true
		page.Messages = append(page.Messages, Message{CategoryError, "Error: " + norm.Err.Message})
		page.View = BuildCalendarView(req, rc.windows, norm.Raw, norm.Slots, s.Timezones)
		return page, nil
	}

	now := s.Now()
	if err := s.Repo.MarkResponded(ctx, req, now, response); err != nil {
		return nil, err
	}
	if err := s.Repo.ReplaceAvailability(ctx, req, norm.Spans, norm.Slots); err != nil {
		return nil, err
	}
	log.Printf("availability: request %d stored %d span(s), %d slot(s)", req.ID, len(norm.Spans), len(norm.Slots))

	s.afterSubmit(ctx, req, response, norm, now)

	req.Responded = entities.Some(now)
	req.Response = response
	page.Request = req
	page.Messages = append(page.Messages, Message{CategoryMessage, msgThankYou})
	page.View = BuildCalendarView(req, rc.windows, norm.Spans, norm.Slots, s.Timezones)
	return page, nil
}

// afterSubmit runs the best-effort side effects of an accepted submission.
func (s *AvailabilityService) afterSubmit(ctx context.Context, req entities.AvailabilityRequest, response string, norm availability.Normalized, now time.Time) {
	spanSeconds := availability.SpanSeconds(norm.Spans)
	slotCount := availability.AvailableSlotCount(norm.Slots)

	if s.Notifier != nil {
		err := s.Notifier.NotifySubmission(ctx, SubmissionNotice{
			Request:     req,
			Response:    response,
			SpanSeconds: spanSeconds,
			SlotCount:   slotCount,
		})
		if err != nil {
			log.Printf("notify: request %d: %v", req.ID, err)
		}
	}

	if s.Audit != nil {
		err := s.Audit.Insert(ctx, &db.SubmissionLog{
			ID:           uuid.NewString(),
			RequestID:    req.ID,
			RequestGroup: req.RequestGroup.String(),
			Person:       req.Person.String(),
			SpanSeconds:  spanSeconds,
			SlotCount:    slotCount,
			SubmittedAt:  now.UTC(),
		})
		if err != nil {
			log.Printf("audit: request %d: %v", req.ID, err)
		}
	}

	if s.Events != nil {
		err := s.Events.PublishSubmitted(ctx, events.AvailabilitySubmitted{
			RequestID:    req.ID,
			RequestGroup: req.RequestGroup.String(),
			Person:       req.Person.String(),
			Name:         req.Name,
			SpanCount:    len(norm.Spans),
			SpanSeconds:  spanSeconds,
			SlotCount:    slotCount,
			SubmittedAt:  now.UTC().Format(time.RFC3339),
		})
		if err != nil {
			log.Printf("events: request %d: %v", req.ID, err)
		}
	}
}
