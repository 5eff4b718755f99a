package service

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"availability/internal/config"
	"availability/internal/entities"
	"availability/internal/templates"
)

const subjectPrefix = "[grist-av]"

// SenderService composes organizer notifications and hands them to a Mailer
// and, optionally, a Texter.
type SenderService struct {
	cfg    config.Notify
	mailer Mailer
	texter Texter
}

// NewSenderService wires the notification channels. texter may be nil.
func NewSenderService(cfg config.Notify, mailer Mailer, texter Texter) *SenderService {
	return &SenderService{cfg: cfg, mailer: mailer, texter: texter}
}

func submissionSummary(req entities.AvailabilityRequest) string {
	return fmt.Sprintf("%s has responded for request group %s", req.Name, req.RequestGroup)
}

// NotifySubmission emails the organizer a summary of a stored submission and
// sends a short text when SMS is configured.
func (s *SenderService) NotifySubmission(_ context.Context, n SubmissionNotice) error {
	summary := submissionSummary(n.Request)
	hostname, _ := os.Hostname()

	var body bytes.Buffer
	err := templates.Emails.ExecuteTemplate(&body, "notification_email.txt", entities.NotificationEmailData{
		Summary:      summary,
		SpanDuration: n.SpanSeconds,
		SlotCount:    n.SlotCount,
		TextResponse: n.Response,
		Hostname:     hostname,
	})
	if err != nil {
		return fmt.Errorf("rendering notification email: %w", err)
	}

	if err := s.mailer.SendEmail(s.cfg.To, subjectPrefix+" "+summary, body.String()); err != nil {
		return err
	}

	if s.texter != nil && s.cfg.SMSTo != "" {
		if err := s.texter.SendSMS(s.cfg.SMSTo, summary+"."); err != nil {
			return err
		}
	}
	return nil
}

// SendPendingDigest emails the list of requests still awaiting a response.
// Nothing is sent when the list is empty.
func (s *SenderService) SendPendingDigest(pending []entities.AvailabilityRequest) error {
	if len(pending) == 0 {
		return nil
	}
	var body bytes.Buffer
	err := templates.Emails.ExecuteTemplate(&body, "pending_digest.txt", entities.PendingDigestData{Pending: pending})
	if err != nil {
		return fmt.Errorf("rendering pending digest: %w", err)
	}
	subject := fmt.Sprintf("%s %d pending availability request(s)", subjectPrefix, len(pending))
	return s.mailer.SendEmail(s.cfg.To, subject, body.String())
}
