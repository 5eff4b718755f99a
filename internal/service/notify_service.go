package service

import (
	"fmt"
	"log"
	"strings"

	"availability/internal/config"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer delivers a plain-text email.
type Mailer interface {
	SendEmail(to, subject, body string) error
}

// Texter delivers a text message.
type Texter interface {
	SendSMS(to, body string) error
}

// NotifyService delivers email via SendGrid when a key is configured and via
// SMTP otherwise, and text messages via Twilio.
type NotifyService struct {
	cfg config.Notify
}

func NewNotifyService(cfg config.Notify) *NotifyService {
	return &NotifyService{cfg: cfg}
}

func (s *NotifyService) SendEmail(to, subject, body string) error {
	if s.cfg.SendGridAPIKey != "" {
		return s.sendWithSendGrid(to, subject, body)
	}
	return SendEmailSMTP(s.cfg, to, subject, body)
}

func (s *NotifyService) SendSMS(to, body string) error {
	if !strings.HasPrefix(to, "+") {
		log.Printf("notify: destination %q is not in E.164 format; the SMS may fail", to)
	}
	return SendSMS(s.cfg, to, body)
}

func (s *NotifyService) sendWithSendGrid(to, subject, body string) error {
	from := mail.NewEmail(s.cfg.SendGridFromName, s.cfg.From)
	message := mail.NewSingleEmail(from, subject, mail.NewEmail("", to), body, "")

	client := sendgrid.NewSendClient(s.cfg.SendGridAPIKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("sendgrid: send to %s: %w", to, err)
	}
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", response.StatusCode, response.Body)
	}
	log.Printf("notify: email sent to %s (subject: %s), status %d", to, subject, response.StatusCode)
	return nil
}
