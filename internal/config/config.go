// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Records holds the records service connection.
type Records struct {
	RootURL string        `validate:"required,url"`
	APIKey  string        `validate:"required"`
	DocID   string        `validate:"required"`
	Timeout time.Duration `validate:"gte=0"`
}

// Notify holds the notification channels. Email is sent only when both From
// and To are set; SendGrid is used when its key is set, SMTP otherwise.
type Notify struct {
	From string `validate:"omitempty,email"`
	To   string `validate:"omitempty,email"`

	SendGridAPIKey   string
	SendGridFromName string

	SMTPHost string
	SMTPPort string `validate:"omitempty,numeric"`
	SMTPUser string
	SMTPPass string

	TwilioAccountSID string
	TwilioAuthToken  string
	TwilioFromNumber string `validate:"omitempty,e164"`
	SMSTo            string `validate:"omitempty,e164"`
}

// EmailEnabled reports whether submission emails should be sent.
func (n Notify) EmailEnabled() bool { return n.From != "" && n.To != "" }

// SMSEnabled reports whether a Twilio account and recipient are configured.
func (n Notify) SMSEnabled() bool {
	return n.TwilioAccountSID != "" && n.TwilioAuthToken != "" && n.TwilioFromNumber != "" && n.SMSTo != ""
}

// Admin holds the credentials for the admin API.
type Admin struct {
	JWTSecret    string
	PasswordHash string `validate:"required_with=JWTSecret"`
}

func (a Admin) Enabled() bool { return a.JWTSecret != "" && a.PasswordHash != "" }

type Config struct {
	Port         string `validate:"required,numeric"`
	Records      Records
	CalTimezones []string `validate:"min=1,dive,required"`
	Notify       Notify
	Admin        Admin

	DatabaseURL  string
	RabbitMQURL  string `validate:"omitempty,url"`
	ReminderCron string
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	apiKey, err := apiKey()
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Port: getenv("PORT", "8080"),
		Records: Records{
			RootURL: os.Getenv("GRIST_ROOT_URL"),
			APIKey:  apiKey,
			DocID:   os.Getenv("GRIST_DOC_ID"),
			Timeout: parseDur(getenv("GRIST_TIMEOUT", "30s")),
		},
		CalTimezones: splitList(getenv("CAL_TIMEZONES", "local,UTC")),
		Notify: Notify{
			From:             os.Getenv("NOTIFY_FROM"),
			To:               os.Getenv("NOTIFY_TO"),
			SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
			SendGridFromName: getenv("SENDGRID_FROM_NAME", "Availability"),
			SMTPHost:         getenv("SMTP_HOST", "localhost"),
			SMTPPort:         getenv("SMTP_PORT", "25"),
			SMTPUser:         os.Getenv("SMTP_USER"),
			SMTPPass:         os.Getenv("SMTP_PASS"),
			TwilioAccountSID: os.Getenv("TWILIO_ACCOUNT_SID"),
			TwilioAuthToken:  os.Getenv("TWILIO_AUTH_TOKEN"),
			TwilioFromNumber: os.Getenv("TWILIO_FROM_NUMBER"),
			SMSTo:            os.Getenv("NOTIFY_SMS_TO"),
		},
		Admin: Admin{
			JWTSecret:    os.Getenv("ADMIN_JWT_SECRET"),
			PasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		},
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RabbitMQURL:  os.Getenv("RABBITMQ_URL"),
		ReminderCron: os.Getenv("REMINDER_CRON"),
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks the struct tags of cfg.
func Validate(cfg Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// apiKey reads the records service key from GRIST_API_KEY_FILE, falling back
// to GRIST_API_KEY.
func apiKey() (string, error) {
	if path := os.Getenv("GRIST_API_KEY_FILE"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("reading GRIST_API_KEY_FILE: %w", err)
		}
		return strings.TrimSpace(string(b)), nil
	}
	return os.Getenv("GRIST_API_KEY"), nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	// bare numbers are seconds
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second
	}
	return 30 * time.Second
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
