package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	"availability/internal/api"
	"availability/internal/config"
	"availability/internal/events"
	"availability/internal/records"
	"availability/internal/repository"
	"availability/internal/service"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/robfig/cron/v3"
)

func main() {
	godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	store := records.NewClient(records.Config{
		RootURL: cfg.Records.RootURL,
		APIKey:  cfg.Records.APIKey,
		DocID:   cfg.Records.DocID,
		Timeout: cfg.Records.Timeout,
	})
	repo := repository.NewAvailabilityRepository(store)
	svc := service.NewAvailabilityService(repo, cfg.CalTimezones)

	var history service.SubmissionHistory
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("postgres", cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to open DB: %v", err)
		}
		if err := db.Ping(); err != nil {
			log.Fatalf("Failed to connect to DB: %v", err)
		}
		audit := repository.NewAuditRepository(db)
		if err := audit.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to prepare DB: %v", err)
		}
		svc.Audit = audit
		history = audit
	}

	if cfg.RabbitMQURL != "" {
		svc.Events = events.NewPublisher(cfg.RabbitMQURL)
	}

	var sender *service.SenderService
	if cfg.Notify.EmailEnabled() {
		notifier := service.NewNotifyService(cfg.Notify)
		var texter service.Texter
		if cfg.Notify.SMSEnabled() {
			texter = notifier
		}
		sender = service.NewSenderService(cfg.Notify, notifier, texter)
		svc.Notifier = sender
	}

	if cfg.ReminderCron != "" && sender != nil {
		jobs := service.NewJobService(repo, sender)
		c := cron.New()
		_, err := c.AddFunc(cfg.ReminderCron, func() {
			if err := jobs.SendPendingDigest(context.Background()); err != nil {
				log.Println(err)
			}
		})
		if err != nil {
			log.Fatalf("Invalid REMINDER_CRON %q: %v", cfg.ReminderCron, err)
		}
		c.Start()
		defer c.Stop()
		log.Printf("Pending digest scheduled: %s", cfg.ReminderCron)
	}

	h := api.Handlers{Availability: api.NewAvailabilityHandler(svc)}
	if cfg.Admin.Enabled() {
		h.Admin = api.NewAdminHandler(service.NewAdminService(repo, history))
		h.AdminAuth = api.NewAdminAuthHandler(service.NewAdminAuthService(cfg.Admin))
		h.AdminSecret = cfg.Admin.JWTSecret
	}

	log.Printf("Server running on port %s", cfg.Port)
	log.Fatal(http.ListenAndServe(":"+cfg.Port, api.NewRouter(h, os.Stdout)))
}
