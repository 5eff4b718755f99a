package service

import (
	"context"
	"fmt"
	"log"

	"availability/internal/entities"
	"availability/internal/repository"
)

// DigestSender emails the pending-request digest.
type DigestSender interface {
	SendPendingDigest(pending []entities.AvailabilityRequest) error
}

type JobService struct {
	Repo   *repository.AvailabilityRepository
	Sender DigestSender
}

func NewJobService(repo *repository.AvailabilityRepository, sender DigestSender) *JobService {
	return &JobService{Repo: repo, Sender: sender}
}

// SendPendingDigest emails the organizer the requests nobody has answered yet.
func (s *JobService) SendPendingDigest(ctx context.Context) error {
	log.Println("cron job: checking for unanswered availability requests...")

	pending, err := pendingRequests(ctx, s.Repo)
	if err != nil {
		return fmt.Errorf("cron job: failed to list pending requests: %w", err)
	}
	if len(pending) == 0 {
		log.Println("cron job: no pending availability requests.")
		return nil
	}

	log.Printf("cron job: found %d pending availability request(s)", len(pending))
	if err := s.Sender.SendPendingDigest(pending); err != nil {
		return fmt.Errorf("cron job: failed to send pending digest: %w", err)
	}
	return nil
}
