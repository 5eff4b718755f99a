package service

import (
	"context"
	"log"
	"time"

	"availability/internal/entities"
	"availability/internal/repository"
)

// SubmissionHistory looks up when requests were last submitted.
type SubmissionHistory interface {
	LastSubmittedAt(ctx context.Context, requestIDs []int64) (map[int64]time.Time, error)
}

// RequestStatus is one row of the admin request listing.
type RequestStatus struct {
	ID              int64      `json:"id"`
	Name            string     `json:"name"`
	RequestGroup    string     `json:"request_group"`
	Person          string     `json:"person"`
	Responded       *time.Time `json:"responded,omitempty"`
	LastSubmittedAt *time.Time `json:"last_submitted_at,omitempty"`
}

type AdminService struct {
	Repo    *repository.AvailabilityRepository
	History SubmissionHistory // optional
}

func NewAdminService(repo *repository.AvailabilityRepository, history SubmissionHistory) *AdminService {
	return &AdminService{Repo: repo, History: history}
}

func pendingRequests(ctx context.Context, repo *repository.AvailabilityRepository) ([]entities.AvailabilityRequest, error) {
	all, err := repo.ListRequests(ctx)
	if err != nil {
		return nil, err
	}
	var pending []entities.AvailabilityRequest
	for _, r := range all {
		if !r.Responded.Valid {
			pending = append(pending, r)
		}
	}
	return pending, nil
}

// ListRequests returns every request, or only unanswered ones when
// pendingOnly is set.
func (s *AdminService) ListRequests(ctx context.Context, pendingOnly bool) ([]RequestStatus, error) {
	var reqs []entities.AvailabilityRequest
	var err error
	if pendingOnly {
		reqs, err = pendingRequests(ctx, s.Repo)
	} else {
		reqs, err = s.Repo.ListRequests(ctx)
	}
	if err != nil {
		return nil, err
	}

	var last map[int64]time.Time
	if s.History != nil {
		ids := make([]int64, len(reqs))
		for i, r := range reqs {
			ids[i] = r.ID
		}
		last, err = s.History.LastSubmittedAt(ctx, ids)
		if err != nil {
			log.Printf("admin: submission history unavailable: %v", err)
		}
	}

	out := make([]RequestStatus, 0, len(reqs))
	for _, r := range reqs {
		st := RequestStatus{
			ID:           r.ID,
			Name:         r.Name,
			RequestGroup: r.RequestGroup.String(),
			Person:       r.Person.String(),
		}
		if t, ok := r.Responded.Get(); ok {
			st.Responded = &t
		}
		if t, ok := last[r.ID]; ok {
			st.LastSubmittedAt = &t
		}
		out = append(out, st)
	}
	return out, nil
}
