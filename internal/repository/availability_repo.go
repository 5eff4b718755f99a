package repository

import (
	"context"
	"fmt"
	"time"

	"availability/internal/entities"
	apperrors "availability/internal/errors"
	"availability/internal/mapper"
	"availability/internal/records"
)

// Table ids in the records service document.
const (
	TableRequests     = "Availability_requests"
	TableTimespans    = "Request_timespans"
	TableAvailability = "Availability"
)

type AvailabilityRepository struct {
	Store records.Store
}

func NewAvailabilityRepository(store records.Store) *AvailabilityRepository {
	return &AvailabilityRepository{Store: store}
}

// GetRequestByKey returns the single request whose lookup key is key.
func (r *AvailabilityRepository) GetRequestByKey(ctx context.Context, key string) (entities.AvailabilityRequest, error) {
	rows, err := r.Store.GetRecords(ctx, TableRequests, records.Filter{"Key": {key}})
	if err != nil {
		return entities.AvailabilityRequest{}, fmt.Errorf("error querying availability request: %w", err)
	}
	switch len(rows) {
	case 0:
		return entities.AvailabilityRequest{}, apperrors.ErrNotFound
	case 1:
		return mapper.DecodeRequest(rows[0])
	default:
		return entities.AvailabilityRequest{}, apperrors.ErrDuplicateKey
	}
}

// GetRequestTimespans returns every window offered to a request group.
func (r *AvailabilityRepository) GetRequestTimespans(ctx context.Context, group entities.Ref) ([]entities.RequestTimespan, error) {
	rows, err := r.Store.GetRecords(ctx, TableTimespans, records.Filter{"Request_group": {group.Value()}})
	if err != nil {
		return nil, fmt.Errorf("error querying request timespans: %w", err)
	}
	out := make([]entities.RequestTimespan, 0, len(rows))
	for _, row := range rows {
		ts, err := mapper.DecodeTimespan(row)
		if err != nil {
			return nil, err
		}
		out = append(out, ts)
	}
	return out, nil
}

func availabilityFilter(req entities.AvailabilityRequest) records.Filter {
	return records.Filter{
		"Request_group": {req.RequestGroup.Value()},
		"Person":        {req.Person.Value()},
	}
}

// GetAvailability returns the stored records of req's person in req's group.
func (r *AvailabilityRepository) GetAvailability(ctx context.Context, req entities.AvailabilityRequest) ([]entities.AvailabilityRecord, error) {
	rows, err := r.Store.GetRecords(ctx, TableAvailability, availabilityFilter(req))
	if err != nil {
		return nil, fmt.Errorf("error querying availability: %w", err)
	}
	out := make([]entities.AvailabilityRecord, 0, len(rows))
	for _, row := range rows {
		rec, err := mapper.DecodeRecord(row)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// MarkResponded stamps the request with the response time and text.
func (r *AvailabilityRepository) MarkResponded(ctx context.Context, req entities.AvailabilityRequest, now time.Time, response string) error {
	err := r.Store.PatchRecords(ctx, TableRequests, []records.Patch{
		{ID: req.ID, Fields: mapper.EncodeResponded(now, response)},
	})
	if err != nil {
		return fmt.Errorf("error marking request %d responded: %w", req.ID, err)
	}
	return nil
}

// ReplaceAvailability deletes the person's prior records in the group and
// inserts the new ones. The two calls are not atomic: a concurrent reader may
// see no records in between.
func (r *AvailabilityRepository) ReplaceAvailability(ctx context.Context, req entities.AvailabilityRequest, spans []entities.TimeSpan, slots []entities.TimeSlot) error {
	existing, err := r.Store.GetRecords(ctx, TableAvailability, availabilityFilter(req))
	if err != nil {
		return fmt.Errorf("error querying existing availability: %w", err)
	}
	if len(existing) > 0 {
		ids := make([]int64, len(existing))
		for i, row := range existing {
			ids[i] = row.ID
		}
		if err := r.Store.DeleteRecords(ctx, TableAvailability, ids); err != nil {
			return fmt.Errorf("error deleting existing availability: %w", err)
		}
	}

	rows := mapper.EncodeAvailability(req, spans, slots)
	if len(rows) == 0 {
		return nil
	}
	if _, err := r.Store.AddRecords(ctx, TableAvailability, rows); err != nil {
		return fmt.Errorf("error inserting availability: %w", err)
	}
	return nil
}

// ListRequests returns every availability request in the document.
func (r *AvailabilityRepository) ListRequests(ctx context.Context) ([]entities.AvailabilityRequest, error) {
	rows, err := r.Store.GetRecords(ctx, TableRequests, nil)
	if err != nil {
		return nil, fmt.Errorf("error querying availability requests: %w", err)
	}
	out := make([]entities.AvailabilityRequest, 0, len(rows))
	for _, row := range rows {
		req, err := mapper.DecodeRequest(row)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	return out, nil
}
