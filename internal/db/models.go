package db

import "time"

// SubmissionLog is one row of the submission_log audit table.
type SubmissionLog struct {
	ID           string
	RequestID    int64
	RequestGroup string
	Person       string
	SpanSeconds  float64
	SlotCount    int
	SubmittedAt  time.Time
}
