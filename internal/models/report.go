package models

import "time"

type OutcomeStatus string

const (
	StatusCreated OutcomeStatus = "Created"
	StatusSkipped OutcomeStatus = "Skipped"
	StatusError   OutcomeStatus = "Error"
)

// ProcessingOutcome records what happened to a single document in a run.
type ProcessingOutcome struct {
	Filename         string        `json:"filename"`
	Status           OutcomeStatus `json:"status"`
	SkipReasons      []string      `json:"skip_reasons,omitempty"`
	CreatedEntityIDs []string      `json:"created_entity_ids,omitempty"`
	ErrorDetail      string        `json:"error_detail,omitempty"`
}

type ReportCounts struct {
	Processed int `json:"processed"`
	Created   int `json:"created"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

// BatchReport is the per-run report. It is assembled in memory during the
// sweep and written exactly once at run end; Counts is always derived by
// tallying Outcomes, never maintained separately.
type BatchReport struct {
	RunID            string              `json:"run_id"`
	RunTimestamp     time.Time           `json:"run_timestamp"`
	CriteriaSnapshot any                 `json:"criteria_snapshot"`
	Outcomes         []ProcessingOutcome `json:"outcomes"`
	Counts           ReportCounts        `json:"counts"`
}

// Tally recomputes Counts from Outcomes.
func (r *BatchReport) Tally() {
	counts := ReportCounts{Processed: len(r.Outcomes)}
	for _, o := range r.Outcomes {
		switch o.Status {
		case StatusCreated:
			counts.Created++
		case StatusSkipped:
			counts.Skipped++
		case StatusError:
			counts.Errors++
		}
	}
	r.Counts = counts
}
