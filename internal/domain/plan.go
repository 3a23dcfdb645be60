// Package domain contains the core data types for the Tour Planner API.
// This package has zero external dependencies and is imported by every other
// internal package (repo, service, suggestion, handler).
package domain

import "time"

// DateLayout is the wire format for calendar dates (start_date, end_date).
const DateLayout = "2006-01-02"

// PlanRequest is the caller-supplied body of a plan submission.
// Nothing in it is trusted: dates are kept as raw strings so that malformed
// values can be reported as validation errors rather than decode failures,
// and a zero PeopleCount means the field was missing.
type PlanRequest struct {
	Destination string `json:"destination"`
	Purpose     string `json:"purpose"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	PeopleCount int    `json:"people_count"`
}

// PlanDraft is a validated PlanRequest on its way to the store.
// AISuggestion is filled in by the submission pipeline before persisting.
type PlanDraft struct {
	Destination  string
	Purpose      string
	StartDate    time.Time
	EndDate      time.Time
	PeopleCount  int
	AISuggestion string
}

// Days returns the inclusive length of the trip in days.
// A trip that starts and ends on the same day lasts one day.
func (d PlanDraft) Days() int {
	return int(d.EndDate.Sub(d.StartDate).Hours()/24) + 1
}

// Plan is a persisted travel plan.
// ID and CreatedAt are assigned by the store and never change afterwards.
type Plan struct {
	ID           string
	Destination  string
	Purpose      string
	StartDate    time.Time
	EndDate      time.Time
	PeopleCount  int
	AISuggestion string
	CreatedAt    time.Time
}
