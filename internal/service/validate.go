package service

import (
	"strings"
	"time"

	"github.com/pkordes/tour-planner/backend/internal/domain"
)

// ValidatePlanRequest checks req and converts it into a PlanDraft.
//
// Checks run in a fixed order and stop at the first failure, which is
// returned as a *domain.ValidationError naming the offending field:
//   - destination, purpose, start_date, end_date, people_count must be
//     present (blank strings and a zero count count as missing);
//   - both dates must be YYYY-MM-DD calendar dates;
//   - end_date must not precede start_date;
//   - people_count must be at least 1.
func ValidatePlanRequest(req domain.PlanRequest) (domain.PlanDraft, error) {
	required := []struct {
		field   string
		present bool
	}{
		{"destination", strings.TrimSpace(req.Destination) != ""},
		{"purpose", strings.TrimSpace(req.Purpose) != ""},
		{"start_date", strings.TrimSpace(req.StartDate) != ""},
		{"end_date", strings.TrimSpace(req.EndDate) != ""},
		{"people_count", req.PeopleCount != 0},
	}
	for _, r := range required {
		if !r.present {
			return domain.PlanDraft{}, invalid(r.field, r.field+" is required")
		}
	}

	start, err := parseDate(req.StartDate)
	if err != nil {
		return domain.PlanDraft{}, invalid("start_date", "start_date must be a date in YYYY-MM-DD format")
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return domain.PlanDraft{}, invalid("end_date", "end_date must be a date in YYYY-MM-DD format")
	}
	if end.Before(start) {
		return domain.PlanDraft{}, invalid("end_date", "end date must not precede start date")
	}
	if req.PeopleCount < 1 {
		return domain.PlanDraft{}, invalid("people_count", "people_count must be at least 1")
	}

	return domain.PlanDraft{
		Destination: strings.TrimSpace(req.Destination),
		Purpose:     strings.TrimSpace(req.Purpose),
		StartDate:   start,
		EndDate:     end,
		PeopleCount: req.PeopleCount,
	}, nil
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(domain.DateLayout, strings.TrimSpace(s))
}

func invalid(field, msg string) error {
	return &domain.ValidationError{Field: field, Message: msg}
}
