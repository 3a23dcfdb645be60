package service_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tour-planner/backend/internal/domain"
	"github.com/pkordes/tour-planner/backend/internal/service"
)

func validRequest() domain.PlanRequest {
	return domain.PlanRequest{
		Destination: "Busan",
		Purpose:     "family",
		StartDate:   "2025-06-01",
		EndDate:     "2025-06-03",
		PeopleCount: 2,
	}
}

// requireInvalid asserts err is a ValidationError for field and returns it.
func requireInvalid(t *testing.T, err error, field string) *domain.ValidationError {
	t.Helper()
	require.ErrorIs(t, err, domain.ErrValidation)
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve), "expected *domain.ValidationError, got %T", err)
	assert.Equal(t, field, ve.Field)
	return ve
}

func TestValidatePlanRequest_Valid(t *testing.T) {
	got, err := service.ValidatePlanRequest(validRequest())

	require.NoError(t, err)
	assert.Equal(t, "Busan", got.Destination)
	assert.Equal(t, "family", got.Purpose)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), got.StartDate)
	assert.Equal(t, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC), got.EndDate)
	assert.Equal(t, 2, got.PeopleCount)
	assert.Empty(t, got.AISuggestion)
}

func TestValidatePlanRequest_TrimsText(t *testing.T) {
	req := validRequest()
	req.Destination = "  Busan "
	req.StartDate = " 2025-06-01"

	got, err := service.ValidatePlanRequest(req)

	require.NoError(t, err)
	assert.Equal(t, "Busan", got.Destination)
}

func TestValidatePlanRequest_MissingField(t *testing.T) {
	tests := []struct {
		field string
		clear func(*domain.PlanRequest)
	}{
		{"destination", func(r *domain.PlanRequest) { r.Destination = "" }},
		{"purpose", func(r *domain.PlanRequest) { r.Purpose = "   " }},
		{"start_date", func(r *domain.PlanRequest) { r.StartDate = "" }},
		{"end_date", func(r *domain.PlanRequest) { r.EndDate = "" }},
		{"people_count", func(r *domain.PlanRequest) { r.PeopleCount = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			req := validRequest()
			tt.clear(&req)

			_, err := service.ValidatePlanRequest(req)

			ve := requireInvalid(t, err, tt.field)
			assert.Equal(t, tt.field+" is required", ve.Message)
		})
	}
}

func TestValidatePlanRequest_ReportsFirstMissingFieldOnly(t *testing.T) {
	_, err := service.ValidatePlanRequest(domain.PlanRequest{})

	requireInvalid(t, err, "destination")

	_, err = service.ValidatePlanRequest(domain.PlanRequest{Destination: "Busan", StartDate: "bogus"})

	requireInvalid(t, err, "purpose")
}

func TestValidatePlanRequest_MalformedDates(t *testing.T) {
	req := validRequest()
	req.StartDate = "June 1st"
	_, err := service.ValidatePlanRequest(req)
	requireInvalid(t, err, "start_date")

	req = validRequest()
	req.EndDate = "2025-02-30"
	_, err = service.ValidatePlanRequest(req)
	requireInvalid(t, err, "end_date")
}

func TestValidatePlanRequest_EndBeforeStart(t *testing.T) {
	req := validRequest()
	req.EndDate = "2025-05-30"

	_, err := service.ValidatePlanRequest(req)

	ve := requireInvalid(t, err, "end_date")
	assert.Equal(t, "end date must not precede start date", ve.Message)
}

func TestValidatePlanRequest_SameDayTrip(t *testing.T) {
	req := validRequest()
	req.EndDate = req.StartDate

	got, err := service.ValidatePlanRequest(req)

	require.NoError(t, err)
	assert.Equal(t, 1, got.Days())
}

func TestValidatePlanRequest_PeopleCountBoundary(t *testing.T) {
	req := validRequest()
	req.PeopleCount = 1
	_, err := service.ValidatePlanRequest(req)
	assert.NoError(t, err)

	req.PeopleCount = 0
	_, err = service.ValidatePlanRequest(req)
	requireInvalid(t, err, "people_count")

	req.PeopleCount = -3
	_, err = service.ValidatePlanRequest(req)
	ve := requireInvalid(t, err, "people_count")
	assert.Equal(t, "people_count must be at least 1", ve.Message)
}
