package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/tour-planner/backend/internal/domain"
	"github.com/pkordes/tour-planner/backend/internal/handler"
)

// mockPlanServicer is a test double for handler.PlanServicer.
// Set only the method fields your test needs.
type mockPlanServicer struct {
	submit func(ctx context.Context, req domain.PlanRequest) (domain.Plan, error)
	list   func(ctx context.Context) ([]domain.Plan, error)
	delete func(ctx context.Context, id string) error
}

func (m *mockPlanServicer) Submit(ctx context.Context, req domain.PlanRequest) (domain.Plan, error) {
	return m.submit(ctx, req)
}
func (m *mockPlanServicer) List(ctx context.Context) ([]domain.Plan, error) {
	return m.list(ctx)
}
func (m *mockPlanServicer) Delete(ctx context.Context, id string) error {
	return m.delete(ctx, id)
}

// compile-time check: mockPlanServicer must satisfy handler.PlanServicer.
var _ handler.PlanServicer = (*mockPlanServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into the chi router,
// the same way main.go wires it in production.
func newHTTPHandler(svc handler.PlanServicer) http.Handler {
	return handler.Handler(handler.NewServer(svc))
}

func planFixture() domain.Plan {
	return domain.Plan{
		ID:           uuid.NewString(),
		Destination:  "Busan",
		Purpose:      "family",
		StartDate:    time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC),
		PeopleCount:  2,
		AISuggestion: "Day 1: Haeundae beach",
		CreatedAt:    time.Date(2025, 5, 20, 10, 0, 0, 0, time.UTC),
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp.Error
}

func postPlan(t *testing.T, svc handler.PlanServicer, body any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/plans", jsonBody(t, body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)
	return rec
}

// ---- POST /plans -----------------------------------------------------------

func TestCreatePlan_201(t *testing.T) {
	fixture := planFixture()
	var got domain.PlanRequest
	svc := &mockPlanServicer{
		submit: func(_ context.Context, req domain.PlanRequest) (domain.Plan, error) {
			got = req
			return fixture, nil
		},
	}

	rec := postPlan(t, svc, map[string]any{
		"destination":  "Busan",
		"purpose":      "family",
		"start_date":   "2025-06-01",
		"end_date":     "2025-06-03",
		"people_count": 2,
	})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, domain.PlanRequest{
		Destination: "Busan", Purpose: "family",
		StartDate: "2025-06-01", EndDate: "2025-06-03", PeopleCount: 2,
	}, got)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, fixture.ID, resp["id"])
	assert.Equal(t, "2025-06-01", resp["start_date"])
	assert.Equal(t, "2025-06-03", resp["end_date"])
	assert.EqualValues(t, 2, resp["people_count"])
	assert.Equal(t, "Day 1: Haeundae beach", resp["ai_suggestion"])
	assert.Equal(t, "2025-05-20T10:00:00Z", resp["created_at"])
}

func TestCreatePlan_400_ValidationError(t *testing.T) {
	svc := &mockPlanServicer{
		submit: func(_ context.Context, _ domain.PlanRequest) (domain.Plan, error) {
			return domain.Plan{}, &domain.ValidationError{Field: "end_date", Message: "end date must not precede start date"}
		},
	}

	rec := postPlan(t, svc, map[string]any{"destination": "Busan"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "end date must not precede start date", decodeError(t, rec))
}

func TestCreatePlan_400_StoreError(t *testing.T) {
	svc := &mockPlanServicer{
		submit: func(_ context.Context, _ domain.PlanRequest) (domain.Plan, error) {
			return domain.Plan{}, errors.Join(errors.New("service.PlanService.Submit"),
				domain.NewStoreError("create", errors.New("permission denied for table tour_plan")))
		},
	}

	rec := postPlan(t, svc, map[string]any{"destination": "Busan"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "permission denied for table tour_plan", decodeError(t, rec))
}

func TestCreatePlan_500_UnexpectedFault(t *testing.T) {
	svc := &mockPlanServicer{
		submit: func(_ context.Context, _ domain.PlanRequest) (domain.Plan, error) {
			return domain.Plan{}, errors.New("scan: secret internal detail")
		},
	}

	rec := postPlan(t, svc, map[string]any{"destination": "Busan"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	msg := decodeError(t, rec)
	assert.Equal(t, "internal server error", msg)
	assert.NotContains(t, msg, "secret")
}

func TestCreatePlan_400_MalformedJSON(t *testing.T) {
	svc := &mockPlanServicer{
		submit: func(_ context.Context, _ domain.PlanRequest) (domain.Plan, error) {
			t.Fatal("service must not be called for a malformed body")
			return domain.Plan{}, nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(`{"destination":`))
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.NotEmpty(t, decodeError(t, rec))
}

// ---- GET /plans ------------------------------------------------------------

func TestListPlans_200(t *testing.T) {
	plans := []domain.Plan{planFixture(), planFixture()}
	svc := &mockPlanServicer{
		list: func(_ context.Context) ([]domain.Plan, error) { return plans, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []handler.Plan
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, plans[0].ID, resp[0].Id)
	assert.Equal(t, plans[1].ID, resp[1].Id)
}

func TestListPlans_200_Empty(t *testing.T) {
	svc := &mockPlanServicer{
		list: func(_ context.Context) ([]domain.Plan, error) { return []domain.Plan{}, nil },
	}

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	// Must be a JSON array, not null.
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestListPlans_400_StoreError(t *testing.T) {
	svc := &mockPlanServicer{
		list: func(_ context.Context) ([]domain.Plan, error) {
			return nil, domain.NewStoreError("list", errors.New("connection refused"))
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/plans", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "connection refused", decodeError(t, rec))
}

// ---- DELETE /plans/{planId} ------------------------------------------------

func TestDeletePlan_204(t *testing.T) {
	var gotID string
	svc := &mockPlanServicer{
		delete: func(_ context.Context, id string) error {
			gotID = id
			return nil
		},
	}

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodDelete, "/plans/"+id, nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Body.String())
	assert.Equal(t, id, gotID)
}

func TestDeletePlan_400_StoreError(t *testing.T) {
	svc := &mockPlanServicer{
		delete: func(_ context.Context, _ string) error {
			return domain.NewStoreError("delete", errors.New("timeout"))
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/plans/abc", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "timeout", decodeError(t, rec))
}

func TestCreatePlan_400_TrailingData(t *testing.T) {
	svc := &mockPlanServicer{
		submit: func(_ context.Context, _ domain.PlanRequest) (domain.Plan, error) {
			t.Fatal("service must not be called when the body holds more than one value")
			return domain.Plan{}, nil
		},
	}

	bodies := map[string]string{
		"second object": `{"destination":"Busan","purpose":"family","start_date":"2025-06-01","end_date":"2025-06-03","people_count":2} {"people_count":"oops"}`,
		"garbage":       `{"destination":"Busan","purpose":"family","start_date":"2025-06-01","end_date":"2025-06-03","people_count":2} garbage`,
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()
			newHTTPHandler(svc).ServeHTTP(rec, req)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "request body must be a single JSON object", decodeError(t, rec))
		})
	}
}

func TestCreatePlan_TrailingWhitespaceAccepted(t *testing.T) {
	svc := &mockPlanServicer{
		submit: func(_ context.Context, _ domain.PlanRequest) (domain.Plan, error) {
			return planFixture(), nil
		},
	}

	req := httptest.NewRequest(http.MethodPost, "/plans", strings.NewReader(busanBody+"\n\n"))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
}
