package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/tour-planner/backend/internal/domain"
)

// Plan is the JSON representation of a stored plan.
type Plan struct {
	Id           string             `json:"id"`
	Destination  string             `json:"destination"`
	Purpose      string             `json:"purpose"`
	StartDate    openapi_types.Date `json:"start_date"`
	EndDate      openapi_types.Date `json:"end_date"`
	PeopleCount  int                `json:"people_count"`
	AiSuggestion string             `json:"ai_suggestion"`
	CreatedAt    time.Time          `json:"created_at"`
}

// ListPlans handles GET /plans.
func (s *Server) ListPlans(w http.ResponseWriter, r *http.Request) {
	plans, err := s.plans.List(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}

	data := make([]Plan, len(plans))
	for i, p := range plans {
		data[i] = planToResponse(p)
	}
	writeJSON(w, http.StatusOK, data)
}

// CreatePlan handles POST /plans.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var body domain.PlanRequest
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(&body); err != nil {
		writeDecodeError(w, err, "request body must be a JSON object: "+err.Error())
		return
	}
	// Anything after the object, even another valid value, is rejected.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		writeDecodeError(w, err, "request body must be a single JSON object")
		return
	}

	created, err := s.plans.Submit(r.Context(), body)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, planToResponse(created))
}

// writeDecodeError reports a request body that could not be decoded.
// Bodies cut off by the size limit get 413, everything else 400.
func writeDecodeError(w http.ResponseWriter, err error, message string) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}
	writeError(w, http.StatusBadRequest, message)
}

// DeletePlan handles DELETE /plans/{planId}.
// Deleting a plan that does not exist still returns 204.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	var planID string
	err := runtime.BindStyledParameterWithOptions("simple", "planId", chi.URLParam(r, "planId"), &planID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid planId: "+err.Error())
		return
	}

	if err := s.plans.Delete(r.Context(), planID); err != nil {
		writeServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// planToResponse converts a domain.Plan into its JSON representation.
func planToResponse(p domain.Plan) Plan {
	return Plan{
		Id:           p.ID,
		Destination:  p.Destination,
		Purpose:      p.Purpose,
		StartDate:    openapi_types.Date{Time: p.StartDate},
		EndDate:      openapi_types.Date{Time: p.EndDate},
		PeopleCount:  p.PeopleCount,
		AiSuggestion: p.AISuggestion,
		CreatedAt:    p.CreatedAt,
	}
}
