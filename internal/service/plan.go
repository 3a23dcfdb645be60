// Package service contains the business logic for the Tour Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo
// and AI calls. No SQL lives here: services depend on interfaces, not
// implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkordes/tour-planner/backend/internal/domain"
	"github.com/pkordes/tour-planner/backend/internal/repo"
	"github.com/pkordes/tour-planner/backend/internal/suggestion"
)

// Suggester produces the AI itinerary for a validated draft.
// Implementations must never fail; *suggestion.Generator satisfies it.
type Suggester interface {
	Generate(ctx context.Context, draft domain.PlanDraft) suggestion.Result
}

// PlanService runs the plan submission pipeline and exposes the stored plans.
type PlanService struct {
	repo    repo.PlanRepo
	suggest Suggester
	log     *slog.Logger
}

// NewPlanService constructs a PlanService. A nil logger means slog.Default().
func NewPlanService(r repo.PlanRepo, s Suggester, log *slog.Logger) *PlanService {
	if log == nil {
		log = slog.Default()
	}
	return &PlanService{repo: r, suggest: s, log: log}
}

// Submit validates req, attaches an AI suggestion and persists the result.
//
// Validation failures return a *domain.ValidationError and nothing is
// written. A failed AI call never fails the submission: the placeholder
// text is stored instead. Store failures are returned wrapped and match
// domain.ErrStore.
//
// Once validation passes the work is detached from ctx's cancellation, so a
// client that disconnects mid-request does not abort the AI call or the
// insert. A panic while suggesting or persisting is returned as an
// unexpected fault.
func (s *PlanService) Submit(ctx context.Context, req domain.PlanRequest) (plan domain.Plan, err error) {
	draft, err := ValidatePlanRequest(req)
	if err != nil {
		s.log.DebugContext(ctx, "plan rejected", "stage", "validating", "error", err)
		return domain.Plan{}, err
	}

	ctx = context.WithoutCancel(ctx)

	// A panic in a store driver must still surface as an ordinary fault.
	defer func() {
		if r := recover(); r != nil {
			s.log.ErrorContext(ctx, "panic during plan submission", "panic", r)
			plan, err = domain.Plan{}, fmt.Errorf("service.PlanService.Submit: panic: %v", r)
		}
	}()

	res := s.suggest.Generate(ctx, draft)
	draft.AISuggestion = res.Text
	s.log.DebugContext(ctx, "plan suggestion ready", "stage", "suggesting", "ai_ok", res.OK)

	plan, err = s.repo.Create(ctx, draft)
	if err != nil {
		if errors.Is(err, domain.ErrStore) {
			s.log.ErrorContext(ctx, "plan insert failed", "stage", "persisting", "error", err)
		} else {
			s.log.ErrorContext(ctx, "unexpected fault persisting plan", "stage", "persisting", "error", err)
		}
		return domain.Plan{}, fmt.Errorf("service.PlanService.Submit: %w", err)
	}

	s.log.InfoContext(ctx, "plan created", "plan_id", plan.ID, "ai_ok", res.OK)
	return plan, nil
}

// List returns all stored plans, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PlanService) List(ctx context.Context) ([]domain.Plan, error) {
	plans, err := s.repo.List(ctx)
	if err != nil {
		s.log.ErrorContext(ctx, "plan list failed", "error", err)
		return nil, fmt.Errorf("service.PlanService.List: %w", err)
	}
	if plans == nil {
		return []domain.Plan{}, nil
	}
	return plans, nil
}

// Delete removes a plan by id. Unknown ids are not an error.
func (s *PlanService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		s.log.ErrorContext(ctx, "plan delete failed", "plan_id", id, "error", err)
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}
