// Package handler implements the HTTP handlers for the Tour Planner API.
// All handlers are methods on Server. Methods are split into
// resource-specific files (health.go, plan.go) but share the same Server
// struct so they can reach its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pkordes/tour-planner/backend/internal/domain"
)

// PlanServicer defines the business operations the plan handlers depend on.
// Defining the interface here, in the consumer package, lets handler tests
// inject a mock without touching storage or the AI backend.
type PlanServicer interface {
	Submit(ctx context.Context, req domain.PlanRequest) (domain.Plan, error)
	List(ctx context.Context) ([]domain.Plan, error)
	Delete(ctx context.Context, id string) error
}

// Server holds the dependencies shared by every handler.
type Server struct {
	plans PlanServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(plans PlanServicer) *Server {
	return &Server{plans: plans}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil)
}

// Handler returns the chi router serving every API route.
// Cross-cutting middleware is applied by the caller (see cmd/api).
func Handler(s *Server) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/plans", func(r chi.Router) {
		r.Get("/", s.ListPlans)
		r.Post("/", s.CreatePlan)
		r.Delete("/{planId}", s.DeletePlan)
	})

	return r
}
