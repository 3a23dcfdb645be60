// Package suggestion produces the AI itinerary text attached to every plan.
//
// Generation is best effort. Generate never returns an error: when the model
// cannot be reached or answers badly, the caller still gets a readable
// placeholder to store, and the failure is only logged.
package suggestion

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/pkordes/tour-planner/backend/internal/domain"
)

// UnavailablePrefix starts every placeholder produced on failure.
const UnavailablePrefix = "AI suggestion unavailable"

// Completer is the outbound AI port: one prompt in, plain text out.
// *llm.Client and llm.Unavailable satisfy it.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Result is the outcome of one generation attempt.
// Text is always usable; OK reports whether it came from the model.
type Result struct {
	Text string
	OK   bool
}

// Generator builds itinerary prompts and calls the Completer once per plan.
type Generator struct {
	completer Completer
	log       *slog.Logger
}

// NewGenerator constructs a Generator. A nil logger means slog.Default().
func NewGenerator(c Completer, log *slog.Logger) *Generator {
	if log == nil {
		log = slog.Default()
	}
	return &Generator{completer: c, log: log}
}

// Generate asks the model for an itinerary for draft. It makes a single
// attempt with no retry, and never fails.
func (g *Generator) Generate(ctx context.Context, draft domain.PlanDraft) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = g.fallback(draft, fmt.Errorf("panic: %v", r))
		}
	}()

	if g.completer == nil {
		return g.fallback(draft, fmt.Errorf("no AI backend configured"))
	}

	text, err := g.completer.Complete(ctx, Prompt(draft))
	if err != nil {
		return g.fallback(draft, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return g.fallback(draft, fmt.Errorf("empty response"))
	}
	return Result{Text: text, OK: true}
}

func (g *Generator) fallback(draft domain.PlanDraft, err error) Result {
	g.log.Warn("ai suggestion failed",
		"destination", draft.Destination,
		"error", err,
	)
	return Result{Text: Unavailable(err), OK: false}
}

// Unavailable formats the placeholder stored when generation fails.
func Unavailable(reason error) string {
	return fmt.Sprintf("%s (reason: %s)", UnavailablePrefix, reason.Error())
}

// Prompt renders the natural-language request sent to the model.
func Prompt(draft domain.PlanDraft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Plan a trip to %s.\n", draft.Destination)
	fmt.Fprintf(&b, "Purpose of the trip: %s.\n", draft.Purpose)
	fmt.Fprintf(&b, "Dates: %s to %s (%d %s).\n",
		draft.StartDate.Format(domain.DateLayout),
		draft.EndDate.Format(domain.DateLayout),
		draft.Days(), plural(draft.Days(), "day", "days"),
	)
	fmt.Fprintf(&b, "Travellers: %d %s.\n", draft.PeopleCount, plural(draft.PeopleCount, "person", "people"))
	b.WriteString("Suggest a day-by-day itinerary with places to visit, food to try, and practical tips.")
	return b.String()
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
