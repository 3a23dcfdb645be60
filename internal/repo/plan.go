// Package repo contains all storage access logic for the Tour Planner API.
// PlanRepo has three implementations: Postgres (the default), MongoDB and
// SQLite. No business logic lives here, only queries and type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/tour-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlanRepo defines the persistence operations for Plans in the tour_plan
// collection. Backend failures are returned as *domain.StoreError.
type PlanRepo interface {
	// List returns all plans, newest first (created_at DESC, then id DESC).
	List(ctx context.Context) ([]domain.Plan, error)

	// Create inserts a validated draft and returns the persisted record with
	// store-assigned id and created_at.
	Create(ctx context.Context, draft domain.PlanDraft) (domain.Plan, error)

	// Delete removes the plan with the given id. Deleting an id that does not
	// exist, or that is not a well-formed id for the backend, is not an error.
	Delete(ctx context.Context, id string) error
}

// pgPlanRepo is the Postgres implementation of PlanRepo.
type pgPlanRepo struct {
	db db
}

// NewPlanRepo constructs a PlanRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPlanRepo(db db) PlanRepo {
	return &pgPlanRepo{db: db}
}

const planColumns = `id, destination, purpose, start_date, end_date, people_count, ai_suggestion, created_at`

// List returns every plan, most recently created first.
func (r *pgPlanRepo) List(ctx context.Context) ([]domain.Plan, error) {
	const q = `
		SELECT ` + planColumns + `
		FROM tour_plan
		ORDER BY created_at DESC, id DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.List: %w", domain.NewStoreError("list", err))
	}
	defer rows.Close()

	plans := []domain.Plan{}
	for rows.Next() {
		p, err := scanPlan(rows, "list")
		if err != nil {
			return nil, fmt.Errorf("repo.PlanRepo.List: scan: %w", err)
		}
		plans = append(plans, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.PlanRepo.List: rows: %w", domain.NewStoreError("list", err))
	}

	return plans, nil
}

// Create inserts a new plan row and returns the full persisted record.
func (r *pgPlanRepo) Create(ctx context.Context, draft domain.PlanDraft) (domain.Plan, error) {
	const q = `
		INSERT INTO tour_plan (destination, purpose, start_date, end_date, people_count, ai_suggestion)
		VALUES (@destination, @purpose, @start_date, @end_date, @people_count, @ai_suggestion)
		RETURNING ` + planColumns

	args := pgx.NamedArgs{
		"destination":   draft.Destination,
		"purpose":       draft.Purpose,
		"start_date":    pgtype.Date{Time: draft.StartDate, Valid: true},
		"end_date":      pgtype.Date{Time: draft.EndDate, Valid: true},
		"people_count":  draft.PeopleCount,
		"ai_suggestion": draft.AISuggestion,
	}

	row := r.db.QueryRow(ctx, q, args)
	result, err := scanPlan(row, "create")
	if err != nil {
		return domain.Plan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}
	return result, nil
}

// Delete removes a plan by primary key. Ids that are not UUIDs cannot match
// any row, so they are treated as already deleted.
func (r *pgPlanRepo) Delete(ctx context.Context, id string) error {
	pid, err := uuid.Parse(id)
	if err != nil {
		return nil
	}

	const q = `DELETE FROM tour_plan WHERE id = @id`
	if _, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": pid}); err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.NewStoreError("delete", err))
	}
	return nil
}

// scanner is satisfied by both pgx.Row and pgx.Rows, allowing scanPlan to be
// reused for both QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// scanPlan maps a single database row into a domain.Plan.
// Errors raised by the server or the connection become StoreErrors for op;
// column-to-field conversion failures are returned as-is because they point
// at a schema mismatch rather than a backend failure.
func scanPlan(s scanner, op string) (domain.Plan, error) {
	var (
		p         domain.Plan
		id        pgtype.UUID
		startDate pgtype.Date
		endDate   pgtype.Date
	)

	err := s.Scan(&id, &p.Destination, &p.Purpose, &startDate, &endDate, &p.PeopleCount, &p.AISuggestion, &p.CreatedAt)
	if err != nil {
		var argErr pgx.ScanArgError
		if errors.As(err, &argErr) {
			return domain.Plan{}, err
		}
		return domain.Plan{}, domain.NewStoreError(op, err)
	}

	p.ID = uuid.UUID(id.Bytes).String()
	p.StartDate = startDate.Time
	p.EndDate = endDate.Time

	return p, nil
}
