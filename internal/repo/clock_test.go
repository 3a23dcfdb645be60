package repo

import "time"

// SetClock replaces the timestamp source of a SQLite or Mongo repo so tests
// can control created_at ordering. Postgres stamps rows with now() and is
// left alone.
func SetClock(r PlanRepo, now func() time.Time) {
	switch r := r.(type) {
	case *sqlitePlanRepo:
		r.now = now
	case *mongoPlanRepo:
		r.now = now
	}
}
