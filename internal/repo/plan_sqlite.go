package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pkordes/tour-planner/backend/internal/domain"
)

// planRow is the gorm model for the SQLite tour_plan table.
type planRow struct {
	ID           string    `gorm:"primaryKey;type:text"`
	Destination  string    `gorm:"not null"`
	Purpose      string    `gorm:"not null"`
	StartDate    time.Time `gorm:"not null"`
	EndDate      time.Time `gorm:"not null"`
	PeopleCount  int       `gorm:"not null"`
	AISuggestion string    `gorm:"column:ai_suggestion;not null"`
	CreatedAt    time.Time `gorm:"not null;index"`
}

func (planRow) TableName() string { return PlanCollection }

// sqlitePlanRepo is the SQLite implementation of PlanRepo, used for local
// development without a Postgres server. Like the Mongo repo it generates
// ids and timestamps itself.
type sqlitePlanRepo struct {
	db  *gorm.DB
	now func() time.Time
}

// NewSQLitePlanRepo constructs a PlanRepo backed by db, creating the
// tour_plan table if it does not exist.
func NewSQLitePlanRepo(ctx context.Context, db *gorm.DB) (PlanRepo, error) {
	if err := db.WithContext(ctx).AutoMigrate(&planRow{}); err != nil {
		return nil, fmt.Errorf("repo.NewSQLitePlanRepo: migrate: %w", err)
	}
	return &sqlitePlanRepo{db: db, now: time.Now}, nil
}

func (r *sqlitePlanRepo) List(ctx context.Context) ([]domain.Plan, error) {
	var rows []planRow
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("repo.SQLitePlanRepo.List: %w", domain.NewStoreError("list", err))
	}

	plans := make([]domain.Plan, 0, len(rows))
	for _, row := range rows {
		plans = append(plans, row.toDomain())
	}
	return plans, nil
}

func (r *sqlitePlanRepo) Create(ctx context.Context, draft domain.PlanDraft) (domain.Plan, error) {
	row := planRow{
		ID:           uuid.NewString(),
		Destination:  draft.Destination,
		Purpose:      draft.Purpose,
		StartDate:    draft.StartDate.UTC(),
		EndDate:      draft.EndDate.UTC(),
		PeopleCount:  draft.PeopleCount,
		AISuggestion: draft.AISuggestion,
		CreatedAt:    r.now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Plan{}, fmt.Errorf("repo.SQLitePlanRepo.Create: %w", domain.NewStoreError("create", err))
	}
	return row.toDomain(), nil
}

func (r *sqlitePlanRepo) Delete(ctx context.Context, id string) error {
	err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&planRow{}).Error
	if err != nil {
		return fmt.Errorf("repo.SQLitePlanRepo.Delete: %w", domain.NewStoreError("delete", err))
	}
	return nil
}

func (row planRow) toDomain() domain.Plan {
	return domain.Plan{
		ID:           row.ID,
		Destination:  row.Destination,
		Purpose:      row.Purpose,
		StartDate:    row.StartDate.UTC(),
		EndDate:      row.EndDate.UTC(),
		PeopleCount:  row.PeopleCount,
		AISuggestion: row.AISuggestion,
		CreatedAt:    row.CreatedAt.UTC(),
	}
}
