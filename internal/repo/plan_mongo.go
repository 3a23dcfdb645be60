package repo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/pkordes/tour-planner/backend/internal/domain"
)

// PlanCollection is the collection (or table) name shared by every PlanRepo.
const PlanCollection = "tour_plan"

// planDocument is the BSON shape of a plan in MongoDB.
type planDocument struct {
	ID           primitive.ObjectID `bson:"_id"`
	Destination  string             `bson:"destination"`
	Purpose      string             `bson:"purpose"`
	StartDate    time.Time          `bson:"start_date"`
	EndDate      time.Time          `bson:"end_date"`
	PeopleCount  int                `bson:"people_count"`
	AISuggestion string             `bson:"ai_suggestion"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// mongoPlanRepo is the MongoDB implementation of PlanRepo.
// MongoDB has no server-side defaults, so the repo assigns the ObjectID and
// created_at itself before inserting.
type mongoPlanRepo struct {
	coll *mongo.Collection
	now  func() time.Time
}

// NewMongoPlanRepo constructs a PlanRepo backed by coll.
func NewMongoPlanRepo(coll *mongo.Collection) PlanRepo {
	return &mongoPlanRepo{coll: coll, now: time.Now}
}

func (r *mongoPlanRepo) List(ctx context.Context) ([]domain.Plan, error) {
	opts := options.Find().SetSort(bson.D{
		{Key: "created_at", Value: -1},
		{Key: "_id", Value: -1},
	})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("repo.MongoPlanRepo.List: %w", domain.NewStoreError("list", err))
	}

	var docs []planDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("repo.MongoPlanRepo.List: decode: %w", domain.NewStoreError("list", err))
	}

	plans := make([]domain.Plan, 0, len(docs))
	for _, d := range docs {
		plans = append(plans, d.toDomain())
	}
	return plans, nil
}

func (r *mongoPlanRepo) Create(ctx context.Context, draft domain.PlanDraft) (domain.Plan, error) {
	// BSON datetimes have millisecond precision; truncate so the returned
	// record matches what a later List reads back.
	doc := planDocument{
		ID:           primitive.NewObjectID(),
		Destination:  draft.Destination,
		Purpose:      draft.Purpose,
		StartDate:    draft.StartDate.UTC(),
		EndDate:      draft.EndDate.UTC(),
		PeopleCount:  draft.PeopleCount,
		AISuggestion: draft.AISuggestion,
		CreatedAt:    r.now().UTC().Truncate(time.Millisecond),
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return domain.Plan{}, fmt.Errorf("repo.MongoPlanRepo.Create: %w", domain.NewStoreError("create", err))
	}
	return doc.toDomain(), nil
}

func (r *mongoPlanRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil
	}

	if _, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid}); err != nil {
		return fmt.Errorf("repo.MongoPlanRepo.Delete: %w", domain.NewStoreError("delete", err))
	}
	return nil
}

func (d planDocument) toDomain() domain.Plan {
	return domain.Plan{
		ID:           d.ID.Hex(),
		Destination:  d.Destination,
		Purpose:      d.Purpose,
		StartDate:    d.StartDate.UTC(),
		EndDate:      d.EndDate.UTC(),
		PeopleCount:  d.PeopleCount,
		AISuggestion: d.AISuggestion,
		CreatedAt:    d.CreatedAt.UTC(),
	}
}
