package activity

import (
	"context"
	"fmt"

	"autosave/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const collectionName = "activity_events"

type MongoActivityRepo struct {
	coll *mongo.Collection
}

func NewMongoActivityRepo(db *mongo.Database) *MongoActivityRepo {
	return &MongoActivityRepo{coll: db.Collection(collectionName)}
}

var _ ActivityRepository = (*MongoActivityRepo)(nil)

func (r *MongoActivityRepo) Insert(ctx context.Context, event models.ActivityEvent) error {
	if _, err := r.coll.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("failed to insert activity event: %w", err)
	}
	return nil
}

func (r *MongoActivityRepo) ListByDraft(ctx context.Context, draftID string) ([]models.ActivityEvent, error) {
	opts := options.Find().SetSort(bson.D{{Key: "occurredAt", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{"draftId": draftID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query activity events: %w", err)
	}
	defer cursor.Close(ctx)

	var events []models.ActivityEvent
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("failed to decode activity events: %w", err)
	}
	return events, nil
}

// EnsureIndexes creates the lookup index and the retention TTL index.
func (r *MongoActivityRepo) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "draftId", Value: 1}, {Key: "occurredAt", Value: 1}},
			Options: options.Index().SetName("draft_occurred"),
		},
		{
			Keys: bson.D{{Key: "occurredAt", Value: 1}},
			Options: options.Index().
				SetName("occurred_ttl").
				SetExpireAfterSeconds(int32(RetentionPeriod.Seconds())),
		},
	}
	if _, err := r.coll.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create activity indexes: %w", err)
	}
	return nil
}
