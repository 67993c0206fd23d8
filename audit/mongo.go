package audit

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const serviceName = "cuisine-backend"

type MongoRecorder struct {
	collection *mongo.Collection
}

func NewMongoRecorder(client *mongo.Client, database, collection string) *MongoRecorder {
	return &MongoRecorder{collection: client.Database(database).Collection(collection)}
}

func (m *MongoRecorder) Record(ctx context.Context, entry Entry) error {
	if entry.Service == "" {
		entry.Service = serviceName
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	_, err := m.collection.InsertOne(ctx, entry)
	return err
}

// History returns the entries for one entity, newest first.
func (m *MongoRecorder) History(ctx context.Context, entity string, entityID uint, limit int64) ([]Entry, error) {
	filter := bson.M{"entity": entity, "entity_id": entityID}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(limit)

	cursor, err := m.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []Entry
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
