package database

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AnimeCollection is the single collection holding the canonical
// per-show records.
const AnimeCollection = "animes"

// EnsureIndexes creates the uniqueness constraint on the show id and
// the compound index backing the week-view query. Safe to run on every
// startup; Mongo treats existing identical indexes as a no-op.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	coll := db.Collection(AnimeCollection)

	_, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "status", Value: 1}, {Key: "nextAiringAt", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("create indexes on %s: %w", AnimeCollection, err)
	}
	return nil
}
