package schedule

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"animesched/pkg/database"
	"animesched/pkg/models"
)

// Repo is the Mongo-backed Store implementation. One document per
// show, keyed by the "id" field (unique index, see pkg/database).
type Repo struct {
	Coll *mongo.Collection
}

func NewRepo(db *mongo.Database) *Repo {
	return &Repo{Coll: db.Collection(database.AnimeCollection)}
}

func (r *Repo) Upsert(ctx context.Context, rec models.AnimeRecord) error {
	_, err := r.Coll.UpdateOne(ctx,
		bson.M{"id": rec.ID},
		bson.M{"$set": rec},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("upsert anime %d: %w", rec.ID, err)
	}
	return nil
}

func (r *Repo) StatusesByIDs(ctx context.Context, ids []int) (map[int]string, error) {
	out := make(map[int]string, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	cur, err := r.Coll.Find(ctx,
		bson.M{"id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"id": 1, "status": 1}),
	)
	if err != nil {
		return nil, fmt.Errorf("find statuses: %w", err)
	}
	defer cur.Close(ctx)

	for cur.Next(ctx) {
		var doc struct {
			ID     int    `bson:"id"`
			Status string `bson:"status"`
		}
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode status doc: %w", err)
		}
		if doc.Status != "" {
			out[doc.ID] = doc.Status
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("status cursor: %w", err)
	}
	return out, nil
}

func (r *Repo) AllIDs(ctx context.Context) ([]int, error) {
	values, err := r.Coll.Distinct(ctx, "id", bson.D{})
	if err != nil {
		return nil, fmt.Errorf("distinct ids: %w", err)
	}

	ids := make([]int, 0, len(values))
	for _, v := range values {
		switch n := v.(type) {
		case int32:
			ids = append(ids, int(n))
		case int64:
			ids = append(ids, int(n))
		case float64:
			ids = append(ids, int(n))
		}
	}
	return ids, nil
}

func (r *Repo) DeleteByID(ctx context.Context, id int) (int64, error) {
	res, err := r.Coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return 0, fmt.Errorf("delete anime %d: %w", id, err)
	}
	return res.DeletedCount, nil
}

func (r *Repo) DeleteByIDs(ctx context.Context, ids []int) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res, err := r.Coll.DeleteMany(ctx, bson.M{"id": bson.M{"$in": ids}})
	if err != nil {
		return 0, fmt.Errorf("delete %d animes: %w", len(ids), err)
	}
	return res.DeletedCount, nil
}

func (r *Repo) FindAiring(ctx context.Context, statuses []string, minAiringAt int64) ([]models.AnimeRecord, error) {
	cur, err := r.Coll.Find(ctx, bson.M{
		"status":       bson.M{"$in": statuses},
		"nextAiringAt": bson.M{"$gte": minAiringAt},
	})
	if err != nil {
		return nil, fmt.Errorf("find airing: %w", err)
	}
	defer cur.Close(ctx)

	var out []models.AnimeRecord
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode airing records: %w", err)
	}
	return out, nil
}
