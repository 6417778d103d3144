package schedule

import (
	"context"

	"animesched/pkg/models"
)

// Store is the persistence contract the schedule pipeline runs
// against. The production implementation is Repo; tests use an
// in-memory fake.
type Store interface {
	Upsert(ctx context.Context, rec models.AnimeRecord) error
	StatusesByIDs(ctx context.Context, ids []int) (map[int]string, error)
	AllIDs(ctx context.Context) ([]int, error)
	DeleteByID(ctx context.Context, id int) (int64, error)
	DeleteByIDs(ctx context.Context, ids []int) (int64, error)
	FindAiring(ctx context.Context, statuses []string, minAiringAt int64) ([]models.AnimeRecord, error)
}

// StatusLookup resolves show ids to their current airing status.
// Lookups degrade per batch: ids that cannot be resolved are simply
// absent from the result, never an error.
type StatusLookup interface {
	FetchStatuses(ctx context.Context, ids []int) map[int]string
}
