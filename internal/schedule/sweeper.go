package schedule

import (
	"context"
	"fmt"
	"log"

	"animesched/pkg/models"
)

// Sweeper removes shows that will not air again.
type Sweeper struct {
	Store  Store
	Lookup StatusLookup
}

func NewSweeper(store Store, lookup StatusLookup) *Sweeper {
	return &Sweeper{Store: store, Lookup: lookup}
}

// Sweep refreshes the status of every stored show and deletes the ones
// whose status is terminal (FINISHED or CANCELLED). Shows the lookup
// has no answer for are kept: missing information is not evidence a
// show has finished. Returns the number of records removed.
func (s *Sweeper) Sweep(ctx context.Context) (int64, error) {
	ids, err := s.Store.AllIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list stored ids: %w", err)
	}
	if len(ids) == 0 {
		return 0, nil
	}

	statuses := s.Lookup.FetchStatuses(ctx, ids)

	var finished []int
	for _, id := range ids {
		if models.IsTerminal(statuses[id]) {
			finished = append(finished, id)
		}
	}
	if len(finished) == 0 {
		return 0, nil
	}

	removed, err := s.Store.DeleteByIDs(ctx, finished)
	if err != nil {
		return 0, fmt.Errorf("delete finished shows: %w", err)
	}
	if removed > 0 {
		log.Printf("[sweep] removed %d finished shows", removed)
	}
	return removed, nil
}
