package schedule

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"animesched/pkg/models"
)

// Reconciler collapses raw save payloads into canonical per-show
// records and writes them to the store.
type Reconciler struct {
	Store  Store
	Lookup StatusLookup
	Now    func() time.Time
}

func NewReconciler(store Store, lookup StatusLookup) *Reconciler {
	return &Reconciler{Store: store, Lookup: lookup, Now: time.Now}
}

type candidate struct {
	entry    rawEntry
	airingAt int64
}

// Reconcile processes one save payload: a mapping from day labels to
// lists of show entries. Malformed days and entries are skipped and
// logged, never fatal. When the same show appears more than once in
// the payload, the entry with the earliest future airing wins. Entries
// that have already aired are dropped.
//
// Status resolution prefers the value already in the store, then a
// fresh AniList lookup, then whatever the entry itself carried.
//
// Returns the number of records written. Each write is isolated: one
// failed upsert does not block the rest.
func (r *Reconciler) Reconcile(ctx context.Context, payload map[string]json.RawMessage) int {
	now := r.Now().Unix()

	best := r.collapse(payload, now)
	if len(best) == 0 {
		return 0
	}

	ids := make([]int, 0, len(best))
	for id := range best {
		ids = append(ids, id)
	}

	statuses := r.resolveStatuses(ctx, ids)

	written := 0
	for id, c := range best {
		status := statuses[id]
		if status == "" {
			status = c.entry.Status
		}

		rec := models.AnimeRecord{
			ID:           id,
			Title:        ExtractTitle(c.entry.Title),
			CoverImage:   ExtractCoverImage(c.entry.cover()),
			SiteURL:      c.entry.siteURL(),
			Status:       status,
			NextEpisode:  c.entry.episode(),
			NextAiringAt: c.airingAt,
			UpdatedAt:    now,
		}
		if err := r.Store.Upsert(ctx, rec); err != nil {
			log.Printf("[schedule] %v", err)
			continue
		}
		written++
	}
	return written
}

// collapse walks the day buckets and reduces the payload to at most
// one candidate per show id.
func (r *Reconciler) collapse(payload map[string]json.RawMessage, now int64) map[int]candidate {
	best := make(map[int]candidate)

	for day, rawList := range payload {
		var entries []json.RawMessage
		if err := json.Unmarshal(rawList, &entries); err != nil {
			log.Printf("[schedule] day %q: expected a list of entries: %v", day, err)
			continue
		}

		for i, rawItem := range entries {
			var e rawEntry
			if err := json.Unmarshal(rawItem, &e); err != nil {
				log.Printf("[schedule] day %q entry %d: bad shape: %v", day, i, err)
				continue
			}

			id, err := e.showID()
			if err != nil {
				log.Printf("[schedule] day %q entry %d: %v", day, i, err)
				continue
			}

			airingAt, err := ParseAiringTime(e.airingRaw())
			if err != nil {
				log.Printf("[schedule] anime %d: %v", id, err)
				continue
			}
			if airingAt < now {
				continue // already aired
			}

			if cur, ok := best[id]; !ok || airingAt < cur.airingAt {
				best[id] = candidate{entry: e, airingAt: airingAt}
			}
		}
	}
	return best
}

// resolveStatuses reads stored statuses for the whole id set in one
// query and fills the gaps with a single batched AniList lookup.
func (r *Reconciler) resolveStatuses(ctx context.Context, ids []int) map[int]string {
	statuses, err := r.Store.StatusesByIDs(ctx, ids)
	if err != nil {
		log.Printf("[schedule] read stored statuses: %v", err)
		statuses = make(map[int]string, len(ids))
	}

	var missing []int
	for _, id := range ids {
		if statuses[id] == "" {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return statuses
	}

	for id, st := range r.Lookup.FetchStatuses(ctx, missing) {
		if st != "" {
			statuses[id] = st
		}
	}
	return statuses
}
