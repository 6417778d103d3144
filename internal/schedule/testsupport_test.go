package schedule

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"

	"animesched/pkg/models"
)

// fakeStore is an in-memory Store for tests. It filters FindAiring the
// same way the Mongo repo's query does.
type fakeStore struct {
	mu          sync.Mutex
	records     map[int]models.AnimeRecord
	upsertErr   map[int]error
	statusesErr error
	allIDsErr   error
	findErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		records:   make(map[int]models.AnimeRecord),
		upsertErr: make(map[int]error),
	}
}

func (f *fakeStore) put(rec models.AnimeRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.records[rec.ID] = rec
}

func (f *fakeStore) get(id int) (models.AnimeRecord, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	rec, ok := f.records[id]
	return rec, ok
}

func (f *fakeStore) Upsert(_ context.Context, rec models.AnimeRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.upsertErr[rec.ID]; err != nil {
		return err
	}
	f.records[rec.ID] = rec
	return nil
}

func (f *fakeStore) StatusesByIDs(_ context.Context, ids []int) (map[int]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statusesErr != nil {
		return nil, f.statusesErr
	}
	out := make(map[int]string)
	for _, id := range ids {
		if rec, ok := f.records[id]; ok && rec.Status != "" {
			out[id] = rec.Status
		}
	}
	return out, nil
}

func (f *fakeStore) AllIDs(_ context.Context) ([]int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.allIDsErr != nil {
		return nil, f.allIDsErr
	}
	ids := make([]int, 0, len(f.records))
	for id := range f.records {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids, nil
}

func (f *fakeStore) DeleteByID(_ context.Context, id int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.records[id]; !ok {
		return 0, nil
	}
	delete(f.records, id)
	return 1, nil
}

func (f *fakeStore) DeleteByIDs(_ context.Context, ids []int) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, id := range ids {
		if _, ok := f.records[id]; ok {
			delete(f.records, id)
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) FindAiring(_ context.Context, statuses []string, minAiringAt int64) ([]models.AnimeRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.findErr != nil {
		return nil, f.findErr
	}
	allowed := make(map[string]bool, len(statuses))
	for _, s := range statuses {
		allowed[s] = true
	}
	var out []models.AnimeRecord
	for _, rec := range f.records {
		if allowed[rec.Status] && rec.NextAiringAt >= minAiringAt {
			out = append(out, rec)
		}
	}
	return out, nil
}

// fakeLookup returns canned statuses and records every call it
// receives.
type fakeLookup struct {
	mu       sync.Mutex
	statuses map[int]string
	calls    int
	batches  [][]int
}

func (f *fakeLookup) FetchStatuses(_ context.Context, ids []int) map[int]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.batches = append(f.batches, append([]int(nil), ids...))

	out := make(map[int]string)
	for _, id := range ids {
		if st, ok := f.statuses[id]; ok {
			out[id] = st
		}
	}
	return out
}

func mustPayload(t *testing.T, raw string) map[string]json.RawMessage {
	t.Helper()
	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		t.Fatalf("bad test payload: %v", err)
	}
	return payload
}
