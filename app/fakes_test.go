package app

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"hnsync/domain"
)

// memRepo keeps stories in memory. SaveStories stages writes and applies
// them only when the commit succeeds.
type memRepo struct {
	mu         sync.Mutex
	rows       map[int64]domain.Story
	failCommit bool
	saves      int
}

func newMemRepo() *memRepo { return &memRepo{rows: map[int64]domain.Story{}} }

func (r *memRepo) Ensure(context.Context) error { return nil }

func (r *memRepo) SaveStories(_ context.Context, stories []domain.Story) (map[int64]bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.saves++

	staged := make(map[int64]domain.Story, len(r.rows))
	for k, v := range r.rows {
		staged[k] = v
	}
	inserted := map[int64]bool{}
	for _, s := range stories {
		if _, ok := staged[s.ID]; ok {
			if _, seen := inserted[s.ID]; !seen {
				inserted[s.ID] = false
			}
			continue
		}
		staged[s.ID] = s
		inserted[s.ID] = true
	}
	if r.failCommit {
		return nil, errors.New("disk full")
	}
	r.rows = staged
	return inserted, nil
}

func (r *memRepo) ListLatest(_ context.Context, limit int) ([]domain.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Story, 0, len(r.rows))
	for _, s := range r.rows {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubmittedAt > out[j].SubmittedAt })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *memRepo) GetStory(_ context.Context, id int64) (domain.Story, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.rows[id]
	if !ok {
		return domain.Story{}, sql.ErrNoRows
	}
	return s, nil
}

func (r *memRepo) DeleteStory(_ context.Context, id int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return 0, nil
	}
	delete(r.rows, id)
	return 1, nil
}

func (r *memRepo) VoteCounts(context.Context, []int64) (map[int64]domain.VoteCounts, error) {
	return map[int64]domain.VoteCounts{}, nil
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rows)
}

// fakeFetcher serves items from a map. Ids listed in errs fail with that error.
type fakeFetcher struct {
	items map[int64]domain.FetchedItem
	errs  map[int64]error
	delay time.Duration

	calls    atomic.Int32
	inflight atomic.Int32
	peak     atomic.Int32
}

func (f *fakeFetcher) FetchItem(ctx context.Context, id int64) (domain.FetchedItem, error) {
	f.calls.Add(1)
	n := f.inflight.Add(1)
	defer f.inflight.Add(-1)
	for {
		p := f.peak.Load()
		if n <= p || f.peak.CompareAndSwap(p, n) {
			break
		}
	}
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return domain.FetchedItem{}, ctx.Err()
		}
	}
	if err, ok := f.errs[id]; ok {
		return domain.FetchedItem{}, err
	}
	it, ok := f.items[id]
	if !ok {
		return domain.FetchedItem{}, domain.ErrItemFetch
	}
	return it, nil
}

type recordingPublisher struct {
	mu        sync.Mutex
	published [][]int64
	rowsAtPub []int
	repo      *memRepo
	err       error
}

func (p *recordingPublisher) PublishNew(_ context.Context, ids []int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.published = append(p.published, append([]int64(nil), ids...))
	if p.repo != nil {
		p.rowsAtPub = append(p.rowsAtPub, p.repo.count())
	}
	return p.err
}

type fakeLister struct {
	ids   []int64
	err   error
	calls atomic.Int32
}

func (l *fakeLister) ListTopStoryIDs(context.Context) ([]int64, error) {
	l.calls.Add(1)
	return l.ids, l.err
}

func ptr[T any](v T) *T { return &v }

func item(id int64, by string, score int, epoch int64) domain.FetchedItem {
	return domain.FetchedItem{ID: ptr(id), By: ptr(by), Score: ptr(score), Time: ptr(epoch)}
}
