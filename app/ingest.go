package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"hnsync/domain"
)

const DefaultWorkers = 4

// Engine fetches stories through a bounded worker pool and saves every
// normalized story in a single transaction.
type Engine struct {
	repo    domain.StoryRepository
	fetcher domain.ItemFetcher
	pub     domain.Publisher // optional

	mu      sync.Mutex
	workers int
}

func NewEngine(repo domain.StoryRepository, fetcher domain.ItemFetcher, pub domain.Publisher, workers int) *Engine {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	return &Engine{repo: repo, fetcher: fetcher, pub: pub, workers: workers}
}

func (e *Engine) SetWorkers(n int) error {
	if n <= 0 {
		return errors.New("workers must be > 0")
	}
	e.mu.Lock()
	e.workers = n
	e.mu.Unlock()
	return nil
}

func (e *Engine) Workers() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.workers
}

type fetchResult struct {
	story domain.Story
	err   error
	done  bool
}

// Ingest fetches and stores the given ids. Per-item failures are recorded in
// the report. The returned error is non-nil only when the save step fails,
// and then wraps domain.ErrStorage.
func (e *Engine) Ingest(ctx context.Context, ids []int64) (domain.IngestionReport, error) {
	unique := dedupe(ids)
	results := e.fetchAll(ctx, unique)

	byID := make(map[int64]fetchResult, len(unique))
	stories := make([]domain.Story, 0, len(unique))
	for i, id := range unique {
		res := results[i]
		if !res.done {
			res.err = &domain.ItemError{ID: id, Err: fmt.Errorf("%w: %v", domain.ErrItemFetch, ctx.Err())}
		}
		byID[id] = res
		if res.err == nil {
			stories = append(stories, res.story)
		}
	}

	inserted, saveErr := e.repo.SaveStories(ctx, stories)
	if saveErr != nil && !errors.Is(saveErr, domain.ErrStorage) {
		saveErr = fmt.Errorf("%w: %w", domain.ErrStorage, saveErr)
	}

	var report domain.IngestionReport
	var newIDs []int64
	seen := make(map[int64]bool, len(unique))
	for _, id := range ids {
		res := byID[id]
		switch {
		case res.err != nil:
			report.Add(domain.Outcome{ID: id, Status: domain.StatusFailed, Err: res.err})
		case saveErr != nil:
			report.Add(domain.Outcome{ID: id, Status: domain.StatusFailed, Err: &domain.ItemError{ID: id, Err: saveErr}})
		case !seen[id] && inserted[id]:
			report.Add(domain.Outcome{ID: id, Status: domain.StatusInserted})
			newIDs = append(newIDs, id)
		default:
			report.Add(domain.Outcome{ID: id, Status: domain.StatusAlreadyPresent})
		}
		seen[id] = true
	}

	if saveErr != nil {
		slog.Error("saving stories failed", "stories", len(stories), "error", saveErr)
		return report, saveErr
	}

	for _, o := range report.Failures() {
		slog.Warn("story skipped", "story_id", o.ID, "error", o.Err)
	}

	if e.pub != nil && len(newIDs) > 0 {
		if err := e.pub.PublishNew(ctx, newIDs); err != nil {
			slog.Warn("publishing new stories failed", "count", len(newIDs), "error", err)
		}
	}

	slog.Info("ingestion finished",
		"requested", len(ids),
		"inserted", report.Inserted,
		"already_present", report.AlreadyPresent,
		"failed", report.Failed,
	)
	return report, nil
}

// fetchAll fetches and normalizes ids[i] into results[i]. A result left with
// done=false was never attempted because ctx ended first.
func (e *Engine) fetchAll(ctx context.Context, ids []int64) []fetchResult {
	results := make([]fetchResult, len(ids))
	if len(ids) == 0 {
		return results
	}

	n := e.Workers()
	if n > len(ids) {
		n = len(ids)
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < n; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			worker(ctx, e.fetcher, ids, jobs, results)
		}()
	}

feed:
	for i := range ids {
		select {
		case jobs <- i:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()
	return results
}

func worker(ctx context.Context, fetcher domain.ItemFetcher, ids []int64, jobs <-chan int, results []fetchResult) {
	for i := range jobs {
		results[i] = fetchOne(ctx, fetcher, ids[i])
	}
}

func fetchOne(ctx context.Context, fetcher domain.ItemFetcher, id int64) fetchResult {
	it, err := fetcher.FetchItem(ctx, id)
	if err != nil {
		return fetchResult{err: &domain.ItemError{ID: id, Err: err}, done: true}
	}
	s, err := domain.Normalize(it)
	if err != nil {
		return fetchResult{err: &domain.ItemError{ID: id, Err: err}, done: true}
	}
	if s.ID != id {
		err := fmt.Errorf("%w: payload id %d", domain.ErrMalformedItem, s.ID)
		return fetchResult{err: &domain.ItemError{ID: id, Err: err}, done: true}
	}
	return fetchResult{story: s, done: true}
}

func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
