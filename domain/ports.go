package domain

import (
	"context"
	"time"
)

// StoryRepository is the persistence port for stories and their vote events.
type StoryRepository interface {
	Ensure(ctx context.Context) error
	// SaveStories inserts every story whose id is absent, inside one
	// transaction committed once. The result maps id to true when inserted.
	SaveStories(ctx context.Context, stories []Story) (map[int64]bool, error)
	ListLatest(ctx context.Context, limit int) ([]Story, error)
	GetStory(ctx context.Context, id int64) (Story, error)
	DeleteStory(ctx context.Context, id int64) (int64, error)
	VoteCounts(ctx context.Context, ids []int64) (map[int64]VoteCounts, error)
}

// StoryLister returns the current top-story ids in remote order.
type StoryLister interface {
	ListTopStoryIDs(ctx context.Context) ([]int64, error)
}

// ItemFetcher fetches one raw item by id.
type ItemFetcher interface {
	FetchItem(ctx context.Context, id int64) (FetchedItem, error)
}

// Publisher announces newly inserted story ids.
type Publisher interface {
	PublishNew(ctx context.Context, ids []int64) error
}

// Scheduler exposes runtime controls for background ingestion.
type Scheduler interface {
	Start(ctx context.Context) error
	Stop() error

	SetInterval(d time.Duration)
	Resize(workers int) error
	CurrentInterval() time.Duration
	CurrentWorkers() int
}
