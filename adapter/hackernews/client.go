package hackernews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"hnsync/domain"
)

const (
	DefaultListURL = "https://hacker-news.firebaseio.com/v0/topstories.json"
	DefaultItemURL = "https://hacker-news.firebaseio.com/v0/item/%d.json"
)

type Options struct {
	ListURL    string
	ItemURL    string // must contain a single %d verb for the story id
	Timeout    time.Duration
	MaxStories int // 0 keeps the whole list
	Retries    int
	Backoff    time.Duration
	MaxBackoff time.Duration
}

// Client talks to the Hacker News Firebase API. It implements both
// domain.StoryLister and domain.ItemFetcher.
type Client struct {
	client *http.Client
	opts   Options
}

func NewClient(opts Options) *Client {
	if opts.ListURL == "" {
		opts.ListURL = DefaultListURL
	}
	if opts.ItemURL == "" {
		opts.ItemURL = DefaultItemURL
	}
	return &Client{client: &http.Client{Timeout: opts.Timeout}, opts: opts}
}

func (c *Client) ListTopStoryIDs(ctx context.Context) ([]int64, error) {
	body, status, err := c.get(ctx, c.opts.ListURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrListFailure, err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", domain.ErrListFailure, status)
	}
	var ids []int64
	if err := json.Unmarshal(body, &ids); err != nil {
		return nil, fmt.Errorf("%w: decode: %v", domain.ErrListFailure, err)
	}
	if c.opts.MaxStories > 0 && len(ids) > c.opts.MaxStories {
		ids = ids[:c.opts.MaxStories]
	}
	return ids, nil
}

func (c *Client) FetchItem(ctx context.Context, id int64) (domain.FetchedItem, error) {
	url := fmt.Sprintf(c.opts.ItemURL, id)
	backoff := c.opts.Backoff

	var lastErr error
	for attempt := 0; attempt <= c.opts.Retries; attempt++ {
		if attempt > 0 {
			slog.Debug("retrying item fetch", "story_id", id, "attempt", attempt, "backoff", backoff, "error", lastErr)
			if err := sleep(ctx, backoff); err != nil {
				return domain.FetchedItem{}, fmt.Errorf("%w: %v", domain.ErrItemFetch, err)
			}
			backoff *= 2
			if c.opts.MaxBackoff > 0 && backoff > c.opts.MaxBackoff {
				backoff = c.opts.MaxBackoff
			}
		}

		body, status, err := c.get(ctx, url)
		if err != nil {
			lastErr = fmt.Errorf("%w: %v", domain.ErrItemFetch, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		switch {
		case status == http.StatusOK:
			return decodeItem(body)
		case status >= 500:
			lastErr = fmt.Errorf("%w: status %d", domain.ErrItemFetch, status)
			continue
		default:
			return domain.FetchedItem{}, fmt.Errorf("%w: status %d", domain.ErrItemFetch, status)
		}
	}
	return domain.FetchedItem{}, lastErr
}

func decodeItem(body []byte) (domain.FetchedItem, error) {
	var it domain.FetchedItem
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" || trimmed == "null" {
		return it, fmt.Errorf("%w: empty payload", domain.ErrMalformedItem)
	}
	if err := json.Unmarshal(body, &it); err != nil {
		return it, fmt.Errorf("%w: %v", domain.ErrMalformedItem, err)
	}
	return it, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, resp.StatusCode, nil
	}
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, err
	}
	return b, resp.StatusCode, nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
