package redisqueue

import (
	"context"
	"os"
	"testing"

	"github.com/go-playground/assert/v2"
)

func TestPublishNew(t *testing.T) {
	url := os.Getenv("HNSYNC_TEST_REDIS_URL")
	if url == "" {
		t.Skip("HNSYNC_TEST_REDIS_URL not set")
	}
	ctx := context.Background()

	q, err := New(ctx, url)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	defer q.Close()
	q.key = "hnsync:test:" + t.Name()
	defer q.rdb.Del(ctx, q.key)

	assert.Equal(t, nil, q.PublishNew(ctx, nil))
	assert.Equal(t, nil, q.PublishNew(ctx, []int64{101, 102}))

	n, err := q.Len(ctx)
	assert.Equal(t, nil, err)
	assert.Equal(t, int64(2), n)

	// LPUSH + RPOP gives FIFO order.
	first, err := q.rdb.RPop(ctx, q.key).Result()
	assert.Equal(t, nil, err)
	assert.Equal(t, "101", first)
}
