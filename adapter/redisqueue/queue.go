package redisqueue

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"
)

const NewStoriesKey = "hnsync:queue:new_stories"

// Queue pushes newly inserted story ids onto a Redis list. Consumers pop
// from the other end with BRPOP.
type Queue struct {
	rdb *redis.Client
	key string
}

// New connects to redisURL. A value that is not a redis:// URL is taken as
// a plain host:port address.
func New(ctx context.Context, redisURL string) (*Queue, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		opt = &redis.Options{Addr: redisURL}
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return &Queue{rdb: rdb, key: NewStoriesKey}, nil
}

func (q *Queue) PublishNew(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}
	vals := make([]interface{}, len(ids))
	for i, id := range ids {
		vals[i] = strconv.FormatInt(id, 10)
	}
	return q.rdb.LPush(ctx, q.key, vals...).Err()
}

func (q *Queue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, q.key).Result()
}

func (q *Queue) Close() error {
	return q.rdb.Close()
}
