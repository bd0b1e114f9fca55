package lock

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	startKeyPrefix = "quiz:start:"
	maxAttempts    = 3
)

var ErrContended = errors.New("start key kept expiring")

type client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// StartGuard lets one opener own the pending -> in_progress write of a
// quiz for ttl. The same user reopening within ttl keeps ownership.
type StartGuard struct {
	client client
	ttl    time.Duration
}

func NewStartGuard(c *redis.Client, ttl time.Duration) *StartGuard {
	return newStartGuard(c, ttl)
}

func newStartGuard(c client, ttl time.Duration) *StartGuard {
	return &StartGuard{client: c, ttl: ttl}
}

func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (g *StartGuard) AcquireStart(ctx context.Context, quizID, userID string) (bool, error) {
	key := startKeyPrefix + quizID

	for attempt := 0; attempt < maxAttempts; attempt++ {
		ok, err := g.client.SetNX(ctx, key, userID, g.ttl).Result()
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}

		owner, err := g.client.Get(ctx, key).Result()
		if errors.Is(err, redis.Nil) {
			// expired between the two calls
			continue
		}
		if err != nil {
			return false, err
		}
		return owner == userID, nil
	}
	return false, ErrContended
}
