package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"claimtrust/internal/domain"

	"github.com/redis/go-redis/v9"
)

type redisLimiter struct {
	client *redis.Client
	limit  int
	window time.Duration
	now    func() time.Time
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Limit    int
	Window   time.Duration
	Now      func() time.Time
}

// admitScript counts the arrival and decides admission in one atomic
// round trip. The key already names the window slot, so the script only
// needs to bound the counter's lifetime; expiry lands just past the
// slot boundary and stragglers see a fresh key.
var admitScript = redis.NewScript(`
local hits = redis.call("INCR", KEYS[1])
if hits == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
if hits > tonumber(ARGV[1]) then
  return {0, hits}
end
return {1, hits}
`)

func NewRedisLimiter(cfg RedisConfig) (domain.RateLimiter, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis addr is required")
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return &redisLimiter{
		client: client,
		limit:  cfg.Limit,
		window: cfg.Window,
		now:    cfg.Now,
	}, nil
}

func (r *redisLimiter) Allow(ctx context.Context, key string) (domain.RateLimitDecision, error) {
	if r.limit <= 0 {
		return domain.RateLimitDecision{Allowed: true, Limit: r.limit, Remaining: r.limit}, nil
	}
	now := r.now()
	slot, resetAt := windowSlot(now, r.window)
	slotKey := fmt.Sprintf("claimtrust:ratelimit:%s:%d", key, slot)
	expiryMillis := resetAt.Sub(now).Milliseconds() + 1000

	values, err := admitScript.Run(ctx, r.client, []string{slotKey}, r.limit, expiryMillis).Int64Slice()
	if err != nil {
		return domain.RateLimitDecision{}, err
	}
	if len(values) != 2 {
		return domain.RateLimitDecision{}, errors.New("unexpected admission script reply")
	}
	return admission(r.limit, int(values[1]), resetAt, now), nil
}
