package keylock

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/mrlokans/tracker/internal/apperr"
)

const (
	defaultTTL        = 10 * time.Second
	defaultRetryDelay = 25 * time.Millisecond
	keyPrefix         = "tracker:lock:"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lease taken over by another process is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// Redis is a lease-based lock shared by every process using the same Redis.
// A lease expires after TTL even if the holder dies without unlocking.
type Redis struct {
	client     redis.UniversalClient
	ttl        time.Duration
	retryDelay time.Duration
	log        *zap.Logger
}

// RedisConfig configures a Redis locker.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// NewRedis connects to Redis and checks the connection.
func NewRedis(ctx context.Context, cfg RedisConfig, log *zap.Logger) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, apperr.Wrap(apperr.KindInternal, "keylock.NewRedis", "connect to "+cfg.Addr, err)
	}
	return NewRedisWithClient(client, cfg.TTL, log), nil
}

// NewRedisWithClient wraps an existing client.
func NewRedisWithClient(client redis.UniversalClient, ttl time.Duration, log *zap.Logger) *Redis {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Redis{client: client, ttl: ttl, retryDelay: defaultRetryDelay, log: log}
}

func (r *Redis) Lock(ctx context.Context, key string) (func(), error) {
	const op = "keylock.Redis.Lock"
	redisKey := keyPrefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(r.retryDelay)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, redisKey, token, r.ttl).Result()
		if err != nil {
			return nil, apperr.Wrap(apperr.KindInternal, op, "acquire "+key, err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, apperr.Wrap(apperr.KindInternal, op, "waiting for "+key, ctx.Err())
		case <-ticker.C:
		}
	}

	return func() {
		// Release even when the caller's context is already cancelled.
		releaseCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		if err := releaseScript.Run(releaseCtx, r.client, []string{redisKey}, token).Err(); err != nil {
			r.log.Warn("failed to release lock", zap.String("key", key), zap.Error(err))
		}
	}, nil
}

// Close closes the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
