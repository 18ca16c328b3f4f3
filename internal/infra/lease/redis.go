package lease

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultSweepKey = "studio-booking:lease:credit-sweep"

// releaseScript deletes the key only while it still holds our token, so an
// expired lease picked up by another sweep is left alone.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

type RedisLease struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

func NewRedisLease(client *redis.Client, key string, logger *slog.Logger) *RedisLease {
	if key == "" {
		key = DefaultSweepKey
	}
	return &RedisLease{client: client, key: key, logger: logger}
}

// Acquire takes the lease for ttl. ok is false when someone else holds it.
func (l *RedisLease) Acquire(ctx context.Context, ttl time.Duration) (func(context.Context), bool, error) {
	token, err := newToken()
	if err != nil {
		return nil, false, err
	}

	ok, err := l.client.SetNX(ctx, l.key, token, ttl).Result()
	if err != nil {
		return nil, false, fmt.Errorf("acquire lease %s: %w", l.key, err)
	}
	if !ok {
		return nil, false, nil
	}

	release := func(ctx context.Context) {
		if err := releaseScript.Run(ctx, l.client, []string{l.key}, token).Err(); err != nil {
			l.logger.Warn("failed to release lease", slog.String("key", l.key), slog.String("error", err.Error()))
		}
	}
	return release, true, nil
}

func newToken() (string, error) {
	var buf [16]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return "", fmt.Errorf("generate lease token: %w", err)
	}
	return hex.EncodeToString(buf[:]), nil
}

func NewClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", addr, err)
	}
	return client, nil
}
