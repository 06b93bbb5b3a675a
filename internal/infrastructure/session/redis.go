package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/campusrooms/booking-client/internal/core/ports"
)

const connectTimeout = 5 * time.Second

// RedisConfig captures the settings for establishing a Redis connection.
type RedisConfig struct {
	Addr string
	DB   int
	Key  string
}

// Redis stores the session under a single key, for environments where the
// credential cache is shared across hosts (CI runners, shared dev boxes).
type Redis struct {
	client *redis.Client
	key    string
}

// ConnectRedis initialises a Redis-backed store and validates connectivity
// with a ping.
func ConnectRedis(ctx context.Context, cfg RedisConfig) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.Addr,
		DB:   cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &Redis{client: client, key: cfg.Key}, nil
}

// NewRedis wraps an existing client, mainly for tests.
func NewRedis(client *redis.Client, key string) *Redis {
	return &Redis{client: client, key: key}
}

func (r *Redis) Load(ctx context.Context) (ports.Session, error) {
	raw, err := r.client.Get(ctx, r.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ports.Session{}, nil
	}
	if err != nil {
		return ports.Session{}, fmt.Errorf("redis get session: %w", err)
	}

	var sess ports.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return ports.Session{}, fmt.Errorf("decode stored session: %w", err)
	}
	return sess, nil
}

func (r *Redis) Save(ctx context.Context, sess ports.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *Redis) Clear(ctx context.Context) error {
	if err := r.client.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}
