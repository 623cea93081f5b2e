package rdx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects to addr and pings it.
func InitRedis(ctx context.Context, addr, password string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password, // Empty if no password
		DB:       0,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", addr, err)
	}

	log.Printf("Connected to Redis at %s", addr)
	return client, nil
}

// Persistence stores cart values as plain Redis strings.
type Persistence struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewPersistence keys every value under prefix. A zero ttl keeps values
// until they are removed.
func NewPersistence(client *redis.Client, prefix string, ttl time.Duration) *Persistence {
	return &Persistence{client: client, prefix: prefix, ttl: ttl}
}

func (p *Persistence) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := p.client.Get(ctx, p.prefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, true, nil
}

func (p *Persistence) Set(ctx context.Context, key, value string) error {
	if err := p.client.Set(ctx, p.prefix+key, value, p.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (p *Persistence) Remove(ctx context.Context, key string) error {
	if err := p.client.Del(ctx, p.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
