package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis stocke chaque clé comme une chaîne Redis. Seules les clés nommées dans
// expiring (dernier segment après le préfixe de profil) reçoivent le TTL, rafraîchi
// à chaque écriture ; les autres n'expirent jamais. ttl = 0 désactive l'expiration.
type Redis struct {
	client   *redis.Client
	ttl      time.Duration
	expiring []string
}

func NewRedis(client *redis.Client, ttl time.Duration, expiring ...string) *Redis {
	return &Redis{client: client, ttl: ttl, expiring: expiring}
}

func (r *Redis) ttlFor(key string) time.Duration {
	if r.ttl <= 0 {
		return 0
	}
	for _, name := range r.expiring {
		if key == name || strings.HasSuffix(key, ":"+name) {
			return r.ttl
		}
	}
	return 0
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return data, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	if err := r.client.Set(ctx, key, value, r.ttlFor(key)).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %s: %w", key, err)
	}
	return nil
}
