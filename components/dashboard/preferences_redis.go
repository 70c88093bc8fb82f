package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultRedisPrefix = "dashboard:pref:"

// RedisPreferenceStore keeps theme preferences in Redis so they survive
// restarts and are shared between replicas.
type RedisPreferenceStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisPreferenceStore wraps client. A zero ttl keeps keys forever.
func NewRedisPreferenceStore(client *redis.Client, prefix string, ttl time.Duration) *RedisPreferenceStore {
	if prefix == "" {
		prefix = defaultRedisPrefix
	}
	return &RedisPreferenceStore{client: client, prefix: prefix, ttl: ttl}
}

// LoadTheme reads the stored theme. Any stored value counts: anything other
// than dark reads as light.
func (s *RedisPreferenceStore) LoadTheme(ctx context.Context, key string) (Theme, bool, error) {
	if s == nil || s.client == nil {
		return "", false, nil
	}
	value, err := s.client.Get(ctx, s.key(key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("dashboard: load theme %s: %w", key, err)
	}
	return Theme(strings.ToLower(strings.TrimSpace(value))).Normalize(), true, nil
}

// SaveTheme writes the theme under the prefixed key.
func (s *RedisPreferenceStore) SaveTheme(ctx context.Context, key string, theme Theme) error {
	if s == nil || s.client == nil {
		return errors.New("dashboard: redis preference store not configured")
	}
	if err := s.client.Set(ctx, s.key(key), string(theme.Normalize()), s.ttl).Err(); err != nil {
		return fmt.Errorf("dashboard: save theme %s: %w", key, err)
	}
	return nil
}

func (s *RedisPreferenceStore) key(key string) string {
	if key == "" {
		key = ThemePreferenceKey
	}
	return s.prefix + key
}
