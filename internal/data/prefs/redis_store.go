package prefs

import (
	"context"
	"strings"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yungbote/foodyou-backend/internal/platform/logger"
)

type redisStore struct {
	rdb    *goredis.Client
	hash   string
	log    *logger.Logger
	notify Notifier
}

// NewRedisStore keeps preferences as fields of one Redis hash. Multi-key
// writes run in MULTI/EXEC.
func NewRedisStore(rdb *goredis.Client, hash string, notify Notifier, baseLog *logger.Logger) Store {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		hash = "foodyou:prefs"
	}
	return &redisStore{rdb: rdb, hash: hash, notify: notify, log: baseLog.With("store", "RedisPreferenceStore")}
}

func (s *redisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.rdb.HGet(ctx, s.hash, key).Result()
	if err == goredis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *redisStore) GetMany(ctx context.Context, keys ...string) (map[string]string, error) {
	out := make(map[string]string, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	vals, err := s.rdb.HMGet(ctx, s.hash, keys...).Result()
	if err != nil {
		return nil, err
	}
	for i, v := range vals {
		if sv, ok := v.(string); ok {
			out[keys[i]] = sv
		}
	}
	return out, nil
}

func (s *redisStore) Set(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	_, err := s.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for k, v := range values {
			pipe.HSet(ctx, s.hash, k, v)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.changed(keysOf(values))
	return nil
}

func (s *redisStore) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := s.rdb.HDel(ctx, s.hash, keys...).Err(); err != nil {
		return err
	}
	s.changed(keys)
	return nil
}

func (s *redisStore) changed(keys []string) {
	if s.notify != nil {
		s.notify.NotifyPreferences(keys...)
	}
}
