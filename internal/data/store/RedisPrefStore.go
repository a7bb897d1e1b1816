package store

import (
	"context"

	"github.com/akolanti/PaperChat/internal/config"
	"github.com/akolanti/PaperChat/internal/data/redisStore"
	"github.com/akolanti/PaperChat/pkg/logger_i"
)

// RedisPrefStore keeps preferences without expiry so window geometry survives restarts.
type RedisPrefStore struct {
	store  *redisStore.Store
	logger *logger_i.Logger
}

// GetRedisPrefStore returns nil when redis is offline.
func GetRedisPrefStore(ctx context.Context) *RedisPrefStore {
	s := redisStore.GetRedisStore(ctx, config.RedisPrefStore)
	if s == nil {
		return nil
	}
	return &RedisPrefStore{
		store:  s,
		logger: logger_i.NewLogger("PrefStore"),
	}
}

func (s *RedisPrefStore) Get(ctx context.Context, key string) (string, bool, error) {
	log := s.logger.WithTrace(ctx).With("key", key)
	val, err := s.store.Get(ctx, key)
	if s.store.IsNil(err) {
		return "", false, nil
	} else if err != nil {
		log.Error("Failed to read preference", "error", err)
		return "", false, err
	}
	return val, true, nil
}

func (s *RedisPrefStore) Set(ctx context.Context, key string, value string) error {
	log := s.logger.WithTrace(ctx).With("key", key)
	err := s.store.Set(ctx, key, value, 0)
	if err != nil {
		log.Error("Failed to save preference", "error", err)
		return err
	}
	log.Debug("Saved preference")
	return nil
}

func (s *RedisPrefStore) Delete(ctx context.Context, key string) error {
	err := s.store.Del(ctx, key)
	if err != nil {
		s.logger.Error("Error deleting preference", "key", key, "error", err)
	}
	return err
}

func TestPrefStore(store *redisStore.Store) *RedisPrefStore {
	return &RedisPrefStore{
		store:  store,
		logger: logger_i.NewLogger("test redis"),
	}
}
