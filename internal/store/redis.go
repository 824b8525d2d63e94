package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-redis/redis/v8"

	"github.com/BTreeMap/NeuroSoma/internal/models"
)

const planKeyPrefix = "neurosoma:plan:"

// RedisStore keeps plans as JSON strings in Redis, optionally with an expiry.
type RedisStore struct {
	client *redis.Client
	opts   Opts
}

// NewRedisStore connects to the Redis server named in the options.
func NewRedisStore(opts ...Option) (*RedisStore, error) {
	var cfg Opts
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("redis address not set")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		slog.Error("Redis ping failed", "addr", cfg.RedisAddr, "error", err)
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.RedisAddr, err)
	}
	slog.Debug("RedisStore.NewRedisStore: connected", "addr", cfg.RedisAddr, "ttl", cfg.PlanTTL)
	return &RedisStore{client: client, opts: cfg}, nil
}

// SavePlan stores rec under its plan id, replacing any previous record.
func (s *RedisStore) SavePlan(ctx context.Context, rec models.PlanRecord) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := s.client.Set(ctx, planKeyPrefix+rec.Plan.ID, data, s.opts.PlanTTL).Err(); err != nil {
		slog.Error("RedisStore SavePlan failed", "error", err, "id", rec.Plan.ID)
		return fmt.Errorf("failed to save plan %s: %w", rec.Plan.ID, err)
	}
	slog.Debug("RedisStore SavePlan succeeded", "id", rec.Plan.ID)
	return nil
}

// GetPlan loads the record stored under id.
func (s *RedisStore) GetPlan(ctx context.Context, id string) (models.PlanRecord, error) {
	data, err := s.client.Get(ctx, planKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.PlanRecord{}, ErrPlanNotFound
	}
	if err != nil {
		slog.Error("RedisStore GetPlan failed", "error", err, "id", id)
		return models.PlanRecord{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return decodeRecord(data)
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}
