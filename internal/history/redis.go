// Package history persists probe results in Redis so consecutive diagnostic
// runs against the same upstream can be compared after the fact.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/probelab/hdrprobe/internal/domain"
	"github.com/probelab/hdrprobe/internal/observability"
)

const keyPrefix = "hdrprobe:run:"

// Config contains Redis history sink configuration. The sink is disabled when
// Addr is empty.
type Config struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB"          envDefault:"0"`
	TTLHours int    `env:"HISTORY_TTL_HOURS" envDefault:"168"`
}

// Enabled reports whether a Redis address is configured.
func (c Config) Enabled() bool {
	return c.Addr != ""
}

// RedisSink implements the domain.HistorySink interface on a Redis list per run.
type RedisSink struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSink creates a new Redis-backed history sink.
func NewRedisSink(cfg *Config) *RedisSink {
	return &RedisSink{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		ttl: time.Duration(cfg.TTLHours) * time.Hour,
	}
}

// RunKey returns the Redis key holding the results of a run.
func RunKey(runID string) string {
	return keyPrefix + runID
}

// Append stores a probe result under the given run ID.
func (s *RedisSink) Append(ctx context.Context, runID string, result *domain.ProbeResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal probe result: %w", err)
	}

	key := RunKey(runID)

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, key, data)

	if s.ttl > 0 {
		pipe.Expire(ctx, key, s.ttl)
	}

	if _, execErr := pipe.Exec(ctx); execErr != nil {
		return fmt.Errorf("failed to store probe result: %w", execErr)
	}

	observability.FromContext(ctx).Debug("probe result stored",
		zap.String("key", key))

	return nil
}

// Load returns all stored results of a run in probe order.
func (s *RedisSink) Load(ctx context.Context, runID string) ([]*domain.ProbeResult, error) {
	entries, err := s.client.LRange(ctx, RunKey(runID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load run %s: %w", runID, err)
	}

	results := make([]*domain.ProbeResult, 0, len(entries))
	for _, entry := range entries {
		var result domain.ProbeResult
		if unmarshalErr := json.Unmarshal([]byte(entry), &result); unmarshalErr != nil {
			return nil, fmt.Errorf("failed to decode stored result: %w", unmarshalErr)
		}
		results = append(results, &result)
	}

	return results, nil
}

// Close releases the underlying connection.
func (s *RedisSink) Close() error {
	return s.client.Close()
}
