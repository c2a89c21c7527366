package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/guttosm/cryptopulse/internal/domain/models"
	"github.com/guttosm/cryptopulse/internal/logger"
	"github.com/redis/go-redis/v9"
)

// rankingKey stores the full normalized-range ranking as one JSON blob.
const rankingKey = "cryptopulse:normalized-ranking"

// RankingCache is a read-through cache for the global normalized-range
// ranking. A miss (or any cache failure) simply falls back to computing the
// ranking from storage.
type RankingCache interface {
	GetRanking(ctx context.Context) ([]models.NormalizedCrypto, bool)
	SetRanking(ctx context.Context, ranking []models.NormalizedCrypto)
}

// RedisRankingCache caches the ranking in Redis with a TTL.
type RedisRankingCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ RankingCache = (*RedisRankingCache)(nil)

// NewRedisRankingCache connects a ranking cache to the given Redis address.
func NewRedisRankingCache(addr string, ttl time.Duration) *RedisRankingCache {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisRankingCache{client: client, ttl: ttl}
}

// GetRanking returns the cached ranking and whether it was present.
// Cache errors are logged and reported as a miss.
func (c *RedisRankingCache) GetRanking(ctx context.Context) ([]models.NormalizedCrypto, bool) {
	raw, err := c.client.Get(ctx, rankingKey).Bytes()
	if err != nil {
		if err != redis.Nil {
			logger.L().Warn().Err(err).Msg("ranking cache read failed")
		}
		return nil, false
	}

	var ranking []models.NormalizedCrypto
	if err := json.Unmarshal(raw, &ranking); err != nil {
		logger.L().Warn().Err(err).Msg("ranking cache payload corrupt")
		return nil, false
	}
	return ranking, true
}

// SetRanking stores the ranking with the configured TTL. Failures are
// logged and otherwise ignored.
func (c *RedisRankingCache) SetRanking(ctx context.Context, ranking []models.NormalizedCrypto) {
	raw, err := json.Marshal(ranking)
	if err != nil {
		logger.L().Warn().Err(err).Msg("ranking cache marshal failed")
		return
	}
	if err := c.client.Set(ctx, rankingKey, raw, c.ttl).Err(); err != nil {
		logger.L().Warn().Err(err).Msg("ranking cache write failed")
	}
}

// Close releases the underlying Redis connection.
func (c *RedisRankingCache) Close() error {
	return c.client.Close()
}
