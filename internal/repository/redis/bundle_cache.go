package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"cartBoost/domain"

	"github.com/redis/go-redis/v9"
)

// BundleCacheRepository keeps recently generated bundles per shop+anchor.
// Bundle ids are deterministic, so re-serving a cached generation is
// indistinguishable from recomputing it against the same catalog state.
type BundleCacheRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBundleCacheRepository(client *redis.Client, ttl time.Duration) *BundleCacheRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	return &BundleCacheRepository{
		client: client,
		ttl:    ttl,
	}
}

func cacheKey(shop, productID string) string {
	return fmt.Sprintf("bundles:%s:%s", shop, productID)
}

// Get returns the cached bundles, or (nil, nil) on a miss.
func (r *BundleCacheRepository) Get(ctx context.Context, shop, productID string) ([]domain.GeneratedBundle, error) {
	val, err := r.client.Get(ctx, cacheKey(shop, productID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get bundles from Redis: %w", err)
	}

	var bundles []domain.GeneratedBundle
	if err := json.Unmarshal([]byte(val), &bundles); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached bundles: %w", err)
	}

	return bundles, nil
}

func (r *BundleCacheRepository) Set(ctx context.Context, shop, productID string, bundles []domain.GeneratedBundle) error {
	jsonData, err := json.Marshal(bundles)
	if err != nil {
		return fmt.Errorf("failed to marshal bundles: %w", err)
	}

	if err := r.client.Set(ctx, cacheKey(shop, productID), jsonData, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store bundles in Redis: %w", err)
	}

	return nil
}

// Invalidate drops the cached generation for one anchor, used after a
// merchant edits that product's manual bundles.
func (r *BundleCacheRepository) Invalidate(ctx context.Context, shop, productID string) error {
	if err := r.client.Del(ctx, cacheKey(shop, productID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate bundle cache: %w", err)
	}

	return nil
}
