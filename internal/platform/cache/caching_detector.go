// Package cache provides caching implementations for repository and detector interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"contour_backend/internal/feature/hotspots/domain/entity"
	"contour_backend/internal/feature/hotspots/usecase"
)

// DefaultDetectionTTL is how long detection results stay cached.
// Detection output for a stored image never changes, but the TTL keeps
// the keyspace bounded when images are deleted from disk.
const DefaultDetectionTTL = 24 * time.Hour

// CachingDetector decorates a Detector with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying detector.
type CachingDetector struct {
	inner     usecase.Detector
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// CachingDetectorがDetectorを実装していることをコンパイル時に検証します。
var _ usecase.Detector = (*CachingDetector)(nil)

// NewCachingDetector decorates a Detector with Redis caching.
// If ttl is 0, it defaults to DefaultDetectionTTL. If namespace is empty, it uses "detections".
func NewCachingDetector(rdb *redis.Client, ttl time.Duration, inner usecase.Detector, namespace string) *CachingDetector {
	if ttl <= 0 {
		ttl = DefaultDetectionTTL
	}
	if namespace == "" {
		namespace = "detections"
	}
	return &CachingDetector{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Detect returns the cached detection result for an image, falling back to
// the underlying detector on a miss.
func (c *CachingDetector) Detect(ctx context.Context, imagePath string, imageID uint) (*entity.DetectionResult, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.Detect(ctx, imagePath, imageID)
	}

	key := c.cacheKey(imageID)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.DetectionResult
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the detector
	out, err := c.inner.Detect(ctx, imagePath, imageID)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate removes the cached result for an image. Call it when the
// underlying file is replaced.
func (c *CachingDetector) Invalidate(ctx context.Context, imageID uint) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.cacheKey(imageID)).Err()
}

// cacheKey generates the cache key for an image's detection result.
func (c *CachingDetector) cacheKey(imageID uint) string {
	return fmt.Sprintf("%s:%d", c.namespace, imageID)
}
