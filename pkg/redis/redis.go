package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/MPA-Digital-Solutions/TechMedis/config"
	"github.com/MPA-Digital-Solutions/TechMedis/pkg/logger"
	"github.com/redis/go-redis/v9"
)

var client *redis.Client

// Init initializes Redis connection
func Init(cfg *config.RedisConfig) error {
	logger.Info("Initializing Redis connection", map[string]interface{}{
		"host": cfg.Host,
		"port": cfg.Port,
		"db":   cfg.DB,
	})

	client = redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.Error("Failed to connect to Redis", err, map[string]interface{}{
			"host": cfg.Host,
			"port": cfg.Port,
		})
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.Info("Redis connection established successfully", nil)
	return nil
}

// GetClient returns the Redis client instance
func GetClient() *redis.Client {
	return client
}

// Close closes the Redis connection
func Close() error {
	if client != nil {
		logger.Info("Closing Redis connection", nil)
		return client.Close()
	}
	return nil
}

// PageKey builds the cache key for a rendered page payload.
func PageKey(path string) string {
	return fmt.Sprintf("page:%s", path)
}

// CachePage stores a rendered page payload under its path.
func CachePage(ctx context.Context, path string, payload []byte, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	if err := client.Set(ctx, PageKey(path), payload, ttl).Err(); err != nil {
		logger.Error("Failed to cache page", err, map[string]interface{}{
			"path": path,
		})
		return err
	}
	return nil
}

// GetCachedPage returns the cached payload for a path, or (nil, false)
// when absent or the cache is unavailable.
func GetCachedPage(ctx context.Context, path string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}

	val, err := client.Get(ctx, PageKey(path)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		logger.Error("Failed to read cached page", err, map[string]interface{}{
			"path": path,
		})
		return nil, false
	}
	return val, true
}

// PageInvalidator adapts the package-level invalidation for injection
// into services.
type PageInvalidator struct{}

func (PageInvalidator) InvalidatePages(ctx context.Context, paths []string) error {
	return InvalidatePages(ctx, paths)
}

// InvalidatePages deletes the cached payloads of the given paths.
func InvalidatePages(ctx context.Context, paths []string) error {
	if client == nil || len(paths) == 0 {
		return nil
	}

	keys := make([]string, len(paths))
	for i, path := range paths {
		keys[i] = PageKey(path)
	}

	if err := client.Del(ctx, keys...).Err(); err != nil {
		logger.Error("Failed to invalidate cached pages", err, map[string]interface{}{
			"paths": paths,
		})
		return err
	}

	logger.Info("Cached pages invalidated", map[string]interface{}{
		"paths": paths,
	})
	return nil
}
