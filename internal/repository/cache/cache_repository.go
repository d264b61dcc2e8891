package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
)

// registryStatsKey - ключ сводной статистики реестра
const registryStatsKey = "registry:stats"

type cacheRepository struct {
	client *redis.Client
	logger *zap.Logger
}

func NewCacheRepository(redis *Redis) repository.CacheRepository {
	return NewCacheRepositoryWithClient(redis.Client(), redis.logger)
}

// NewCacheRepositoryWithClient создает кеш поверх готового клиента
func NewCacheRepositoryWithClient(client *redis.Client, logger *zap.Logger) repository.CacheRepository {
	return &cacheRepository{
		client: client,
		logger: logger,
	}
}

func (r *cacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // Cache miss
	}
	if err != nil {
		r.logger.Error("Failed to get from cache", zap.String("key", key), zap.Error(err))
		return nil, fmt.Errorf("cache get error: %w", err)
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return val, nil
}

func (r *cacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := r.client.Set(ctx, key, value, ttl).Err(); err != nil {
		r.logger.Error("Failed to set cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache set error: %w", err)
	}

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *cacheRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		r.logger.Error("Failed to delete from cache", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("cache delete error: %w", err)
	}

	r.logger.Debug("Cache deleted", zap.String("key", key))
	return nil
}

// GetRegistryStats получает сводную статистику из кеша
func (r *cacheRepository) GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error) {
	data, err := r.Get(ctx, registryStatsKey)
	if err != nil || data == nil {
		return nil, err
	}

	var stats domain.RegistryStats
	if err := json.Unmarshal(data, &stats); err != nil {
		r.logger.Error("Failed to unmarshal stats from cache", zap.Error(err))
		return nil, fmt.Errorf("unmarshal stats: %w", err)
	}

	return &stats, nil
}

// SetRegistryStats сохраняет сводную статистику в кеше
func (r *cacheRepository) SetRegistryStats(ctx context.Context, stats *domain.RegistryStats, ttl time.Duration) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("marshal stats: %w", err)
	}

	return r.Set(ctx, registryStatsKey, data, ttl)
}

// InvalidateRegistryStats сбрасывает статистику после изменения данных
func (r *cacheRepository) InvalidateRegistryStats(ctx context.Context) error {
	return r.Delete(ctx, registryStatsKey)
}
