package repository

import (
	"context"
	"time"

	"github.com/location-registry/internal/domain"
)

// StatsRepository - сводная статистика по всем уровням
type StatsRepository interface {
	GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error)
}

// CacheRepository - кеш вычисляемых данных
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error

	// GetRegistryStats возвращает nil, nil при промахе
	GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error)
	SetRegistryStats(ctx context.Context, stats *domain.RegistryStats, ttl time.Duration) error
	InvalidateRegistryStats(ctx context.Context) error
}
