package usecase

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
)

// StatsUseCase - сводная статистика реестра с кешированием
type StatsUseCase struct {
	statsRepo repository.StatsRepository
	cacheRepo repository.CacheRepository
	ttl       time.Duration
	logger    *zap.Logger
}

// NewStatsUseCase создает новый экземпляр StatsUseCase. cacheRepo может быть nil.
func NewStatsUseCase(
	statsRepo repository.StatsRepository,
	cacheRepo repository.CacheRepository,
	ttl time.Duration,
	logger *zap.Logger,
) *StatsUseCase {
	return &StatsUseCase{
		statsRepo: statsRepo,
		cacheRepo: cacheRepo,
		ttl:       ttl,
		logger:    logger,
	}
}

// GetStatistics возвращает статистику, используя кеш когда возможно
func (uc *StatsUseCase) GetStatistics(ctx context.Context) (*domain.RegistryStats, error) {
	if uc.cacheRepo != nil {
		cached, err := uc.cacheRepo.GetRegistryStats(ctx)
		if err == nil && cached != nil {
			uc.logger.Debug("Statistics fetched from cache")
			return cached, nil
		}
		if err != nil {
			uc.logger.Warn("Failed to get stats from cache", zap.Error(err))
		}
	}

	return uc.RefreshStatistics(ctx)
}

// RefreshStatistics пересчитывает статистику и обновляет кеш
func (uc *StatsUseCase) RefreshStatistics(ctx context.Context) (*domain.RegistryStats, error) {
	stats, err := uc.statsRepo.GetRegistryStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("get statistics from db: %w", err)
	}

	if uc.cacheRepo != nil && uc.ttl > 0 {
		// данные уже получены, ошибку кеша не возвращаем
		if err := uc.cacheRepo.SetRegistryStats(ctx, stats, uc.ttl); err != nil {
			uc.logger.Warn("Failed to cache stats", zap.Error(err))
		}
	}

	return stats, nil
}
