package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
)

type statsRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewStatsRepository создает новый экземпляр stats repository
func NewStatsRepository(db *DB, logger *zap.Logger) repository.StatsRepository {
	return &statsRepository{
		db:     db,
		logger: logger,
	}
}

// GetRegistryStats возвращает сводную статистику по всем уровням иерархии
func (r *statsRepository) GetRegistryStats(ctx context.Context) (*domain.RegistryStats, error) {
	stats := &domain.RegistryStats{
		Levels:               make(map[domain.Level]domain.LevelCount, len(domain.Levels)),
		MunicipalitiesByType: make(map[string]int),
		LastUpdated:          time.Now().UTC(),
	}

	if err := r.getLevelCounts(ctx, stats); err != nil {
		r.logger.Error("failed to get level counts", zap.Error(err))
		return nil, fmt.Errorf("get level counts: %w", err)
	}

	if err := r.getMunicipalityTypes(ctx, stats); err != nil {
		r.logger.Error("failed to get municipality types", zap.Error(err))
		return nil, fmt.Errorf("get municipality types: %w", err)
	}

	// Суммы по активным провинциям и заявленные округа
	query := `
		SELECT
			(SELECT COALESCE(SUM(population), 0) FROM provinces WHERE is_active = TRUE),
			(SELECT COALESCE(SUM(area_sq_km), 0) FROM provinces WHERE is_active = TRUE),
			(SELECT COALESCE(SUM(total_wards), 0) FROM municipalities WHERE is_active = TRUE)
	`
	err := r.db.DB.QueryRowContext(ctx, query).Scan(
		&stats.TotalPopulation,
		&stats.TotalAreaSqKm,
		&stats.DeclaredWards,
	)
	if err != nil {
		r.logger.Error("failed to get registry totals", zap.Error(err))
		return nil, fmt.Errorf("get registry totals: %w", err)
	}

	return stats, nil
}

// getLevelCounts считает записи всех уровней одним запросом
func (r *statsRepository) getLevelCounts(ctx context.Context, stats *domain.RegistryStats) error {
	parts := make([]string, 0, len(domain.Levels))
	for _, lv := range domain.Levels {
		parts = append(parts, fmt.Sprintf(
			"SELECT '%s' AS level, COUNT(*) AS total, COUNT(*) FILTER (WHERE is_active) AS active FROM %s",
			lv, tables[lv].name))
	}

	rows, err := r.db.DB.QueryContext(ctx, strings.Join(parts, " UNION ALL "))
	if err != nil {
		return fmt.Errorf("query level counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			level string
			count domain.LevelCount
		)
		if err := rows.Scan(&level, &count.Total, &count.Active); err != nil {
			return fmt.Errorf("scan level counts: %w", err)
		}
		count.Inactive = count.Total - count.Active
		stats.Levels[domain.Level(level)] = count
	}

	return rows.Err()
}

func (r *statsRepository) getMunicipalityTypes(ctx context.Context, stats *domain.RegistryStats) error {
	query := `
		SELECT type, COUNT(*)
		FROM municipalities
		WHERE is_active = TRUE
		GROUP BY type
		ORDER BY type
	`

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("query municipality types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			t string
			n int
		)
		if err := rows.Scan(&t, &n); err != nil {
			return fmt.Errorf("scan municipality types: %w", err)
		}
		stats.MunicipalitiesByType[t] = n
	}

	return rows.Err()
}
