package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/pkg/utils"
)

// RegistryStatistics - источник сводной статистики реестра
type RegistryStatistics interface {
	GetStatistics(ctx context.Context) (*domain.RegistryStats, error)
	RefreshStatistics(ctx context.Context) (*domain.RegistryStats, error)
}

// StatsHandler обрабатывает запросы для статистики
type StatsHandler struct {
	statsUC RegistryStatistics
	logger  *zap.Logger
}

// NewStatsHandler создает новый экземпляр StatsHandler
func NewStatsHandler(statsUC RegistryStatistics, logger *zap.Logger) *StatsHandler {
	return &StatsHandler{
		statsUC: statsUC,
		logger:  logger,
	}
}

// GetStatistics godoc
// @Summary Сводная статистика реестра
// @Description Количество записей по уровням (всего, активных, неактивных), распределение муниципалитетов по типу, заявленное число округов
// @Tags Statistics
// @Produce json
// @Param refresh query bool false "Пересчитать, минуя кеш"
// @Success 200 {object} utils.SuccessResponse{data=domain.RegistryStats}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/statistics [get]
func (h *StatsHandler) GetStatistics(c *fiber.Ctx) error {
	get := h.statsUC.GetStatistics
	if c.QueryBool("refresh", false) {
		get = h.statsUC.RefreshStatistics
	}

	stats, err := get(c.UserContext())
	if err != nil {
		h.logger.Error("Failed to get statistics", zap.Error(err))
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, stats, nil)
}
