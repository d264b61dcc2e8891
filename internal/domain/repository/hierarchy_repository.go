package repository

import (
	"context"

	"github.com/location-registry/internal/domain"
)

// HierarchyRepository - навигация по иерархии без привязки к конкретному типу сущности
type HierarchyRepository interface {
	// FindByCode возвращает краткое представление по коду уровня level.
	// parentCode сужает поиск; ErrNotFound / ErrAmbiguous как в LocationRepository.
	FindByCode(ctx context.Context, level domain.Level, code, parentCode string) (*domain.Summary, error)

	// GetByID возвращает краткое представление по внутреннему идентификатору
	GetByID(ctx context.Context, level domain.Level, id int64) (*domain.Summary, error)

	// Descendants возвращает потомков уровня target для предка (level, id)
	Descendants(ctx context.Context, level domain.Level, id int64, target domain.Level, includeInactive bool) ([]domain.Summary, error)

	// CountActiveChildren возвращает число активных прямых потомков
	CountActiveChildren(ctx context.Context, level domain.Level, id int64) (int, error)
}
