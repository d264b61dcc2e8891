package repository

import (
	"context"

	"github.com/location-registry/internal/domain"
)

// LocationRepository определяет методы хранения сущностей одного уровня иерархии
type LocationRepository[E domain.Entity] interface {
	// GetByCode возвращает сущность по коду; parentCode сужает поиск до одного родителя.
	// Возвращает ErrNotFound или ErrAmbiguous (код есть у нескольких родителей, parentCode пуст).
	GetByCode(ctx context.Context, code, parentCode string, opts domain.LoadOptions) (E, error)

	// ExistsInScope проверяет наличие кода (без учёта регистра) у родителя parentID
	ExistsInScope(ctx context.Context, code string, parentID int64) (bool, error)

	// Create сохраняет новую сущность и заполняет ID и CreatedAt. ErrDuplicate при нарушении уникальности.
	Create(ctx context.Context, entity E) error

	// Update перезаписывает изменяемые поля сущности
	Update(ctx context.Context, entity E) error

	// SetActive переключает флаг активности
	SetActive(ctx context.Context, id int64, active bool, actor string) error

	// Search выполняет постраничный поиск и возвращает страницу и общее количество
	Search(ctx context.Context, q domain.Query) ([]E, int64, error)
}
