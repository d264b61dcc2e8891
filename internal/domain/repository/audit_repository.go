package repository

import (
	"context"

	"github.com/location-registry/internal/domain"
)

// AuditRepository - журнал изменений локаций
type AuditRepository interface {
	// Record сохраняет событие; повторная запись того же EventID игнорируется
	Record(ctx context.Context, event domain.LocationEvent) error

	// ListByEntity возвращает последние записи по сущности, новые первыми
	ListByEntity(ctx context.Context, level domain.Level, entityID int64, limit int) ([]domain.AuditEntry, error)
}
