package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/location-registry/internal/domain"
	"github.com/location-registry/internal/domain/repository"
)

type auditRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

// NewAuditRepository создает репозиторий журнала изменений
func NewAuditRepository(db *DB) repository.AuditRepository {
	return &auditRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

// Record сохраняет событие; повторная доставка того же события игнорируется
func (r *auditRepository) Record(ctx context.Context, event domain.LocationEvent) error {
	changes := []byte("[]")
	if len(event.Changes) > 0 {
		var err error
		if changes, err = json.Marshal(event.Changes); err != nil {
			return fmt.Errorf("marshal changes: %w", err)
		}
	}

	query := r.db.Rebind(`
		INSERT INTO location_audit_log (
			event_id, event_type, level, entity_id, code, parent_code, actor, changes, occurred_at
		) VALUES (?, ?, ?, ?, ?, NULLIF(?, ''), ?, CAST(? AS JSONB), ?)
		ON CONFLICT (event_id) DO NOTHING`)

	_, err := r.db.ExecContext(ctx, query,
		event.EventID.String(),
		string(event.Type),
		string(event.Level),
		event.EntityID,
		event.Code,
		event.ParentCode,
		event.Actor,
		string(changes),
		event.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// ListByEntity возвращает последние записи журнала по сущности
func (r *auditRepository) ListByEntity(ctx context.Context, level domain.Level, entityID int64, limit int) ([]domain.AuditEntry, error) {
	query := r.db.Rebind(`
		SELECT id, CAST(event_id AS TEXT), event_type, level, entity_id, code, parent_code,
			actor, CAST(changes AS TEXT), occurred_at, recorded_at
		FROM location_audit_log
		WHERE level = ? AND entity_id = ?
		ORDER BY occurred_at DESC, id DESC
		LIMIT ?`)

	rows, err := r.db.QueryContext(ctx, query, string(level), entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit log: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.AuditEntry, 0)
	for rows.Next() {
		var (
			e       domain.AuditEntry
			eventID string
			changes sql.NullString
		)
		if err := rows.Scan(
			&e.ID, &eventID, &e.EventType, &e.Level, &e.EntityID, &e.Code, &e.ParentCode,
			&e.Actor, &changes, &e.OccurredAt, &e.RecordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		if err := e.EventID.UnmarshalText([]byte(eventID)); err != nil {
			return nil, fmt.Errorf("parse event id %q: %w", eventID, err)
		}
		if changes.Valid {
			e.Changes = json.RawMessage(changes.String)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
